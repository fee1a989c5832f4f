package framefsm

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// MachineSpec is a YAML-friendly description of a machine's topology:
// states, timeouts and transitions. Predicates and actions cannot live in
// YAML, so transitions reference them by name; names are resolved against
// the registries of the SpecLoader that builds the machine.
type MachineSpec struct {
	Initial StateID               `yaml:"initial"`
	States  map[StateID]StateSpec `yaml:"states"`
	Global  []TransitionSpec      `yaml:"global,omitempty"`
}

// StateSpec describes one state in a MachineSpec
type StateSpec struct {
	Timeout     *TimeoutSpec     `yaml:"timeout,omitempty"`
	Transitions []TransitionSpec `yaml:"transitions,omitempty"`
}

// TimeoutSpec describes a state's automatic time-based transition
type TimeoutSpec struct {
	After float64 `yaml:"after"`
	To    StateID `yaml:"to"`
}

// TransitionSpec describes one transition edge in a MachineSpec. Condition
// is required; Guard and Action are optional.
type TransitionSpec struct {
	To        StateID `yaml:"to"`
	Condition string  `yaml:"condition"`
	Guard     string  `yaml:"guard,omitempty"`
	Action    string  `yaml:"action,omitempty"`
}

// SpecLoader builds machines from MachineSpec documents. Register the named
// predicates and actions a spec refers to before calling Load.
type SpecLoader struct {
	conditions map[string]ConditionFunc
	guards     map[string]GuardFunc
	actions    map[string]ActionFunc
	opts       []Option
}

// NewSpecLoader creates a loader; opts are forwarded to every machine it builds
func NewSpecLoader(opts ...Option) *SpecLoader {
	return &SpecLoader{
		conditions: make(map[string]ConditionFunc),
		guards:     make(map[string]GuardFunc),
		actions:    make(map[string]ActionFunc),
		opts:       opts,
	}
}

// RegisterCondition adds a named activation predicate to the registry
func (l *SpecLoader) RegisterCondition(name string, fn ConditionFunc) *SpecLoader {
	l.conditions[name] = fn
	return l
}

// RegisterGuard adds a named guard predicate to the registry
func (l *SpecLoader) RegisterGuard(name string, fn GuardFunc) *SpecLoader {
	l.guards[name] = fn
	return l
}

// RegisterAction adds a named transition action to the registry
func (l *SpecLoader) RegisterAction(name string, fn ActionFunc) *SpecLoader {
	l.actions[name] = fn
	return l
}

// Load parses a YAML MachineSpec and builds a fully wired machine. Loading
// is setup-phase work, so unlike the runtime operations it returns errors:
// unparseable YAML, missing initial state, references to undeclared states
// and unregistered predicate or action names all fail the build.
func (l *SpecLoader) Load(data []byte) (*Machine, error) {
	var spec MachineSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse machine spec: %w", err)
	}
	return l.Build(&spec)
}

// Build wires a machine from an already-decoded spec
func (l *SpecLoader) Build(spec *MachineSpec) (*Machine, error) {
	if spec.Initial == "" {
		return nil, fmt.Errorf("machine spec: initial state not set")
	}
	if _, ok := spec.States[spec.Initial]; !ok {
		return nil, fmt.Errorf("machine spec: initial state %q not declared", spec.Initial)
	}

	m := New(l.opts...)

	// Register every state first so transition targets resolve regardless
	// of declaration order.
	ids := make([]StateID, 0, len(spec.States))
	for id := range spec.States {
		ids = append(ids, id)
		m.AddState(id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		ss := spec.States[id]
		if ss.Timeout != nil {
			if _, ok := spec.States[ss.Timeout.To]; !ok {
				return nil, fmt.Errorf("machine spec: state %q timeout target %q not declared", id, ss.Timeout.To)
			}
			m.AddState(id).TimeoutAfter(ss.Timeout.After, ss.Timeout.To)
		}
		for _, ts := range ss.Transitions {
			if _, ok := spec.States[ts.To]; !ok {
				return nil, fmt.Errorf("machine spec: state %q transition target %q not declared", id, ts.To)
			}
			if err := l.wire(m.AddTransition(id, ts.To), ts); err != nil {
				return nil, fmt.Errorf("machine spec: state %q: %w", id, err)
			}
		}
	}

	for _, ts := range spec.Global {
		if _, ok := spec.States[ts.To]; !ok {
			return nil, fmt.Errorf("machine spec: global transition target %q not declared", ts.To)
		}
		if err := l.wire(m.AddGlobalTransition(ts.To), ts); err != nil {
			return nil, fmt.Errorf("machine spec: global: %w", err)
		}
	}

	m.SetInitialState(spec.Initial)
	return m, nil
}

func (l *SpecLoader) wire(t *Transition, ts TransitionSpec) error {
	if ts.Condition == "" {
		return fmt.Errorf("transition to %q has no condition", ts.To)
	}
	cond, ok := l.conditions[ts.Condition]
	if !ok {
		return fmt.Errorf("condition %q not registered", ts.Condition)
	}
	t.OnCondition(cond)
	t.label = ts.Condition

	if ts.Guard != "" {
		guard, ok := l.guards[ts.Guard]
		if !ok {
			return fmt.Errorf("guard %q not registered", ts.Guard)
		}
		t.WithGuard(guard)
	}
	if ts.Action != "" {
		action, ok := l.actions[ts.Action]
		if !ok {
			return fmt.Errorf("action %q not registered", ts.Action)
		}
		t.WithAction(action)
	}
	return nil
}
