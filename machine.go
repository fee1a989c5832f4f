package framefsm

import (
	"log/slog"
)

// Machine is the runtime FSM instance. It owns the state registry, the
// global transition list, the current/previous state, the in-state timer
// and the lock flag, and runs the per-frame evaluation cascade.
//
// A machine is single-threaded by design: it is driven by one frame loop,
// and every operation runs to completion on the caller's goroutine. Callers
// that share a machine across goroutines must synchronize externally.
type Machine struct {
	states  map[StateID]*State
	globals []*Transition

	current     *State
	previousID  StateID
	hasPrevious bool
	stateTime   float64
	locked      bool

	initialID  StateID
	hasInitial bool

	logger *slog.Logger

	changeObservers  []func(from, to StateID)
	timeoutObservers []func(state StateID)
}

// Option is a functional option for configuring a Machine
type Option func(*Machine)

// WithLogger sets the logger for the machine
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// New creates an empty machine
func New(opts ...Option) *Machine {
	m := &Machine{
		states: make(map[StateID]*State),
		logger: Logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddState registers a state and returns it for chained configuration.
// Re-adding an existing id returns the existing state unchanged; callbacks
// and transitions already configured on it are kept.
func (m *Machine) AddState(id StateID) *State {
	if s, ok := m.states[id]; ok {
		return s
	}
	s := newState(id)
	m.states[id] = s
	return s
}

// SetInitialState records the state Start will enter. Calling it again
// overwrites the previous choice. An unregistered id is logged and ignored.
func (m *Machine) SetInitialState(id StateID) {
	if _, ok := m.states[id]; !ok {
		m.logger.Error("initial state not registered", "state", id, "error", ErrUnknownState)
		return
	}
	m.initialID = id
	m.hasInitial = true
}

// AddTransition appends a local transition from one registered state to
// another. If from is not registered the failure is logged and a detached
// transition is returned so chained configuration stays safe; the machine
// is left unchanged.
func (m *Machine) AddTransition(from, to StateID) *Transition {
	s, ok := m.states[from]
	if !ok {
		m.logger.Error("transition from unregistered state", "from", from, "to", to, "error", ErrUnknownState)
		return newTransition(to)
	}
	return s.AddTransition(to)
}

// AddGlobalTransition appends a transition evaluated every frame regardless
// of the current state, at higher priority than local transitions. Global
// transitions are evaluated in the order they were added.
func (m *Machine) AddGlobalTransition(to StateID) *Transition {
	t := newTransition(to)
	m.globals = append(m.globals, t)
	return t
}

// OnStateChange subscribes an observer fired at the end of every successful
// transition, after the new state's enter callback. Subscribe before Start
// to observe the first transition.
func (m *Machine) OnStateChange(fn func(from, to StateID)) {
	m.changeObservers = append(m.changeObservers, fn)
}

// OnStateTimeout subscribes an observer fired after a timeout-induced
// transition completes, carrying the id of the state that timed out.
func (m *Machine) OnStateTimeout(fn func(state StateID)) {
	m.timeoutObservers = append(m.timeoutObservers, fn)
}

// Start performs the first transition into the initial state. The exit
// callback is bypassed since there is no prior state. Returns false, with
// a log line, if no initial state was set.
func (m *Machine) Start() bool {
	if !m.hasInitial {
		m.logger.Error("start without initial state", "error", ErrNoInitialState)
		return false
	}
	return m.transitionTo(m.initialID, true)
}

// TransitionTo switches to the given state immediately, running the full
// exit/switch/enter/notify sequence. It returns false, leaving the machine
// unchanged, when the id is unregistered or the machine is locked.
func (m *Machine) TransitionTo(id StateID) bool {
	return m.transitionTo(id, false)
}

// transitionTo is the single authoritative switch routine used by manual
// calls, Start and the update cascade. Side effect order is a contract:
// exit before switch, switch before enter, enter before notify.
func (m *Machine) transitionTo(id StateID, bypassExit bool) bool {
	target, ok := m.states[id]
	if !ok {
		m.logger.Error("transition to unregistered state", "state", id, "error", ErrUnknownState)
		return false
	}
	if m.locked {
		m.logger.Debug("transition rejected while locked", "state", id)
		return false
	}

	if !bypassExit && m.current != nil && m.current.onExit != nil {
		m.current.onExit()
	}

	from := NoState
	if m.current != nil {
		from = m.current.id
		m.previousID = from
		m.hasPrevious = true
	}

	m.current = target
	m.stateTime = 0

	if target.onEnter != nil {
		target.onEnter()
	}

	m.logger.Debug("state changed", "from", from, "to", target.id)
	for _, fn := range m.changeObservers {
		fn(from, target.id)
	}
	return true
}

// Update runs the per-frame cascade: update callback, timer increment, then
// transition evaluation in priority order (timeout, then global, then local,
// first match wins within each level). At most one transition occurs per
// call. Does nothing before Start. A negative delta is not validated.
func (m *Machine) Update(delta float64) {
	if m.current == nil {
		return
	}

	if m.current.onUpdate != nil {
		m.current.onUpdate(delta)
	}
	m.stateTime += delta

	if m.locked {
		return
	}

	if m.evaluateTimeout() {
		return
	}
	if m.fireFirstReady(m.globals) {
		return
	}
	m.fireFirstReady(m.current.transitions)
}

// evaluateTimeout checks the current state's timeout and performs the
// transition when the accumulated in-state time has reached it. Returns
// true when the timeout path was taken, ending the cascade for this frame.
func (m *Machine) evaluateTimeout() bool {
	st := m.current
	if !st.hasTimeout() || m.stateTime < st.timeoutDuration {
		return false
	}
	if _, ok := m.states[st.timeoutTarget]; !ok {
		// Misconfigured target: log and keep running, the timeout is
		// re-evaluated next frame.
		m.logger.Error("timeout target not registered", "state", st.id, "target", st.timeoutTarget, "error", ErrUnknownState)
		return false
	}

	if st.onTimeout != nil {
		st.onTimeout()
	}
	if m.transitionTo(st.timeoutTarget, false) {
		for _, fn := range m.timeoutObservers {
			fn(st.id)
		}
	}
	return true
}

// fireFirstReady walks an ordered transition list and takes the first one
// whose guard and condition pass. Returns true when a transition fired.
func (m *Machine) fireFirstReady(transitions []*Transition) bool {
	for _, t := range transitions {
		if !t.ready(m.stateTime) {
			continue
		}
		if t.action != nil {
			t.action()
		}
		m.transitionTo(t.to, false)
		return true
	}
	return false
}

// CurrentState returns the current state id, or NoState before Start
func (m *Machine) CurrentState() StateID {
	if m.current == nil {
		return NoState
	}
	return m.current.id
}

// PreviousState returns the id the machine transitioned away from last,
// and false while no transition between two states has happened yet.
func (m *Machine) PreviousState() (StateID, bool) {
	if !m.hasPrevious {
		return NoState, false
	}
	return m.previousID, true
}

// HasPreviousState reports whether the machine has ever left a state
func (m *Machine) HasPreviousState() bool {
	return m.hasPrevious
}

// StateTime returns the elapsed time in the current state, in seconds.
// It resets to zero on every transition.
func (m *Machine) StateTime() float64 {
	return m.stateTime
}

// Locked reports whether transitions are currently suppressed
func (m *Machine) Locked() bool {
	return m.locked
}

// SetLocked suppresses (or re-enables) all transitions, manual and
// automatic. While locked the per-frame update callback and timer still
// run; only transition evaluation stops.
func (m *Machine) SetLocked(locked bool) {
	m.locked = locked
}
