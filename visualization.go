package framefsm

import (
	"fmt"
	"sort"
	"strings"
)

// ToMermaid renders the registered topology as a Mermaid stateDiagram-v2
// DSL. Output is deterministic: states sorted by id, transitions in
// registration order. Global transitions apply from any state, which
// Mermaid has no notation for, so they render as comment lines.
func (m *Machine) ToMermaid() string {
	var b strings.Builder
	b.WriteString("stateDiagram-v2\n")

	if m.hasInitial {
		fmt.Fprintf(&b, "\t[*] --> %s\n", m.initialID)
	}

	ids := make([]StateID, 0, len(m.states))
	for id := range m.states {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		s := m.states[id]
		if s.hasTimeout() {
			fmt.Fprintf(&b, "\t%s --> %s : after %gs\n", id, s.timeoutTarget, s.timeoutDuration)
		}
		for _, t := range s.transitions {
			fmt.Fprintf(&b, "\t%s --> %s : %s\n", id, t.to, t.edgeLabel())
		}
	}

	for _, t := range m.globals {
		fmt.Fprintf(&b, "\t%%%% any state --> %s : %s\n", t.to, t.edgeLabel())
	}

	return b.String()
}

// edgeLabel describes a transition's firing rule for diagram output
func (t *Transition) edgeLabel() string {
	var label string
	switch {
	case t.label != "":
		label = "when " + t.label
	case t.condition != nil:
		label = "when condition"
	default:
		label = "never"
	}
	if t.guard != nil {
		label += " [guarded]"
	}
	return label
}
