package framefsm

// Transition is a directed edge to a destination state, taken when its
// condition evaluates true during the per-frame cascade. A transition with
// no condition never fires. Configuration methods return the transition
// itself for chaining; repeated calls overwrite the previous value.
type Transition struct {
	to        StateID
	condition ConditionFunc
	guard     GuardFunc
	action    ActionFunc

	// label carries the condition's name when the transition came from a
	// declarative spec; used only for visualization.
	label string
}

func newTransition(to StateID) *Transition {
	return &Transition{to: to}
}

// To returns the destination state id
func (t *Transition) To() StateID { return t.to }

// OnCondition sets the activation predicate
func (t *Transition) OnCondition(fn ConditionFunc) *Transition {
	t.condition = fn
	return t
}

// WithGuard sets a predicate that must pass before the condition is even
// evaluated. The guard receives the elapsed in-state time.
func (t *Transition) WithGuard(fn GuardFunc) *Transition {
	t.guard = fn
	return t
}

// WithAction sets a callback that runs after the condition passes, before
// the state switch executes
func (t *Transition) WithAction(fn ActionFunc) *Transition {
	t.action = fn
	return t
}

// ready reports whether the transition should fire given the elapsed
// in-state time. A failing guard skips condition evaluation entirely.
func (t *Transition) ready(elapsed float64) bool {
	if t.guard != nil && !t.guard(elapsed) {
		return false
	}
	return t.condition != nil && t.condition()
}
