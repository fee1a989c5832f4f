package framefsm

// State is a node in the machine: an identifier, optional lifecycle
// callbacks, an optional timeout, and an ordered list of outgoing local
// transitions. States are created through Machine.AddState and configured
// by chaining; every configuration method returns the state itself.
type State struct {
	id StateID

	onEnter   EnterFunc
	onExit    ExitFunc
	onUpdate  UpdateFunc
	onTimeout TimeoutFunc

	timeoutDuration float64
	timeoutTarget   StateID

	transitions []*Transition
}

func newState(id StateID) *State {
	return &State{
		id:              id,
		timeoutDuration: timeoutUnset,
	}
}

// ID returns the state's identifier
func (s *State) ID() StateID { return s.id }

// OnEnter sets the entry callback, overwriting any previous one
func (s *State) OnEnter(fn EnterFunc) *State {
	s.onEnter = fn
	return s
}

// OnExit sets the exit callback, overwriting any previous one
func (s *State) OnExit(fn ExitFunc) *State {
	s.onExit = fn
	return s
}

// OnUpdate sets the per-frame callback, overwriting any previous one
func (s *State) OnUpdate(fn UpdateFunc) *State {
	s.onUpdate = fn
	return s
}

// OnTimeout sets the callback that runs when the state's timeout elapses,
// before the timeout transition executes
func (s *State) OnTimeout(fn TimeoutFunc) *State {
	s.onTimeout = fn
	return s
}

// TimeoutAfter configures an automatic transition to target once the state
// has been current for duration seconds. Negative durations clamp to zero.
// The target is not validated here; an unregistered target is reported when
// the timeout is evaluated.
func (s *State) TimeoutAfter(duration float64, target StateID) *State {
	if duration < 0 {
		duration = 0
	}
	s.timeoutDuration = duration
	s.timeoutTarget = target
	return s
}

// AddTransition appends a local transition to the given target. Local
// transitions are evaluated in the order they were added; the first match
// wins. The returned transition never fires until OnCondition is set.
func (s *State) AddTransition(to StateID) *Transition {
	t := newTransition(to)
	s.transitions = append(s.transitions, t)
	return t
}

func (s *State) hasTimeout() bool {
	return s.timeoutDuration != timeoutUnset
}
