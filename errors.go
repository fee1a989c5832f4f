package framefsm

import "errors"

// Setup and runtime failures. Runtime operations never return these to the
// caller; they surface as structured log attributes plus a false result.
// The spec loader returns them wrapped, since loading happens at setup time.
var (
	ErrUnknownState   = errors.New("unknown state id")
	ErrNoInitialState = errors.New("no initial state set")
	ErrLocked         = errors.New("machine is locked")
)
