package framefsm

import "log/slog"

// StateID is a unique identifier for a state
type StateID string

// NoState is the id PreviousState reports before the machine has ever
// transitioned, and the id CurrentState reports before Start.
const NoState StateID = ""

// EnterFunc runs when a state becomes current
type EnterFunc func()

// ExitFunc runs when a state stops being current
type ExitFunc func()

// UpdateFunc runs every frame while its state is current, with the frame delta in seconds
type UpdateFunc func(delta float64)

// TimeoutFunc runs when a state's timeout elapses, before the timeout transition
type TimeoutFunc func()

// ConditionFunc decides whether a transition fires this frame
type ConditionFunc func() bool

// GuardFunc gates condition evaluation; receives the elapsed in-state time
type GuardFunc func(elapsed float64) bool

// ActionFunc runs after a transition's condition passes, before the state switch
type ActionFunc func()

// timeoutUnset marks a state without a configured timeout
const timeoutUnset float64 = -1

// Logger is the default logger used when none is provided
var Logger = slog.Default()
