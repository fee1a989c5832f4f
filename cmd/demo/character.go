package main

import (
	"fmt"

	"github.com/librescoot/framefsm"
)

const (
	stateIdle framefsm.StateID = "idle"
	stateRun  framefsm.StateID = "run"
	stateHurt framefsm.StateID = "hurt"
	stateDead framefsm.StateID = "dead"
)

const (
	maxHealth    = 100.0
	hitDamage    = 25.0
	hurtRecovery = 0.3 // seconds of hit-stun before returning to idle
	logLines     = 6
)

// character is the demo entity: a side-scroller player whose behavior is
// owned by a frame-driven machine. Input handlers only set intent flags;
// the machine's condition predicates read them on the next update.
type character struct {
	machine *framefsm.Machine

	health  float64
	moving  bool
	damaged bool

	log []string
}

func newCharacter() *character {
	c := &character{health: maxHealth}

	m := framefsm.New()
	m.AddState(stateIdle)
	m.AddState(stateRun)
	m.AddState(stateHurt).
		TimeoutAfter(hurtRecovery, stateIdle).
		OnEnter(func() { c.health -= hitDamage })
	m.AddState(stateDead).
		OnEnter(func() { m.SetLocked(true) }) // nothing interrupts death

	m.AddTransition(stateIdle, stateRun).
		OnCondition(func() bool { return c.moving })
	m.AddTransition(stateRun, stateIdle).
		OnCondition(func() bool { return !c.moving })

	// Registration order is priority: death outranks hit-stun
	m.AddGlobalTransition(stateDead).
		OnCondition(func() bool { return c.health <= 0 })
	m.AddGlobalTransition(stateHurt).
		OnCondition(func() bool { return c.damaged }).
		WithAction(func() { c.damaged = false })

	m.OnStateChange(func(from, to framefsm.StateID) {
		c.logf("%s -> %s", from, to)
	})
	m.OnStateTimeout(func(state framefsm.StateID) {
		c.logf("%s recovered", state)
	})

	m.SetInitialState(stateIdle)
	c.machine = m
	return c
}

func (c *character) logf(format string, args ...any) {
	c.log = append(c.log, fmt.Sprintf(format, args...))
	if len(c.log) > logLines {
		c.log = c.log[len(c.log)-logLines:]
	}
}
