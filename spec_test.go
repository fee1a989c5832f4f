package framefsm

import (
	"strings"
	"testing"
)

const characterSpec = `
initial: idle
states:
  idle:
    transitions:
      - to: run
        condition: moving
  run:
    transitions:
      - to: idle
        condition: stopped
        guard: settled
        action: brake
  hurt:
    timeout: {after: 0.15, to: idle}
  dead: {}
global:
  - to: dead
    condition: health_depleted
`

func newCharacterLoader(moving, depleted *bool, braked *int) *SpecLoader {
	return NewSpecLoader().
		RegisterCondition("moving", func() bool { return *moving }).
		RegisterCondition("stopped", func() bool { return !*moving }).
		RegisterCondition("health_depleted", func() bool { return *depleted }).
		RegisterGuard("settled", func(elapsed float64) bool { return elapsed >= 0.1 }).
		RegisterAction("brake", func() { *braked++ })
}

func TestLoadSpec(t *testing.T) {
	moving, depleted := false, false
	braked := 0

	m, err := newCharacterLoader(&moving, &depleted, &braked).Load([]byte(characterSpec))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !m.Start() {
		t.Fatal("start failed")
	}
	if m.CurrentState() != "idle" {
		t.Fatalf("expected initial state idle, got %s", m.CurrentState())
	}

	moving = true
	m.Update(frame)
	if m.CurrentState() != "run" {
		t.Fatalf("expected run, got %s", m.CurrentState())
	}

	// Guarded transition: condition true but guard needs 0.1s in state
	moving = false
	m.Update(0.05)
	if m.CurrentState() != "run" {
		t.Fatalf("guard should hold the transition, got %s", m.CurrentState())
	}
	m.Update(0.06)
	if m.CurrentState() != "idle" {
		t.Fatalf("expected idle after guard passes, got %s", m.CurrentState())
	}
	if braked != 1 {
		t.Errorf("action should have run once, ran %d times", braked)
	}

	// Global transition wins from any state
	depleted = true
	m.Update(frame)
	if m.CurrentState() != "dead" {
		t.Errorf("expected dead via global transition, got %s", m.CurrentState())
	}
}

func TestLoadSpecTimeout(t *testing.T) {
	moving, depleted := false, false
	braked := 0

	m, err := newCharacterLoader(&moving, &depleted, &braked).Load([]byte(characterSpec))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	m.Start()
	if !m.TransitionTo("hurt") {
		t.Fatal("transition to hurt failed")
	}

	m.Update(0.10)
	m.Update(0.10)

	if m.CurrentState() != "idle" {
		t.Errorf("expected idle after hurt timeout, got %s", m.CurrentState())
	}
}

func TestLoadSpecErrors(t *testing.T) {
	loader := NewSpecLoader().
		RegisterCondition("go", func() bool { return true })

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "bad yaml",
			doc:     "initial: [",
			wantErr: "parse machine spec",
		},
		{
			name:    "missing initial",
			doc:     "states:\n  a: {}\n",
			wantErr: "initial state not set",
		},
		{
			name:    "undeclared initial",
			doc:     "initial: b\nstates:\n  a: {}\n",
			wantErr: `initial state "b" not declared`,
		},
		{
			name:    "undeclared transition target",
			doc:     "initial: a\nstates:\n  a:\n    transitions:\n      - {to: b, condition: go}\n",
			wantErr: `target "b" not declared`,
		},
		{
			name:    "undeclared timeout target",
			doc:     "initial: a\nstates:\n  a:\n    timeout: {after: 1, to: b}\n",
			wantErr: `timeout target "b" not declared`,
		},
		{
			name:    "missing condition",
			doc:     "initial: a\nstates:\n  a:\n    transitions:\n      - {to: a}\n",
			wantErr: "has no condition",
		},
		{
			name:    "unregistered condition",
			doc:     "initial: a\nstates:\n  a:\n    transitions:\n      - {to: a, condition: nope}\n",
			wantErr: `condition "nope" not registered`,
		},
		{
			name:    "unregistered guard",
			doc:     "initial: a\nstates:\n  a:\n    transitions:\n      - {to: a, condition: go, guard: nope}\n",
			wantErr: `guard "nope" not registered`,
		},
		{
			name:    "unregistered action",
			doc:     "initial: a\nstates:\n  a:\n    transitions:\n      - {to: a, condition: go, action: nope}\n",
			wantErr: `action "nope" not registered`,
		},
		{
			name:    "undeclared global target",
			doc:     "initial: a\nstates:\n  a: {}\nglobal:\n  - {to: b, condition: go}\n",
			wantErr: `global transition target "b" not declared`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err)
			}
		})
	}
}
