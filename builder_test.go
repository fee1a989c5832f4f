package framefsm

import "testing"

func TestAddStateIdempotent(t *testing.T) {
	entered := 0

	m := New()
	m.AddState(stateIdle).OnEnter(func() { entered++ })

	// Re-adding must return the existing state with its callbacks intact
	again := m.AddState(stateIdle)
	if again != m.states[stateIdle] {
		t.Fatal("re-adding a state should return the existing one")
	}

	m.SetInitialState(stateIdle)
	m.Start()

	if entered != 1 {
		t.Errorf("enter callback should survive re-adding, ran %d times", entered)
	}
}

func TestStateChaining(t *testing.T) {
	m := New()
	s := m.AddState(stateHurt).
		OnEnter(func() {}).
		OnExit(func() {}).
		OnUpdate(func(delta float64) {}).
		OnTimeout(func() {}).
		TimeoutAfter(0.15, stateIdle)

	if s.ID() != stateHurt {
		t.Errorf("chain should return the same state, got %s", s.ID())
	}
	if !s.hasTimeout() || s.timeoutDuration != 0.15 || s.timeoutTarget != stateIdle {
		t.Error("timeout configuration lost through chaining")
	}
}

func TestTimeoutAfterClampsNegative(t *testing.T) {
	m := New()
	s := m.AddState(stateHurt).TimeoutAfter(-3, stateIdle)

	if s.timeoutDuration != 0 {
		t.Errorf("negative timeout should clamp to 0, got %g", s.timeoutDuration)
	}

	// Zero duration means the timeout fires on the first evaluated frame
	m.AddState(stateIdle)
	m.SetInitialState(stateHurt)
	m.Start()
	m.Update(0.001)

	if m.CurrentState() != stateIdle {
		t.Errorf("clamped timeout should fire immediately, got %s", m.CurrentState())
	}
}

func TestCallbackOverwrite(t *testing.T) {
	firstRan := false
	secondRan := false

	m := New()
	m.AddState(stateIdle).
		OnEnter(func() { firstRan = true }).
		OnEnter(func() { secondRan = true })
	m.SetInitialState(stateIdle)
	m.Start()

	if firstRan {
		t.Error("overwritten callback should not run")
	}
	if !secondRan {
		t.Error("last registered callback should run")
	}
}

func TestAddTransitionUnknownFrom(t *testing.T) {
	m := New()
	m.AddState(stateIdle)

	// Detached handle: chaining is safe, nothing is attached to the machine
	tr := m.AddTransition("nope", stateIdle).OnCondition(func() bool { return true })
	if tr == nil {
		t.Fatal("AddTransition should never return nil")
	}

	m.SetInitialState(stateIdle)
	m.Start()
	m.Update(frame)

	if m.CurrentState() != stateIdle {
		t.Errorf("detached transition must not fire, got %s", m.CurrentState())
	}
}

func TestTransitionConfigLastWriteWins(t *testing.T) {
	m := New()
	m.AddState(stateIdle)
	m.AddState(stateRun)

	tr := m.AddTransition(stateIdle, stateRun).
		OnCondition(func() bool { return false }).
		OnCondition(func() bool { return true })

	if tr.To() != stateRun {
		t.Errorf("expected destination %s, got %s", stateRun, tr.To())
	}

	m.SetInitialState(stateIdle)
	m.Start()
	m.Update(frame)

	if m.CurrentState() != stateRun {
		t.Errorf("last registered condition should be in effect, got %s", m.CurrentState())
	}
}
