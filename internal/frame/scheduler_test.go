package frame

import "testing"

type recordingListener struct {
	calls  int
	deltas []float32
	onCall func()
}

func (r *recordingListener) OnFrameUpdate(deltaTime float32) {
	r.calls++
	r.deltas = append(r.deltas, deltaTime)
	if r.onCall != nil {
		r.onCall()
	}
}

func TestRegisterDuplicateIsNoop(t *testing.T) {
	s := NewScheduler()
	l := &recordingListener{}

	s.Register(l, false)
	s.Register(l, false)

	if s.ListenerCount() != 1 {
		t.Errorf("duplicate Register should be a no-op, got %d listeners", s.ListenerCount())
	}

	s.Advance(0.016)
	if l.calls != 1 {
		t.Errorf("listener should run once per frame, ran %d times", l.calls)
	}
}

func TestUnregisterAbsentIsNoop(t *testing.T) {
	s := NewScheduler()
	l := &recordingListener{}

	s.Unregister(l) // never registered

	s.Register(l, false)
	s.Unregister(l)
	s.Unregister(l) // second removal

	if s.ListenerCount() != 0 {
		t.Errorf("expected 0 listeners, got %d", s.ListenerCount())
	}
}

func TestEditModeOnlyListenersSkipped(t *testing.T) {
	s := NewScheduler()
	active := false
	s.SetEditModeQuery(func() bool { return active })

	always := &recordingListener{}
	editOnly := &recordingListener{}
	s.Register(always, false)
	s.Register(editOnly, true)

	s.Advance(0.016)
	if always.calls != 1 {
		t.Errorf("unconditional listener should run, got %d calls", always.calls)
	}
	if editOnly.calls != 0 {
		t.Errorf("edit-mode-only listener should be skipped, got %d calls", editOnly.calls)
	}

	active = true
	s.Advance(0.016)
	if editOnly.calls != 1 {
		t.Errorf("edit-mode-only listener should run when edit mode is on, got %d calls", editOnly.calls)
	}
}

func TestReentrantUnregisterDoesNotSkipOthers(t *testing.T) {
	s := NewScheduler()

	a := &recordingListener{}
	b := &recordingListener{}
	c := &recordingListener{}

	// a unregisters b during its own invocation; c must still run exactly once.
	a.onCall = func() { s.Unregister(b) }

	s.Register(a, false)
	s.Register(b, false)
	s.Register(c, false)

	s.Advance(0.016)

	if a.calls != 1 {
		t.Errorf("listener a should run once, ran %d times", a.calls)
	}
	// b was unregistered mid-frame but was part of the snapshot, so it still
	// runs this tick; it must not run on the next one.
	if b.calls != 1 {
		t.Errorf("listener b should run once from the snapshot, ran %d times", b.calls)
	}
	if c.calls != 1 {
		t.Errorf("listener c should run exactly once, ran %d times", c.calls)
	}

	s.Advance(0.016)
	if b.calls != 1 {
		t.Errorf("unregistered listener b ran again, total %d calls", b.calls)
	}
}

func TestReentrantRegisterDoesNotRunThisTick(t *testing.T) {
	s := NewScheduler()

	late := &recordingListener{}
	first := &recordingListener{}
	first.onCall = func() { s.Register(late, false) }

	s.Register(first, false)
	s.Advance(0.016)

	if late.calls != 0 {
		t.Errorf("listener registered mid-frame should not run this tick, ran %d times", late.calls)
	}

	s.Advance(0.016)
	if late.calls != 1 {
		t.Errorf("listener registered last frame should run this tick, ran %d times", late.calls)
	}
}

func TestPanickingListenerDoesNotAbortFrame(t *testing.T) {
	s := NewScheduler()

	bad := &recordingListener{onCall: func() { panic("boom") }}
	good := &recordingListener{}

	s.Register(bad, false)
	s.Register(good, false)

	s.Advance(0.016)

	if good.calls != 1 {
		t.Errorf("listener after a panicking one should still run, got %d calls", good.calls)
	}
}

func TestAdvancePassesDelta(t *testing.T) {
	s := NewScheduler()
	l := &recordingListener{}
	s.Register(l, false)

	s.Advance(0.05)
	s.Advance(0.2)

	if len(l.deltas) != 2 || l.deltas[0] != 0.05 || l.deltas[1] != 0.2 {
		t.Errorf("unexpected deltas: %v", l.deltas)
	}
}

func TestFirstTickUsesNominalDelta(t *testing.T) {
	s := NewScheduler()
	l := &recordingListener{}
	s.Register(l, false)

	s.Tick()

	if len(l.deltas) != 1 {
		t.Fatalf("expected 1 update, got %d", len(l.deltas))
	}
	if l.deltas[0] != nominalDelta {
		t.Errorf("first tick should use the nominal delta, got %f", l.deltas[0])
	}
}
