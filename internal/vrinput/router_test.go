package vrinput

import "testing"

func newTestRouter() *Router {
	r := NewRouter(nil)
	r.Initialize()
	return r
}

type edge struct {
	hand     Hand
	released bool
	button   Button
}

func TestButtonEdgeDedup(t *testing.T) {
	r := newTestRouter()

	var events []edge
	r.AddButtonCallback(MaskFromButton(ButtonTrigger), 0, func(hand Hand, released bool, button Button) bool {
		events = append(events, edge{hand, released, button})
		return false
	})

	trigger := MaskFromButton(ButtonTrigger)

	// Held for three frames: exactly one press event
	r.ProcessState(HandRight, trigger, [AxisCount]Axis{})
	r.ProcessState(HandRight, trigger, [AxisCount]Axis{})
	r.ProcessState(HandRight, trigger, [AxisCount]Axis{})
	// Released: exactly one release event
	r.ProcessState(HandRight, 0, [AxisCount]Axis{})
	r.ProcessState(HandRight, 0, [AxisCount]Axis{})

	if len(events) != 2 {
		t.Fatalf("expected 1 press + 1 release, got %d events", len(events))
	}
	if events[0].released || events[0].button != ButtonTrigger {
		t.Errorf("first event should be trigger press, got %+v", events[0])
	}
	if !events[1].released {
		t.Errorf("second event should be trigger release, got %+v", events[1])
	}
}

func TestMaskFiltering(t *testing.T) {
	r := newTestRouter()

	calls := 0
	r.AddButtonCallback(MaskFromButton(ButtonGrip), 0, func(Hand, bool, Button) bool {
		calls++
		return false
	})

	r.ProcessState(HandRight, MaskFromButton(ButtonTrigger), [AxisCount]Axis{})
	if calls != 0 {
		t.Error("grip subscriber should not see trigger events")
	}

	r.ProcessState(HandRight, MaskFromButton(ButtonTrigger)|MaskFromButton(ButtonGrip), [AxisCount]Axis{})
	if calls != 1 {
		t.Errorf("grip subscriber should see the grip press, got %d calls", calls)
	}
}

func TestConsumedButtonBlockedWhileHeld(t *testing.T) {
	r := newTestRouter()

	r.AddButtonCallback(MaskFromButton(ButtonTrigger), 0, func(Hand, bool, Button) bool {
		return true // consume
	})

	trigger := MaskFromButton(ButtonTrigger)

	out := r.ProcessState(HandRight, trigger, [AxisCount]Axis{})
	if out.Buttons&trigger != 0 {
		t.Error("consumed press should be withheld from the host")
	}

	// Still held: stays blocked even without a new edge
	out = r.ProcessState(HandRight, trigger, [AxisCount]Axis{})
	if out.Buttons&trigger != 0 {
		t.Error("consumed button should stay blocked while held")
	}

	out = r.ProcessState(HandRight, 0, [AxisCount]Axis{})
	if out.Buttons != 0 {
		t.Error("release should clear the block")
	}

	// A fresh press with no consumption from a second subscriber is still
	// consumed by the first one.
	out = r.ProcessState(HandRight, trigger, [AxisCount]Axis{})
	if out.Buttons&trigger != 0 {
		t.Error("fresh press should be consumed again")
	}
}

func TestPriorityOrdering(t *testing.T) {
	r := newTestRouter()

	var order []string
	r.AddButtonCallback(MaskFromButton(ButtonTrigger), 0, func(Hand, bool, Button) bool {
		order = append(order, "low")
		return false
	})
	r.AddButtonCallback(MaskFromButton(ButtonTrigger), 10, func(Hand, bool, Button) bool {
		order = append(order, "high")
		return false
	})
	r.AddButtonCallback(MaskFromButton(ButtonTrigger), 0, func(Hand, bool, Button) bool {
		order = append(order, "low2")
		return false
	})

	r.ProcessState(HandRight, MaskFromButton(ButtonTrigger), [AxisCount]Axis{})

	if len(order) != 3 || order[0] != "high" || order[1] != "low" || order[2] != "low2" {
		t.Errorf("expected priority order [high low low2], got %v", order)
	}
}

func TestRemoveCallbackIdempotent(t *testing.T) {
	r := newTestRouter()

	calls := 0
	id := r.AddButtonCallback(MaskFromButton(ButtonTrigger), 0, func(Hand, bool, Button) bool {
		calls++
		return false
	})

	r.RemoveButtonCallback(id)
	r.RemoveButtonCallback(id) // second removal is a no-op
	r.RemoveButtonCallback(InvalidCallbackID)

	r.ProcessState(HandRight, MaskFromButton(ButtonTrigger), [AxisCount]Axis{})
	if calls != 0 {
		t.Error("removed callback should not be invoked")
	}
}

func TestMenuBlocksDispatchButTracksEdges(t *testing.T) {
	menuOpen := false
	r := NewRouter(func() bool { return menuOpen })
	r.Initialize()

	calls := 0
	r.AddButtonCallback(MaskFromButton(ButtonTrigger), 0, func(Hand, bool, Button) bool {
		calls++
		return false
	})

	menuOpen = true
	r.ProcessState(HandRight, MaskFromButton(ButtonTrigger), [AxisCount]Axis{})
	if calls != 0 {
		t.Error("no dispatch while a blocking menu is open")
	}

	// Menu closes while the button is still held: no synthetic press event.
	menuOpen = false
	r.ProcessState(HandRight, MaskFromButton(ButtonTrigger), [AxisCount]Axis{})
	if calls != 0 {
		t.Error("held button must not produce a new press edge after the menu closes")
	}
}

func TestReentrantCallbackRegistration(t *testing.T) {
	r := newTestRouter()

	lateCalls := 0
	r.AddButtonCallback(MaskFromButton(ButtonTrigger), 0, func(Hand, bool, Button) bool {
		r.AddButtonCallback(MaskFromButton(ButtonTrigger), 0, func(Hand, bool, Button) bool {
			lateCalls++
			return false
		})
		return false
	})

	// Registration during dispatch must not run in the same dispatch.
	r.ProcessState(HandRight, MaskFromButton(ButtonTrigger), [AxisCount]Axis{})
	if lateCalls != 0 {
		t.Errorf("callback registered during dispatch ran in the same dispatch (%d calls)", lateCalls)
	}
}

func TestAxisConsumeZeroesOutput(t *testing.T) {
	r := newTestRouter()

	r.AddAxisCallback(0, 0, func(hand Hand, axis int, x, y float32) bool {
		return y > 0.5 // consume strong up input only
	})

	axes := [AxisCount]Axis{{X: 0.1, Y: 0.9}, {X: 0.3}}
	out := r.ProcessState(HandRight, 0, axes)

	if out.Axes[0].X != 0 || out.Axes[0].Y != 0 {
		t.Errorf("consumed axis should be zeroed, got %+v", out.Axes[0])
	}
	if out.Axes[1].X != 0.3 {
		t.Errorf("unconsumed axis should pass through, got %+v", out.Axes[1])
	}
}

func TestHandsTrackedIndependently(t *testing.T) {
	r := newTestRouter()

	var events []edge
	r.AddButtonCallback(MaskFromButton(ButtonTrigger), 0, func(hand Hand, released bool, button Button) bool {
		events = append(events, edge{hand, released, button})
		return false
	})

	trigger := MaskFromButton(ButtonTrigger)
	r.ProcessState(HandLeft, trigger, [AxisCount]Axis{})
	r.ProcessState(HandRight, trigger, [AxisCount]Axis{})
	r.ProcessState(HandLeft, 0, [AxisCount]Axis{})

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].hand != HandLeft || events[1].hand != HandRight {
		t.Errorf("hand attribution wrong: %+v", events)
	}
	if !events[2].released || events[2].hand != HandLeft {
		t.Errorf("left release expected, got %+v", events[2])
	}
}
