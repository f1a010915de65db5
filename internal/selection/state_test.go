package selection

import (
	"testing"

	"vredit/internal/world"
)

func makeObject(name string) *world.Object {
	obj := world.NewObject(name)
	obj.Layer = world.LayerProps
	return obj
}

func TestSetSingleTogglesOffSoleSelection(t *testing.T) {
	s := NewState()
	obj := makeObject("crate")

	s.SetSingle(obj)
	if !s.IsSelected(obj.UID) {
		t.Fatal("object should be selected after SetSingle")
	}

	s.SetSingle(obj)
	if s.Count() != 0 {
		t.Error("SetSingle on the sole selected object should deselect it")
	}
}

func TestSetSingleReplacesMultiSelection(t *testing.T) {
	s := NewState()
	a, b := makeObject("a"), makeObject("b")
	s.Add(a)
	s.Add(b)

	s.SetSingle(a)
	if s.Count() != 1 || !s.IsSelected(a.UID) {
		t.Error("SetSingle should collapse a multi-selection to the tapped object")
	}
}

func TestToggleAddsAndRemoves(t *testing.T) {
	s := NewState()
	a, b := makeObject("a"), makeObject("b")

	s.Toggle(a)
	s.Toggle(b)
	if s.Count() != 2 {
		t.Fatalf("Count = %d, want 2", s.Count())
	}

	s.Toggle(a)
	if s.IsSelected(a.UID) || !s.IsSelected(b.UID) {
		t.Error("Toggle should remove a and keep b")
	}
}

func TestSelectionOrderIsStable(t *testing.T) {
	s := NewState()
	a, b, c := makeObject("a"), makeObject("b"), makeObject("c")
	s.Add(a)
	s.Add(b)
	s.Add(c)
	s.Remove(b.UID)

	uids := s.UIDs()
	want := []uint64{a.UID, c.UID}
	if len(uids) != len(want) {
		t.Fatalf("UIDs = %v, want %v", uids, want)
	}
	for i := range want {
		if uids[i] != want[i] {
			t.Errorf("UIDs[%d] = %d, want %d", i, uids[i], want[i])
		}
	}
}

func TestSelectionCapturesTransform(t *testing.T) {
	s := NewState()
	obj := makeObject("crate")
	obj.Transform.Position = [3]float32{1, 2, 3}

	s.Add(obj)
	obj.Transform.Position = [3]float32{9, 9, 9}

	got := s.Selected()[0].TransformAtSelection.Position
	if got != [3]float32{1, 2, 3} {
		t.Errorf("TransformAtSelection.Position = %v, want the position at Add time", got)
	}
}

func TestReduceToSingle(t *testing.T) {
	s := NewState()
	a, b := makeObject("a"), makeObject("b")
	s.Add(a)
	s.Add(b)

	s.ReduceToSingle(b.UID)
	if s.Count() != 1 || !s.IsSelected(b.UID) {
		t.Error("ReduceToSingle should keep only b")
	}

	s.ReduceToSingle(12345)
	if s.Count() != 0 {
		t.Error("ReduceToSingle with an unknown uid should clear the selection")
	}
}

func TestChangedCallbackFires(t *testing.T) {
	s := NewState()
	obj := makeObject("crate")
	calls := 0
	id := s.AddChangedCallback(func() { calls++ })

	s.Add(obj)
	s.Remove(obj.UID)
	if calls != 2 {
		t.Errorf("callback ran %d times, want 2", calls)
	}

	s.RemoveChangedCallback(id)
	s.Add(obj)
	if calls != 2 {
		t.Error("removed callback should not fire")
	}
}

func TestClearAllOnEmptyDoesNotNotify(t *testing.T) {
	s := NewState()
	calls := 0
	s.AddChangedCallback(func() { calls++ })
	s.ClearAll()
	if calls != 0 {
		t.Error("ClearAll on an empty selection should not notify")
	}
}

func TestPruneDropsStaleObjects(t *testing.T) {
	scene := world.NewScene("test")
	a, b := makeObject("a"), makeObject("b")
	scene.AddObject(a)
	scene.AddObject(b)

	s := NewState()
	s.Add(a)
	s.Add(b)

	scene.RemoveObject(a)
	s.Prune(scene)

	if s.IsSelected(a.UID) {
		t.Error("removed object should be pruned")
	}
	if !s.IsSelected(b.UID) {
		t.Error("live object must survive pruning")
	}
}
