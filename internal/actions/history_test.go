package actions

import (
	"fmt"
	"testing"

	"vredit/internal/world"
)

func movedObject(scene *world.Scene, name string) (*world.Object, Move) {
	obj := world.NewObject(name)
	scene.AddObject(obj)
	before := obj.Transform
	obj.Transform.Position = [3]float32{5, 0, 0}
	return obj, Move{UID: obj.UID, Before: before, After: obj.Transform}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	scene := world.NewScene("test")
	obj, move := movedObject(scene, "crate")

	h := NewHistory(0)
	h.Record("move crate", []Move{move})

	if !h.Undo(scene) {
		t.Fatal("Undo should succeed")
	}
	if obj.Transform.Position != move.Before.Position {
		t.Error("undo should restore the pre-move transform")
	}

	if !h.Redo(scene) {
		t.Fatal("Redo should succeed")
	}
	if obj.Transform.Position != move.After.Position {
		t.Error("redo should re-apply the move")
	}
}

func TestRecordClearsRedo(t *testing.T) {
	scene := world.NewScene("test")
	_, move := movedObject(scene, "a")
	h := NewHistory(0)
	h.Record("first", []Move{move})
	h.Undo(scene)

	_, move2 := movedObject(scene, "b")
	h.Record("second", []Move{move2})
	if h.CanRedo() {
		t.Error("recording a new action must clear the redo stack")
	}
}

func TestHistoryCapacityDropsOldest(t *testing.T) {
	scene := world.NewScene("test")
	h := NewHistory(2)
	for i := 0; i < 3; i++ {
		_, move := movedObject(scene, fmt.Sprintf("obj%d", i))
		h.Record("move", []Move{move})
	}

	if !h.Undo(scene) || !h.Undo(scene) {
		t.Fatal("two undos should succeed")
	}
	if h.Undo(scene) {
		t.Error("third undo should fail, the oldest action fell off")
	}
}

func TestUndoSkipsRemovedObjects(t *testing.T) {
	scene := world.NewScene("test")
	obj, move := movedObject(scene, "crate")
	h := NewHistory(0)
	h.Record("move", []Move{move})

	scene.RemoveObject(obj)
	if !h.Undo(scene) {
		t.Error("Undo should still succeed with the object gone")
	}
}

func TestEmptyRecordIsDropped(t *testing.T) {
	h := NewHistory(0)
	h.Record("nothing", nil)
	if h.CanUndo() {
		t.Error("empty actions must not enter the history")
	}
}
