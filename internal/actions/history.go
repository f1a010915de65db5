// Package actions keeps a bounded undo/redo history of editor operations.
package actions

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"vredit/internal/world"
)

// DefaultCapacity bounds the history length; the oldest actions fall off.
const DefaultCapacity = 64

// Move is one object's transform change inside an action.
type Move struct {
	UID    uint64
	Before world.Transform
	After  world.Transform
}

// Action is one undoable editor operation, usually a group move.
type Action struct {
	ID    uuid.UUID
	Name  string
	Moves []Move
}

// History is the undo/redo stack. Recording a new action clears the redo
// side, as in every conventional editor.
type History struct {
	capacity int
	undo     []Action
	redo     []Action
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Record pushes a completed action. Empty actions are dropped.
func (h *History) Record(name string, moves []Move) uuid.UUID {
	if len(moves) == 0 {
		return uuid.Nil
	}
	a := Action{ID: uuid.New(), Name: name, Moves: moves}
	h.undo = append(h.undo, a)
	if len(h.undo) > h.capacity {
		h.undo = h.undo[1:]
	}
	h.redo = nil
	log.Debug().Str("action", name).Int("moves", len(moves)).Msg("actions: recorded")
	return a.ID
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Undo reverts the most recent action against the scene. Objects that no
// longer resolve are skipped.
func (h *History) Undo(scene *world.Scene) bool {
	if len(h.undo) == 0 {
		return false
	}
	a := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	for _, m := range a.Moves {
		if obj := scene.FindByUID(m.UID); obj != nil {
			obj.Transform = m.Before
		}
	}
	h.redo = append(h.redo, a)
	log.Info().Str("action", a.Name).Msg("actions: undone")
	return true
}

// Redo re-applies the most recently undone action.
func (h *History) Redo(scene *world.Scene) bool {
	if len(h.redo) == 0 {
		return false
	}
	a := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	for _, m := range a.Moves {
		if obj := scene.FindByUID(m.UID); obj != nil {
			obj.Transform = m.After
		}
	}
	h.undo = append(h.undo, a)
	log.Info().Str("action", a.Name).Msg("actions: redone")
	return true
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
