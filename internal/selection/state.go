// Package selection tracks which objects are selected for editing and which
// object the controller ray is currently hovering.
package selection

import (
	"github.com/rs/zerolog/log"

	"vredit/internal/world"
)

// Info is one selected object together with its transform at selection time,
// so a cancelled edit can restore the object exactly.
type Info struct {
	UID                  uint64
	TransformAtSelection world.Transform
}

// State is the ordered set of selected objects. Order is selection order;
// group moves and highlight rendering both depend on it being stable.
type State struct {
	selected  []Info
	callbacks map[int]func()
	nextID    int
}

func NewState() *State {
	return &State{
		callbacks: make(map[int]func()),
		nextID:    1,
	}
}

// AddChangedCallback registers a function invoked after every selection
// change. Returns an id for RemoveChangedCallback.
func (s *State) AddChangedCallback(cb func()) int {
	id := s.nextID
	s.nextID++
	s.callbacks[id] = cb
	return id
}

func (s *State) RemoveChangedCallback(id int) {
	delete(s.callbacks, id)
}

func (s *State) notify() {
	for _, cb := range s.callbacks {
		cb()
	}
}

func (s *State) indexOf(uid uint64) int {
	for i, info := range s.selected {
		if info.UID == uid {
			return i
		}
	}
	return -1
}

func (s *State) IsSelected(uid uint64) bool {
	return s.indexOf(uid) >= 0
}

func (s *State) Count() int {
	return len(s.selected)
}

// Selected returns the selection in order. The slice is a copy.
func (s *State) Selected() []Info {
	out := make([]Info, len(s.selected))
	copy(out, s.selected)
	return out
}

func (s *State) UIDs() []uint64 {
	out := make([]uint64, len(s.selected))
	for i, info := range s.selected {
		out[i] = info.UID
	}
	return out
}

// SetSingle makes obj the only selected object. If obj is already the sole
// selection the call deselects it instead, so tapping a selected object
// toggles it off.
func (s *State) SetSingle(obj *world.Object) {
	if len(s.selected) == 1 && s.selected[0].UID == obj.UID {
		s.selected = s.selected[:0]
		s.notify()
		return
	}
	s.selected = s.selected[:0]
	s.selected = append(s.selected, Info{UID: obj.UID, TransformAtSelection: obj.Transform})
	s.notify()
}

// Add appends obj to the selection if not already present.
func (s *State) Add(obj *world.Object) {
	if s.IsSelected(obj.UID) {
		return
	}
	s.selected = append(s.selected, Info{UID: obj.UID, TransformAtSelection: obj.Transform})
	s.notify()
}

// Remove drops the object from the selection. No-op if absent.
func (s *State) Remove(uid uint64) {
	i := s.indexOf(uid)
	if i < 0 {
		return
	}
	s.selected = append(s.selected[:i], s.selected[i+1:]...)
	s.notify()
}

// Toggle adds the object if absent and removes it if present. This is the
// multi-select path.
func (s *State) Toggle(obj *world.Object) {
	if s.IsSelected(obj.UID) {
		s.Remove(obj.UID)
		return
	}
	s.Add(obj)
}

// ReduceToSingle keeps only the named object, preserving its original
// selection-time transform. If absent the selection is cleared.
func (s *State) ReduceToSingle(uid uint64) {
	i := s.indexOf(uid)
	if i < 0 {
		s.ClearAll()
		return
	}
	keep := s.selected[i]
	s.selected = s.selected[:0]
	s.selected = append(s.selected, keep)
	s.notify()
}

func (s *State) ClearAll() {
	if len(s.selected) == 0 {
		return
	}
	s.selected = s.selected[:0]
	s.notify()
}

// Prune drops selected objects that no longer resolve in the scene.
func (s *State) Prune(scene *world.Scene) {
	kept := s.selected[:0]
	removed := 0
	for _, info := range s.selected {
		if scene.FindByUID(info.UID) == nil {
			removed++
			continue
		}
		kept = append(kept, info)
	}
	if removed == 0 {
		return
	}
	log.Debug().Int("removed", removed).Msg("selection: pruned stale objects")
	s.selected = kept
	s.notify()
}
