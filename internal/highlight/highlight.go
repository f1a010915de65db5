// Package highlight tracks which objects carry a visual highlight and why.
// It is pure bookkeeping: the renderer asks for a snapshot each frame and
// draws accordingly. Selection highlights win over hover highlights when an
// object carries both.
package highlight

import "vredit/internal/world"

type Kind int

const (
	KindNone Kind = iota
	KindHover
	KindSelection
)

func (k Kind) String() string {
	switch k {
	case KindHover:
		return "hover"
	case KindSelection:
		return "selection"
	default:
		return "none"
	}
}

type Manager struct {
	byUID map[uint64]Kind
}

func NewManager() *Manager {
	return &Manager{byUID: make(map[uint64]Kind)}
}

// Set applies a highlight of the given kind. A hover highlight never
// downgrades an existing selection highlight.
func (m *Manager) Set(uid uint64, kind Kind) {
	if kind == KindNone {
		m.Clear(uid)
		return
	}
	if current, ok := m.byUID[uid]; ok && current > kind {
		return
	}
	m.byUID[uid] = kind
}

// Clear removes any highlight from the object.
func (m *Manager) Clear(uid uint64) {
	delete(m.byUID, uid)
}

// ClearKind removes every highlight of the given kind.
func (m *Manager) ClearKind(kind Kind) {
	for uid, k := range m.byUID {
		if k == kind {
			delete(m.byUID, uid)
		}
	}
}

func (m *Manager) ClearAll() {
	m.byUID = make(map[uint64]Kind)
}

func (m *Manager) KindOf(uid uint64) Kind {
	return m.byUID[uid]
}

// Snapshot returns the current highlight set for rendering. Objects that no
// longer resolve in the scene are dropped from the map as a side effect.
func (m *Manager) Snapshot(scene *world.Scene) map[uint64]Kind {
	out := make(map[uint64]Kind, len(m.byUID))
	for uid, kind := range m.byUID {
		if scene.FindByUID(uid) == nil {
			delete(m.byUID, uid)
			continue
		}
		out[uid] = kind
	}
	return out
}
