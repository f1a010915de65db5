package selection

import "vredit/internal/world"

// SphereHover tracks the set of objects inside the volume-selection sphere
// between throttled containment scans, reporting which objects entered and
// left so highlights can follow.
type SphereHover struct {
	inside map[uint64]bool
}

func NewSphereHover() *SphereHover {
	return &SphereHover{inside: make(map[uint64]bool)}
}

// Update replaces the containment set with the latest scan results and
// returns the uids that entered and exited since the previous scan.
// Unselectable layers are filtered out here so callers can pass raw scan
// output.
func (s *SphereHover) Update(objects []*world.Object) (entered, exited []uint64) {
	next := make(map[uint64]bool, len(objects))
	for _, obj := range objects {
		if !obj.Layer.Selectable() {
			continue
		}
		next[obj.UID] = true
		if !s.inside[obj.UID] {
			entered = append(entered, obj.UID)
		}
	}
	for uid := range s.inside {
		if !next[uid] {
			exited = append(exited, uid)
		}
	}
	s.inside = next
	return entered, exited
}

// Contained returns the uids currently inside the sphere.
func (s *SphereHover) Contained() []uint64 {
	out := make([]uint64, 0, len(s.inside))
	for uid := range s.inside {
		out = append(out, uid)
	}
	return out
}

// Clear empties the containment set and reports what was dropped.
func (s *SphereHover) Clear() (exited []uint64) {
	for uid := range s.inside {
		exited = append(exited, uid)
	}
	s.inside = make(map[uint64]bool)
	return exited
}
