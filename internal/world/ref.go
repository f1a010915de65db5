package world

// ObjectRef is a non-owning reference to an Object by UID. The referenced
// object may be removed from the scene at any time, so every use must
// resolve the ref first and handle nil.
type ObjectRef struct {
	UID uint64 // UID of the referenced object (0 = none)
}

// Get resolves the reference to the live object.
// Returns nil if the reference is empty or the object no longer exists.
func (r ObjectRef) Get(scene *Scene) *Object {
	if r.UID == 0 || scene == nil {
		return nil
	}
	return scene.FindByUID(r.UID)
}

// IsValid returns true if the reference points to something (UID != 0).
// Note: this doesn't check whether the object still exists in the scene.
func (r ObjectRef) IsValid() bool {
	return r.UID != 0
}

// Set points the reference at the given object. Pass nil to clear it.
func (r *ObjectRef) Set(o *Object) {
	if o == nil {
		r.UID = 0
	} else {
		r.UID = o.UID
	}
}

func (r *ObjectRef) Clear() {
	r.UID = 0
}
