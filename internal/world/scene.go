package world

type Scene struct {
	Name    string
	Objects []*Object

	uidMap map[uint64]*Object
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:    name,
		Objects: make([]*Object, 0),
		uidMap:  make(map[uint64]*Object),
	}
}

func (s *Scene) AddObject(o *Object) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*Object)
	}
	o.Scene = s
	s.Objects = append(s.Objects, o)
	s.uidMap[o.UID] = o
}

func (s *Scene) RemoveObject(o *Object) {
	for i, obj := range s.Objects {
		if obj == o {
			s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
			delete(s.uidMap, o.UID)
			o.Scene = nil
			return
		}
	}
}

// FindByUID resolves a UID to a live object, or nil if it has been removed.
func (s *Scene) FindByUID(uid uint64) *Object {
	if s == nil || uid == 0 {
		return nil
	}
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *Object {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*Object {
	var result []*Object
	for _, o := range s.Objects {
		if o.HasTag(tag) {
			result = append(result, o)
		}
	}
	return result
}
