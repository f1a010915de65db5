package world

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// Layer classifies an object for selection filtering. Only some layers are
// reachable by the edit-mode selection rays.
type Layer int

const (
	LayerStatic Layer = iota
	LayerProps
	LayerClutter
	LayerTerrain
	LayerActor
	LayerWater
	LayerTrigger
)

func (l Layer) String() string {
	switch l {
	case LayerStatic:
		return "static"
	case LayerProps:
		return "props"
	case LayerClutter:
		return "clutter"
	case LayerTerrain:
		return "terrain"
	case LayerActor:
		return "actor"
	case LayerWater:
		return "water"
	case LayerTrigger:
		return "trigger"
	default:
		return "static"
	}
}

// LayerFromString parses a scene-file layer name. Unknown names map to the
// static layer.
func LayerFromString(s string) Layer {
	switch s {
	case "props":
		return LayerProps
	case "clutter":
		return LayerClutter
	case "terrain":
		return LayerTerrain
	case "actor":
		return LayerActor
	case "water":
		return LayerWater
	case "trigger":
		return LayerTrigger
	default:
		return LayerStatic
	}
}

// Selectable reports whether objects on this layer can be picked in edit mode.
// Water and trigger volumes are special-purpose and never selectable.
func (l Layer) Selectable() bool {
	switch l {
	case LayerStatic, LayerProps, LayerClutter, LayerTerrain:
		return true
	default:
		return false
	}
}

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles in degrees
	Scale    mgl32.Vec3
}

// ColliderKind selects the primitive used for ray and sphere tests.
type ColliderKind int

const (
	ColliderBox ColliderKind = iota
	ColliderSphere
)

// Collider is the pickable shape of an object, centered on its position.
type Collider struct {
	Kind   ColliderKind
	Size   mgl32.Vec3 // full extents for ColliderBox
	Radius float32    // for ColliderSphere
}

var nextUID uint64

// Object is a world object that edit mode can select and move.
type Object struct {
	UID       uint64
	Name      string
	Tags      []string
	Layer     Layer
	Transform Transform
	Collider  *Collider
	Scene     *Scene
}

func NewObject(name string) *Object {
	return &Object{
		UID:  atomic.AddUint64(&nextUID, 1),
		Name: name,
		Transform: Transform{
			Position: mgl32.Vec3{},
			Rotation: mgl32.Vec3{},
			Scale:    mgl32.Vec3{1, 1, 1},
		},
	}
}

func (o *Object) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// WorldSize returns the collider box extents scaled by the object transform.
func (o *Object) WorldSize() mgl32.Vec3 {
	if o.Collider == nil {
		return mgl32.Vec3{}
	}
	s := o.Transform.Scale
	return mgl32.Vec3{
		o.Collider.Size.X() * s.X(),
		o.Collider.Size.Y() * s.Y(),
		o.Collider.Size.Z() * s.Z(),
	}
}
