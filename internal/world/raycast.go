package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type RaycastHit struct {
	Object   *Object
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// Raycast checks for intersection with all collidable objects and returns the closest hit.
func (s *Scene) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (RaycastHit, bool) {
	if direction.Len() > 0 {
		direction = direction.Normalize()
	}
	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	for _, obj := range s.Objects {
		if obj.Collider == nil {
			continue
		}
		var hitInfo RaycastHit
		var ok bool
		switch obj.Collider.Kind {
		case ColliderBox:
			hitInfo, ok = raycastBox(origin, direction, obj, maxDistance)
		case ColliderSphere:
			hitInfo, ok = raycastSphere(origin, direction, obj, maxDistance)
		}
		if ok && hitInfo.Distance < closestHit.Distance {
			closestHit = hitInfo
			closestHit.Object = obj
			hit = true
		}
	}

	return closestHit, hit
}

// ObjectsInSphere returns every collidable object whose shape intersects the
// sphere at center with the given radius. Used by volume selection.
func (s *Scene) ObjectsInSphere(center mgl32.Vec3, radius float32) []*Object {
	var result []*Object
	for _, obj := range s.Objects {
		if obj.Collider == nil {
			continue
		}
		switch obj.Collider.Kind {
		case ColliderBox:
			min, max := boxBounds(obj)
			// Distance from center to the closest point on the box
			closest := mgl32.Vec3{
				clamp(center.X(), min.X(), max.X()),
				clamp(center.Y(), min.Y(), max.Y()),
				clamp(center.Z(), min.Z(), max.Z()),
			}
			if closest.Sub(center).Len() <= radius {
				result = append(result, obj)
			}
		case ColliderSphere:
			if obj.Transform.Position.Sub(center).Len() <= radius+obj.Collider.Radius {
				result = append(result, obj)
			}
		}
	}
	return result
}

func boxBounds(obj *Object) (min, max mgl32.Vec3) {
	center := obj.Transform.Position
	worldSize := obj.WorldSize()
	halfSize := mgl32.Vec3{abs(worldSize.X()) / 2, abs(worldSize.Y()) / 2, abs(worldSize.Z()) / 2}
	min = center.Sub(halfSize)
	max = center.Add(halfSize)
	return
}

func raycastBox(origin, direction mgl32.Vec3, obj *Object, maxDistance float32) (RaycastHit, bool) {
	min, max := boxBounds(obj)

	var tmin, tmax float32

	// X slab
	if direction.X() != 0 {
		t1 := (min.X() - origin.X()) / direction.X()
		t2 := (max.X() - origin.X()) / direction.X()
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = t1
		tmax = t2
	} else if origin.X() < min.X() || origin.X() > max.X() {
		return RaycastHit{}, false
	} else {
		tmin = -1e30
		tmax = 1e30
	}

	// Y slab
	if direction.Y() != 0 {
		t1 := (min.Y() - origin.Y()) / direction.Y()
		t2 := (max.Y() - origin.Y()) / direction.Y()
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if origin.Y() < min.Y() || origin.Y() > max.Y() {
		return RaycastHit{}, false
	}

	if tmin > tmax {
		return RaycastHit{}, false
	}

	// Z slab
	if direction.Z() != 0 {
		t1 := (min.Z() - origin.Z()) / direction.Z()
		t2 := (max.Z() - origin.Z()) / direction.Z()
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if origin.Z() < min.Z() || origin.Z() > max.Z() {
		return RaycastHit{}, false
	}

	if tmin > tmax || tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := origin.Add(direction.Mul(t))

	// Calculate normal based on which face was hit
	var normal mgl32.Vec3
	epsilon := float32(0.001)
	switch {
	case abs(point.X()-min.X()) < epsilon:
		normal = mgl32.Vec3{-1, 0, 0}
	case abs(point.X()-max.X()) < epsilon:
		normal = mgl32.Vec3{1, 0, 0}
	case abs(point.Y()-min.Y()) < epsilon:
		normal = mgl32.Vec3{0, -1, 0}
	case abs(point.Y()-max.Y()) < epsilon:
		normal = mgl32.Vec3{0, 1, 0}
	case abs(point.Z()-min.Z()) < epsilon:
		normal = mgl32.Vec3{0, 0, -1}
	default:
		normal = mgl32.Vec3{0, 0, 1}
	}

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

func raycastSphere(origin, direction mgl32.Vec3, obj *Object, maxDistance float32) (RaycastHit, bool) {
	center := obj.Transform.Position
	radius := obj.Collider.Radius

	oc := origin.Sub(center)
	a := direction.Dot(direction)
	b := 2.0 * oc.Dot(direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	t := (-b - float32(math.Sqrt(float64(discriminant)))) / (2 * a)
	if t < 0 {
		t = (-b + float32(math.Sqrt(float64(discriminant)))) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := origin.Add(direction.Mul(t))
	normal := point.Sub(center).Normalize()

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
