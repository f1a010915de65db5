// Package grab implements the three selection/placement mechanisms of the
// editor: ray hover selection, sphere volume selection, and remote grab
// movement of the selected group. All controllers are frame listeners and
// read controller pose through the Pose interface so tests can drive them
// with fixed rays.
package grab

import (
	"github.com/go-gl/mathgl/mgl32"

	"vredit/internal/vrinput"
)

// Pose supplies the aim ray of a controller. The direction is normalized.
type Pose interface {
	HandRay(hand vrinput.Hand) (origin, direction mgl32.Vec3)
}

// thumbstickDeadzone is ignored deflection around the stick center.
const thumbstickDeadzone = 0.2

// deadzoneRemap maps stick deflection to [-1, 1] with the deadzone removed,
// so movement starts smoothly at the deadzone edge instead of jumping.
func deadzoneRemap(v float32) float32 {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	if abs <= thumbstickDeadzone {
		return 0
	}
	scaled := (abs - thumbstickDeadzone) / (1 - thumbstickDeadzone)
	if v < 0 {
		return -scaled
	}
	return scaled
}

// rayBasis builds two unit vectors perpendicular to dir, used to offset the
// side rays of the hover ray bundle.
func rayBasis(dir mgl32.Vec3) (right, up mgl32.Vec3) {
	worldUp := mgl32.Vec3{0, 1, 0}
	if abs32(dir.Dot(worldUp)) > 0.99 {
		worldUp = mgl32.Vec3{1, 0, 0}
	}
	right = dir.Cross(worldUp).Normalize()
	up = right.Cross(dir).Normalize()
	return right, up
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
