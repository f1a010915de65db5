package grab

import (
	"github.com/go-gl/mathgl/mgl32"

	"vredit/internal/highlight"
	"vredit/internal/selection"
	"vredit/internal/vrinput"
	"vredit/internal/world"
)

const (
	sphereMinRadius      = 0.25
	sphereMaxRadius      = 5.0
	sphereDefaultRadius  = 1.0
	spherePlacementRange = 10.0 // sphere floats here when the ray hits nothing
	sphereRadiusRate     = 2.0  // radius units per second at full stick deflection
	defaultScanInterval  = 0.1
)

// SphereSelectionController drives volume selection: a sphere positioned
// along the hand ray whose radius is resized with the thumbstick. Scene
// containment scans are throttled; between scans the last result stands.
type SphereSelectionController struct {
	scene       *world.Scene
	pose        Pose
	highlights  *highlight.Manager
	activeQuery func() bool

	hand      vrinput.Hand
	contained *selection.SphereHover

	center       mgl32.Vec3
	radius       float32
	scanInterval float32
	sinceScan    float32
	stickY       float32
}

func NewSphereSelectionController(scene *world.Scene, pose Pose, highlights *highlight.Manager, activeQuery func() bool) *SphereSelectionController {
	return &SphereSelectionController{
		scene:        scene,
		pose:         pose,
		highlights:   highlights,
		activeQuery:  activeQuery,
		hand:         vrinput.HandRight,
		contained:    selection.NewSphereHover(),
		radius:       sphereDefaultRadius,
		scanInterval: defaultScanInterval,
	}
}

func (c *SphereSelectionController) SetHand(hand vrinput.Hand) {
	c.hand = hand
}

// SetScanInterval overrides the containment scan throttle.
func (c *SphereSelectionController) SetScanInterval(seconds float32) {
	if seconds >= 0 {
		c.scanInterval = seconds
	}
}

func (c *SphereSelectionController) Radius() float32 {
	return c.radius
}

func (c *SphereSelectionController) Center() mgl32.Vec3 {
	return c.center
}

// OnAxisInput consumes the thumbstick while volume selection is active so
// the host never sees it. Registered on the raw router.
func (c *SphereSelectionController) OnAxisInput(hand vrinput.Hand, axis int, x, y float32) bool {
	if axis != 0 || hand != c.hand {
		return false
	}
	if c.activeQuery != nil && !c.activeQuery() {
		c.stickY = 0
		return false
	}
	c.stickY = y
	return true
}

// HoverTarget reports the contained object closest to the sphere center,
// which is what a trigger hold will grab.
func (c *SphereSelectionController) HoverTarget() (uint64, mgl32.Vec3, bool) {
	var best *world.Object
	var bestDist float32
	for _, uid := range c.contained.Contained() {
		obj := c.scene.FindByUID(uid)
		if obj == nil {
			continue
		}
		d := obj.Transform.Position.Sub(c.center).Len()
		if best == nil || d < bestDist {
			best = obj
			bestDist = d
		}
	}
	if best == nil {
		return 0, mgl32.Vec3{}, false
	}
	return best.UID, best.Transform.Position, true
}

// OnFrameUpdate implements frame.UpdateListener.
func (c *SphereSelectionController) OnFrameUpdate(deltaTime float32) {
	if c.activeQuery != nil && !c.activeQuery() {
		c.drop()
		return
	}

	origin, dir := c.pose.HandRay(c.hand)
	if dir.Len() == 0 {
		c.drop()
		return
	}
	dir = dir.Normalize()

	// Sphere rides the ray: at the first hit point, or at full range when
	// the ray hits nothing.
	if hit, ok := c.scene.Raycast(origin, dir, spherePlacementRange); ok {
		c.center = hit.Point
	} else {
		c.center = origin.Add(dir.Mul(spherePlacementRange))
	}

	c.radius = clamp32(c.radius+deadzoneRemap(c.stickY)*sphereRadiusRate*deltaTime,
		sphereMinRadius, sphereMaxRadius)

	c.sinceScan += deltaTime
	if c.sinceScan < c.scanInterval {
		return
	}
	c.sinceScan = 0

	entered, exited := c.contained.Update(c.scene.ObjectsInSphere(c.center, c.radius))
	for _, uid := range exited {
		c.unhighlightHover(uid)
	}
	for _, uid := range entered {
		c.highlights.Set(uid, highlight.KindHover)
	}
}

// drop clears containment state and hover highlights when leaving volume
// selection.
func (c *SphereSelectionController) drop() {
	for _, uid := range c.contained.Clear() {
		c.unhighlightHover(uid)
	}
	c.stickY = 0
	c.sinceScan = 0
}

func (c *SphereSelectionController) unhighlightHover(uid uint64) {
	if c.highlights.KindOf(uid) == highlight.KindHover {
		c.highlights.Clear(uid)
	}
}
