package grab

import (
	"github.com/go-gl/mathgl/mgl32"

	"vredit/internal/highlight"
	"vredit/internal/selection"
	"vredit/internal/vrinput"
	"vredit/internal/world"
)

const (
	rayMaxDistance      = 50.0
	raySideOffset       = 0.08 // spacing of the four retention rays
	hoverDebounceFrames = 2
)

// RaySelectionController drives hover selection with a bundle of five
// parallel rays from the aiming hand: the central ray picks new targets,
// and a target is only dropped once none of the five rays hits it anymore.
// The extra rays make the highlight forgiving of small hand tremor.
type RaySelectionController struct {
	scene       *world.Scene
	pose        Pose
	highlights  *highlight.Manager
	activeQuery func() bool

	hand         vrinput.Hand
	hover        *selection.HoverState
	lastHitPoint mgl32.Vec3
}

func NewRaySelectionController(scene *world.Scene, pose Pose, highlights *highlight.Manager, activeQuery func() bool) *RaySelectionController {
	return &RaySelectionController{
		scene:       scene,
		pose:        pose,
		highlights:  highlights,
		activeQuery: activeQuery,
		hand:        vrinput.HandRight,
		hover:       selection.NewHoverState(hoverDebounceFrames),
	}
}

func (c *RaySelectionController) SetHand(hand vrinput.Hand) {
	c.hand = hand
}

// HoverTarget implements the hover provider for the state machine.
func (c *RaySelectionController) HoverTarget() (uint64, mgl32.Vec3, bool) {
	uid := c.hover.Current()
	return uid, c.lastHitPoint, uid != 0
}

// castSelectable runs one ray against the scene and returns the hit object
// only when it sits on a selectable layer.
func (c *RaySelectionController) castSelectable(origin, dir mgl32.Vec3) (*world.Object, mgl32.Vec3, bool) {
	hit, ok := c.scene.Raycast(origin, dir, rayMaxDistance)
	if !ok || !hit.Object.Layer.Selectable() {
		return nil, mgl32.Vec3{}, false
	}
	return hit.Object, hit.Point, true
}

// OnFrameUpdate implements frame.UpdateListener.
func (c *RaySelectionController) OnFrameUpdate(deltaTime float32) {
	if c.activeQuery != nil && !c.activeQuery() {
		c.dropHover()
		return
	}

	origin, dir := c.pose.HandRay(c.hand)
	if dir.Len() == 0 {
		c.dropHover()
		return
	}
	dir = dir.Normalize()

	var hitUID uint64
	centerObj, centerPoint, centerOK := c.castSelectable(origin, dir)
	if centerOK {
		hitUID = centerObj.UID
	}

	current := c.hover.Current()
	retain := centerOK && centerObj.UID == current
	if current != 0 && !retain {
		right, up := rayBasis(dir)
		offsets := []mgl32.Vec3{
			right.Mul(raySideOffset), right.Mul(-raySideOffset),
			up.Mul(raySideOffset), up.Mul(-raySideOffset),
		}
		for _, off := range offsets {
			if obj, _, ok := c.castSelectable(origin.Add(off), dir); ok && obj.UID == current {
				retain = true
				break
			}
		}
	}

	previous := current
	target, changed := c.hover.Update(hitUID, retain)
	if centerOK && centerObj.UID == target {
		c.lastHitPoint = centerPoint
	}
	if !changed {
		return
	}
	if previous != 0 {
		c.unhighlightHover(previous)
	}
	if target != 0 {
		c.highlights.Set(target, highlight.KindHover)
	}
}

func (c *RaySelectionController) dropHover() {
	if current := c.hover.Current(); current != 0 {
		c.unhighlightHover(current)
	}
	c.hover.Reset()
}

// unhighlightHover removes the hover highlight without disturbing a
// selection highlight on the same object.
func (c *RaySelectionController) unhighlightHover(uid uint64) {
	if c.highlights.KindOf(uid) == highlight.KindHover {
		c.highlights.Clear(uid)
	}
}
