package grab

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog/log"

	"vredit/internal/actions"
	"vredit/internal/selection"
	"vredit/internal/vrinput"
	"vredit/internal/world"
)

const (
	grabMinDistance = 0.5
	grabMaxDistance = 30.0
	grabMoveRate    = 4.0 // distance units per second at full deflection
	grabRotateRate  = 2.0 // radians per second at full deflection

	// Pushing the stick for longer than this, or holding the group far out,
	// speeds the move up so long hauls do not take forever.
	grabFastAfter      = 1.0
	grabFastBeyond     = 15.0
	grabFastMultiplier = 3.0
)

// ChangeSink receives the committed transform of every finalized object.
// The persistence registry implements this.
type ChangeSink interface {
	RecordTransform(obj *world.Object)
}

type grabEntry struct {
	uid     uint64
	offset  mgl32.Vec3
	initial world.Transform
}

// RemoteGrabController moves the selected group at a distance. The group
// hangs off the hand ray at an adjustable distance; thumbstick Y pushes and
// pulls it, thumbstick X spins it around the vertical axis. Objects keep
// their relative offsets from the group center so formations move as one.
type RemoteGrabController struct {
	scene   *world.Scene
	pose    Pose
	history *actions.History
	sink    ChangeSink

	hand     vrinput.Hand
	active   bool
	distance float32
	yaw      float32 // radians accumulated during this grab
	entries  []grabEntry
	pushTime float32 // how long the stick has been deflected forward/back

	stickX, stickY float32
}

func NewRemoteGrabController(scene *world.Scene, pose Pose, history *actions.History, sink ChangeSink) *RemoteGrabController {
	return &RemoteGrabController{
		scene:   scene,
		pose:    pose,
		history: history,
		sink:    sink,
		hand:    vrinput.HandRight,
	}
}

func (c *RemoteGrabController) SetHand(hand vrinput.Hand) {
	c.hand = hand
}

func (c *RemoteGrabController) IsActive() bool {
	return c.active
}

// groupCenter anchors the grab: mean position in the horizontal plane, but
// the lowest Y of the group, so the whole formation hangs from its base
// rather than its centroid.
func groupCenter(objects []*world.Object) mgl32.Vec3 {
	var sumX, sumZ float32
	minY := objects[0].Transform.Position.Y()
	for _, obj := range objects {
		p := obj.Transform.Position
		sumX += p.X()
		sumZ += p.Z()
		if p.Y() < minY {
			minY = p.Y()
		}
	}
	n := float32(len(objects))
	return mgl32.Vec3{sumX / n, minY, sumZ / n}
}

// Begin starts a grab of the selected group. Implements the placement
// controller contract: false means nothing in the group resolved and the
// state machine must stay in its selection mode.
func (c *RemoteGrabController) Begin(group []selection.Info, grabbedUID uint64, hitPoint mgl32.Vec3) bool {
	objects := make([]*world.Object, 0, len(group))
	for _, info := range group {
		if obj := c.scene.FindByUID(info.UID); obj != nil {
			objects = append(objects, obj)
		}
	}
	if len(objects) == 0 {
		log.Warn().Int("group", len(group)).Msg("grab: nothing in the group resolves, refusing")
		return false
	}

	center := groupCenter(objects)
	c.entries = c.entries[:0]
	for _, obj := range objects {
		c.entries = append(c.entries, grabEntry{
			uid:     obj.UID,
			offset:  obj.Transform.Position.Sub(center),
			initial: obj.Transform,
		})
	}

	origin, _ := c.pose.HandRay(c.hand)
	c.distance = clamp32(hitPoint.Sub(origin).Len(), grabMinDistance, grabMaxDistance)
	c.yaw = 0
	c.pushTime = 0
	c.stickX, c.stickY = 0, 0
	c.active = true
	log.Info().Int("objects", len(c.entries)).Float32("distance", c.distance).Msg("grab: started")
	return true
}

// OnAxisInput consumes the thumbstick while a grab is active.
func (c *RemoteGrabController) OnAxisInput(hand vrinput.Hand, axis int, x, y float32) bool {
	if !c.active || axis != 0 || hand != c.hand {
		return false
	}
	c.stickX, c.stickY = x, y
	return true
}

// OnFrameUpdate implements frame.UpdateListener: repositions the group at
// the current ray distance with the accumulated spin applied.
func (c *RemoteGrabController) OnFrameUpdate(deltaTime float32) {
	if !c.active {
		return
	}

	push := deadzoneRemap(c.stickY)
	if push != 0 {
		c.pushTime += deltaTime
	} else {
		c.pushTime = 0
	}
	rate := float32(grabMoveRate)
	if c.pushTime > grabFastAfter || c.distance > grabFastBeyond {
		rate *= grabFastMultiplier
	}
	c.distance = clamp32(c.distance+push*rate*deltaTime, grabMinDistance, grabMaxDistance)
	c.yaw += deadzoneRemap(c.stickX) * grabRotateRate * deltaTime

	origin, dir := c.pose.HandRay(c.hand)
	if dir.Len() == 0 {
		return
	}
	center := origin.Add(dir.Normalize().Mul(c.distance))
	spin := mgl32.Rotate3DY(c.yaw)
	yawDegrees := c.yaw * 180 / math.Pi

	for _, e := range c.entries {
		obj := c.scene.FindByUID(e.uid)
		if obj == nil {
			continue
		}
		obj.Transform.Position = center.Add(spin.Mul3x1(e.offset))
		obj.Transform.Rotation = mgl32.Vec3{
			e.initial.Rotation.X(),
			e.initial.Rotation.Y() + yawDegrees,
			e.initial.Rotation.Z(),
		}
	}
}

// Finalize commits the grab: every surviving object is reported to the
// change sink and the whole group move lands in the undo history as one
// action.
func (c *RemoteGrabController) Finalize() {
	if !c.active {
		return
	}
	moves := make([]actions.Move, 0, len(c.entries))
	for _, e := range c.entries {
		obj := c.scene.FindByUID(e.uid)
		if obj == nil {
			continue
		}
		if c.sink != nil {
			c.sink.RecordTransform(obj)
		}
		moves = append(moves, actions.Move{UID: e.uid, Before: e.initial, After: obj.Transform})
	}
	if c.history != nil {
		c.history.Record("move objects", moves)
	}
	c.reset()
	log.Info().Int("objects", len(moves)).Msg("grab: finalized")
}

// Cancel restores every surviving object to its transform at grab start.
func (c *RemoteGrabController) Cancel() {
	if !c.active {
		return
	}
	for _, e := range c.entries {
		if obj := c.scene.FindByUID(e.uid); obj != nil {
			obj.Transform = e.initial
		}
	}
	c.reset()
	log.Info().Msg("grab: cancelled")
}

func (c *RemoteGrabController) reset() {
	c.active = false
	c.entries = c.entries[:0]
	c.stickX, c.stickY = 0, 0
	c.yaw = 0
	c.pushTime = 0
}
