package grab

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"vredit/internal/highlight"
	"vredit/internal/vrinput"
	"vredit/internal/world"
)

type fakePose struct {
	origin, dir mgl32.Vec3
}

func (f *fakePose) HandRay(hand vrinput.Hand) (mgl32.Vec3, mgl32.Vec3) {
	return f.origin, f.dir
}

func addBox(scene *world.Scene, name string, pos mgl32.Vec3) *world.Object {
	obj := world.NewObject(name)
	obj.Layer = world.LayerProps
	obj.Transform.Position = pos
	obj.Collider = &world.Collider{Kind: world.ColliderBox, Size: mgl32.Vec3{1, 1, 1}}
	scene.AddObject(obj)
	return obj
}

func newRayRig() (*world.Scene, *fakePose, *highlight.Manager, *RaySelectionController) {
	scene := world.NewScene("test")
	pose := &fakePose{dir: mgl32.Vec3{0, 0, 1}}
	hl := highlight.NewManager()
	active := true
	ctrl := NewRaySelectionController(scene, pose, hl, func() bool { return active })
	return scene, pose, hl, ctrl
}

func settleHover(ctrl *RaySelectionController) {
	for i := 0; i <= hoverDebounceFrames; i++ {
		ctrl.OnFrameUpdate(1.0 / 60.0)
	}
}

func TestRayHoverAcquiresAfterDebounce(t *testing.T) {
	scene, _, hl, ctrl := newRayRig()
	obj := addBox(scene, "crate", mgl32.Vec3{0, 0, 5})

	ctrl.OnFrameUpdate(1.0 / 60.0)
	if uid, _, ok := ctrl.HoverTarget(); ok || uid != 0 {
		t.Error("hover must not acquire on the first frame")
	}

	settleHover(ctrl)
	uid, point, ok := ctrl.HoverTarget()
	if !ok || uid != obj.UID {
		t.Fatalf("hover target = %d, want %d", uid, obj.UID)
	}
	if point.Z() < 4.4 || point.Z() > 4.6 {
		t.Errorf("hit point z = %v, want the near face around 4.5", point.Z())
	}
	if hl.KindOf(obj.UID) != highlight.KindHover {
		t.Error("hover target should carry a hover highlight")
	}
}

func TestRaySideRaysRetainTarget(t *testing.T) {
	scene, pose, _, ctrl := newRayRig()
	obj := addBox(scene, "crate", mgl32.Vec3{0, 0, 5})
	settleHover(ctrl)

	// Central ray just misses the box edge, but a side ray still hits it.
	pose.origin = mgl32.Vec3{0.55, 0, 0}
	ctrl.OnFrameUpdate(1.0 / 60.0)
	if uid, _, ok := ctrl.HoverTarget(); !ok || uid != obj.UID {
		t.Error("target should be retained while a side ray still hits it")
	}

	// Now every ray misses.
	pose.origin = mgl32.Vec3{0.8, 0, 0}
	ctrl.OnFrameUpdate(1.0 / 60.0)
	if _, _, ok := ctrl.HoverTarget(); ok {
		t.Error("target should drop once all rays miss")
	}
}

func TestRayIgnoresUnselectableLayers(t *testing.T) {
	scene, _, _, ctrl := newRayRig()
	actor := addBox(scene, "npc", mgl32.Vec3{0, 0, 5})
	actor.Layer = world.LayerActor

	settleHover(ctrl)
	if _, _, ok := ctrl.HoverTarget(); ok {
		t.Error("actors must never become hover targets")
	}
}

func TestRayInactiveDropsHoverAndHighlight(t *testing.T) {
	scene := world.NewScene("test")
	pose := &fakePose{dir: mgl32.Vec3{0, 0, 1}}
	hl := highlight.NewManager()
	active := true
	ctrl := NewRaySelectionController(scene, pose, hl, func() bool { return active })
	obj := addBox(scene, "crate", mgl32.Vec3{0, 0, 5})
	settleHover(ctrl)

	active = false
	ctrl.OnFrameUpdate(1.0 / 60.0)
	if _, _, ok := ctrl.HoverTarget(); ok {
		t.Error("hover should clear while the controller is inactive")
	}
	if hl.KindOf(obj.UID) != highlight.KindNone {
		t.Error("hover highlight should clear while inactive")
	}
}

func TestRayHoverSwitchMovesHighlight(t *testing.T) {
	scene, pose, hl, ctrl := newRayRig()
	a := addBox(scene, "a", mgl32.Vec3{0, 0, 5})
	b := addBox(scene, "b", mgl32.Vec3{3, 0, 5})
	settleHover(ctrl)

	pose.origin = mgl32.Vec3{3, 0, 0} // aim at b
	settleHover(ctrl)

	if uid, _, _ := ctrl.HoverTarget(); uid != b.UID {
		t.Fatalf("hover target = %d, want %d", uid, b.UID)
	}
	if hl.KindOf(a.UID) != highlight.KindNone {
		t.Error("old target should lose its hover highlight")
	}
	if hl.KindOf(b.UID) != highlight.KindHover {
		t.Error("new target should gain the hover highlight")
	}
}
