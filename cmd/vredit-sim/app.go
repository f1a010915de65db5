package main

import (
	"errors"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog/log"

	"vredit/internal/actions"
	"vredit/internal/config"
	"vredit/internal/editmode"
	"vredit/internal/frame"
	"vredit/internal/grab"
	"vredit/internal/highlight"
	"vredit/internal/menus"
	"vredit/internal/persistence"
	"vredit/internal/selection"
	"vredit/internal/tutorial"
	"vredit/internal/vrinput"
	"vredit/internal/world"
)

const toastSeconds = 3.0

type toast struct {
	text      string
	remaining float32
}

type app struct {
	opts  options
	scene *world.Scene
	cfg   *config.Store

	tracker    *menus.Tracker
	router     *vrinput.Router
	scheduler  *frame.Scheduler
	session    *editmode.Session
	machine    *editmode.Machine
	filter     *editmode.Filter
	detector   *editmode.Detector
	controller *editmode.Controller

	highlights *highlight.Manager
	sel        *selection.State
	rayCtrl    *grab.RaySelectionController
	sphereCtrl *grab.SphereSelectionController
	grabCtrl   *grab.RemoteGrabController

	history  *actions.History
	registry *persistence.Registry

	camera       rl.Camera3D
	settingsOpen bool
	toasts       []toast
}

func newApp(opts options) (*app, error) {
	a := &app{opts: opts}

	a.cfg = config.NewStore(opts.Config)
	if err := a.cfg.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	config.RegisterDefaults(a.cfg)

	scene, err := world.LoadSceneFile(opts.Scene)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Msg("scene file unreadable, using the built-in bench scene")
		}
		scene = benchScene()
	}
	a.scene = scene

	a.tracker = menus.NewTracker()
	a.router = vrinput.NewRouter(a.tracker.IsBlockingMenuOpen)
	a.router.Initialize()

	a.scheduler = frame.NewScheduler()
	a.highlights = highlight.NewManager()
	a.sel = selection.NewState()
	a.history = actions.NewHistory(0)
	a.registry = persistence.NewRegistry(opts.Changes)
	if err := a.registry.Load(a.scene); err != nil {
		log.Warn().Err(err).Msg("changed-object registry unreadable, starting empty")
	}

	a.session = editmode.NewSession(a.router)
	a.grabCtrl = grab.NewRemoteGrabController(a.scene, a, a.history, a.registry)
	a.machine = editmode.NewMachine(a.scene, a.sel, a.grabCtrl)
	a.machine.SetHoldThreshold(float32(a.cfg.GetFloat(config.KeyHoldToSelectSeconds, config.DefaultHoldToSelectSeconds)))
	a.session.AddObserver(a.machine)
	a.scheduler.SetEditModeQuery(a.session.IsActive)

	a.rayCtrl = grab.NewRaySelectionController(a.scene, a, a.highlights, func() bool {
		return a.machine.State() == editmode.StateRaySelecting
	})
	a.sphereCtrl = grab.NewSphereSelectionController(a.scene, a, a.highlights, func() bool {
		return a.machine.State() == editmode.StateVolumeSelecting
	})
	a.sphereCtrl.SetScanInterval(float32(a.cfg.GetFloat(config.KeySphereScanInterval, config.DefaultSphereScanInterval)))
	a.machine.SetHoverProviders(a.rayCtrl, a.sphereCtrl)

	a.filter = editmode.NewFilter(a.session, a.tracker.IsBlockingMenuOpen)
	a.detector = editmode.NewDetector(a.scene, a.session, a.machine, a, a.tracker.IsBlockingMenuOpen, a.cfg)
	a.detector.SetTutorial(tutorial.NewManager(a.cfg, a))
	a.detector.SetNotifier(a)

	a.controller = editmode.NewController(a.router, a.filter, a.scheduler, a.machine, a.detector)
	a.controller.Initialize()
	if !a.session.Initialize() {
		return nil, fmt.Errorf("edit-mode session failed to initialize")
	}

	// Grab consumes the thumbstick ahead of sphere resize.
	a.router.AddAxisCallback(0, 20, a.grabCtrl.OnAxisInput)
	a.router.AddAxisCallback(0, 10, a.sphereCtrl.OnAxisInput)

	a.scheduler.Register(a.rayCtrl, true)
	a.scheduler.Register(a.sphereCtrl, true)
	a.scheduler.Register(a.grabCtrl, true)
	a.scheduler.Register(a, false)

	// Keep selection highlights in lockstep with the selection set.
	a.sel.AddChangedCallback(func() {
		a.highlights.ClearKind(highlight.KindSelection)
		for _, uid := range a.sel.UIDs() {
			a.highlights.Set(uid, highlight.KindSelection)
		}
	})

	return a, nil
}

// benchScene is the fallback test scene when no scene file exists.
func benchScene() *world.Scene {
	scene := world.NewScene("bench")
	add := func(name string, layer world.Layer, pos mgl32.Vec3, size mgl32.Vec3) {
		obj := world.NewObject(name)
		obj.Layer = layer
		obj.Transform.Position = pos
		obj.Collider = &world.Collider{Kind: world.ColliderBox, Size: size}
		scene.AddObject(obj)
	}
	add("floor", world.LayerTerrain, mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{40, 1, 40})
	add("crate-a", world.LayerProps, mgl32.Vec3{-2, 0.5, 6}, mgl32.Vec3{1, 1, 1})
	add("crate-b", world.LayerProps, mgl32.Vec3{0, 0.5, 6}, mgl32.Vec3{1, 1, 1})
	add("crate-c", world.LayerProps, mgl32.Vec3{2, 0.5, 6}, mgl32.Vec3{1, 1, 1})
	add("pillar", world.LayerStatic, mgl32.Vec3{5, 2, 8}, mgl32.Vec3{1, 4, 1})
	add("bench", world.LayerClutter, mgl32.Vec3{-4, 0.4, 8}, mgl32.Vec3{2, 0.8, 0.8})
	return scene
}

// --- pose: the camera stands in for the headset, its forward ray for the
// aiming hand ---

func toMgl(v rl.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func toRl(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

func (a *app) forward() mgl32.Vec3 {
	dir := toMgl(a.camera.Target).Sub(toMgl(a.camera.Position))
	if dir.Len() == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return dir.Normalize()
}

func (a *app) HeadPosition() mgl32.Vec3 {
	return toMgl(a.camera.Position)
}

func (a *app) HandPosition(hand vrinput.Hand) mgl32.Vec3 {
	// The simulated hand floats slightly ahead of the head, so walking the
	// camera into an object puts the hand "inside" it for the gesture.
	return a.HeadPosition().Add(a.forward().Mul(0.6))
}

func (a *app) HandRay(hand vrinput.Hand) (mgl32.Vec3, mgl32.Vec3) {
	return a.HandPosition(hand), a.forward()
}

// --- notifications ---

func (a *app) Notify(message string) {
	a.toasts = append(a.toasts, toast{text: message, remaining: toastSeconds})
	log.Info().Str("toast", message).Msg("hud")
}

// OnFrameUpdate ages the toast queue. Implements frame.UpdateListener.
func (a *app) OnFrameUpdate(deltaTime float32) {
	kept := a.toasts[:0]
	for _, t := range a.toasts {
		t.remaining -= deltaTime
		if t.remaining > 0 {
			kept = append(kept, t)
		}
	}
	a.toasts = kept
}

// --- input sampling: keyboard/mouse to controller state ---

func (a *app) pollControllerState() (uint64, [vrinput.AxisCount]vrinput.Axis) {
	var buttons uint64
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		buttons |= vrinput.MaskFromButton(vrinput.ButtonTrigger)
	}
	if rl.IsKeyDown(rl.KeyLeftShift) {
		buttons |= vrinput.MaskFromButton(vrinput.ButtonA)
	}
	if rl.IsKeyDown(rl.KeyX) {
		buttons |= vrinput.MaskFromButton(vrinput.ButtonMenu)
	}
	if rl.IsKeyDown(rl.KeyC) {
		buttons |= vrinput.MaskFromButton(vrinput.ButtonTouchpad)
	}

	var stick vrinput.Axis
	if rl.IsKeyDown(rl.KeyUp) {
		stick.Y = 1
	}
	if rl.IsKeyDown(rl.KeyDown) {
		stick.Y = -1
	}
	if rl.IsKeyDown(rl.KeyRight) {
		stick.X = 1
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		stick.X = -1
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		stick.Y = clampf(stick.Y+wheel, -1, 1)
	}

	return buttons, [vrinput.AxisCount]vrinput.Axis{stick}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (a *app) handleHostKeys() {
	if rl.IsKeyPressed(rl.KeyTab) {
		// Menu-driven toggle stand-in, bypassing the gesture.
		if a.session.IsActive() {
			a.machine.Cancel()
			a.session.Exit()
		} else {
			a.session.Enter()
		}
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		a.settingsOpen = !a.settingsOpen
		if a.settingsOpen {
			a.tracker.OnMenuOpened("SettingsMenu")
		} else {
			a.tracker.OnMenuClosed("SettingsMenu")
		}
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		a.saveAll()
	}
	if rl.IsKeyPressed(rl.KeyZ) {
		a.history.Undo(a.scene)
	}
	if rl.IsKeyPressed(rl.KeyY) {
		a.history.Redo(a.scene)
	}
}

func (a *app) saveAll() {
	if err := a.cfg.Save(); err != nil {
		log.Error().Err(err).Msg("config save failed")
	}
	if err := a.registry.Save(); err != nil {
		log.Error().Err(err).Msg("changes save failed")
	}
	a.Notify("Saved")
}

func (a *app) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(1280, 720, "vredit simulator")
	defer rl.CloseWindow()
	rl.SetTargetFPS(120)

	a.camera = rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 1.7, Z: -4},
		Target:     rl.Vector3{X: 0, Y: 1.5, Z: 0},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       70,
		Projection: rl.CameraPerspective,
	}

	for !rl.WindowShouldClose() {
		if !a.settingsOpen {
			rl.UpdateCamera(&a.camera, rl.CameraFirstPerson)
		}
		a.handleHostKeys()

		buttons, axes := a.pollControllerState()
		a.router.ProcessState(vrinput.HandRight, buttons, axes)

		a.scheduler.Tick()
		a.draw()
	}

	a.saveAll()
}
