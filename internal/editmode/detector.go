package editmode

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog/log"

	"vredit/internal/config"
	"vredit/internal/vrinput"
	"vredit/internal/world"
)

// DefaultDoubleTapWindow is the window in which two qualifying taps chain
// into the mode-toggle gesture.
const DefaultDoubleTapWindow float32 = 0.4

// PoseProvider reports the current head and hand positions.
type PoseProvider interface {
	HeadPosition() mgl32.Vec3
	HandPosition(hand vrinput.Hand) mgl32.Vec3
}

// TutorialFlow is the one-time first-run hand-off. HandleFirstEntry returns
// true when the flow took over messaging, in which case the detector does
// not announce the mode change itself.
type TutorialFlow interface {
	HandleFirstEntry() bool
}

// Notifier surfaces short user-facing messages, e.g. a HUD toast.
type Notifier interface {
	Notify(message string)
}

// Detector recognizes the ambient enter/exit gesture: two trigger taps by
// the same hand, both made while the hand is buried inside solid geometry,
// within the double-tap window. Time advances through frame deltas rather
// than the wall clock, matching how every other editor timeout is measured.
type Detector struct {
	scene     *world.Scene
	session   *Session
	machine   *Machine
	pose      PoseProvider
	menuQuery func() bool
	cfg       *config.Store
	tutorial  TutorialFlow
	notifier  Notifier

	window float32
	now    float32

	hasLastTap  bool
	lastTapTime float32
	lastTapHand vrinput.Hand
}

func NewDetector(scene *world.Scene, session *Session, machine *Machine, pose PoseProvider, menuQuery func() bool, cfg *config.Store) *Detector {
	window := DefaultDoubleTapWindow
	if cfg != nil {
		window = float32(cfg.GetFloat(config.KeyDoubleTapSeconds, float64(DefaultDoubleTapWindow)))
	}
	return &Detector{
		scene:     scene,
		session:   session,
		machine:   machine,
		pose:      pose,
		menuQuery: menuQuery,
		cfg:       cfg,
		window:    window,
	}
}

// SetTutorial installs the optional first-run flow.
func (d *Detector) SetTutorial(t TutorialFlow) {
	d.tutorial = t
}

// SetNotifier installs the optional message sink.
func (d *Detector) SetNotifier(n Notifier) {
	d.notifier = n
}

// OnFrameUpdate advances the detector clock. Implements frame.UpdateListener.
func (d *Detector) OnFrameUpdate(deltaTime float32) {
	d.now += deltaTime
}

func (d *Detector) resetMemory() {
	d.hasLastTap = false
}

// handInsideGeometry casts from the head toward the hand; a hit closer than
// the hand itself means geometry occludes the hand, i.e. the hand is inside
// or behind an object.
func (d *Detector) handInsideGeometry(hand vrinput.Hand) bool {
	head := d.pose.HeadPosition()
	handPos := d.pose.HandPosition(hand)
	toHand := handPos.Sub(head)
	dist := toHand.Len()
	if dist <= 0 {
		return false
	}
	hit, ok := d.scene.Raycast(head, toHand, dist)
	return ok && hit.Distance < dist
}

// OnButtonEvent is registered on the raw input router for trigger edges.
// Only presses matter; releases never consume.
func (d *Detector) OnButtonEvent(hand vrinput.Hand, released bool, button vrinput.Button) bool {
	if released || button != vrinput.ButtonTrigger {
		return false
	}
	return d.onTriggerPress(hand)
}

func (d *Detector) onTriggerPress(hand vrinput.Hand) bool {
	if d.menuQuery != nil && d.menuQuery() {
		d.resetMemory()
		return false
	}
	if !d.handInsideGeometry(hand) {
		d.resetMemory()
		return false
	}

	if d.hasLastTap && d.lastTapHand == hand && d.now-d.lastTapTime < d.window {
		d.resetMemory()
		return d.toggleMode()
	}

	d.hasLastTap = true
	d.lastTapTime = d.now
	d.lastTapHand = hand
	return false
}

func (d *Detector) toggleMode() bool {
	if d.session.IsActive() {
		d.machine.Cancel()
		d.session.Exit()
		d.notify("Edit mode off")
		return true
	}

	// The gesture was recognized either way: consume it so the second tap
	// does not leak to the host, even when the config blocks entry.
	if d.cfg != nil {
		if !d.cfg.GetBool(config.KeyEditModeEnabled, config.DefaultEditModeEnabled) {
			log.Debug().Msg("editmode: editing disabled in config")
			return true
		}
		if !d.cfg.GetBool(config.KeyQuickEditEnabled, config.DefaultQuickEditEnabled) {
			log.Debug().Msg("editmode: quick-edit gesture disabled in config")
			return true
		}
	}

	handled := false
	if d.tutorial != nil {
		handled = d.tutorial.HandleFirstEntry()
	}
	d.session.Enter()
	if !handled {
		d.notify("Edit mode on")
	}
	return true
}

func (d *Detector) notify(message string) {
	if d.notifier != nil {
		d.notifier.Notify(message)
	}
}
