package editmode

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog/log"

	"vredit/internal/selection"
	"vredit/internal/world"
)

// State is the current interaction mode of the editor.
type State int

const (
	StateIdle State = iota
	StateRaySelecting
	StateVolumeSelecting
	StateRemotePlacement
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRaySelecting:
		return "ray-selecting"
	case StateVolumeSelecting:
		return "volume-selecting"
	case StateRemotePlacement:
		return "remote-placement"
	default:
		return "unknown"
	}
}

// DefaultHoldThreshold is how long the trigger must stay down before a press
// becomes a hold and promotes the selection into remote placement.
const DefaultHoldThreshold float32 = 0.25

// HoverProvider reports what the active selection mechanism (ray or sphere)
// is currently pointing at.
type HoverProvider interface {
	HoverTarget() (uid uint64, hitPoint mgl32.Vec3, ok bool)
}

// PlacementController drives the actual object movement during remote
// placement. Begin may refuse (e.g. nothing movable in the group), in which
// case the machine stays in its selection mode.
type PlacementController interface {
	Begin(group []selection.Info, grabbedUID uint64, hitPoint mgl32.Vec3) bool
	Finalize()
	Cancel()
}

// Machine is the selection/placement state machine. It owns mode
// transitions, trigger-hold timing and multi-select semantics; what the
// rays actually hit comes from the hover providers, and object movement is
// delegated to the placement controller.
type Machine struct {
	scene       *world.Scene
	sel         *selection.State
	placement   PlacementController
	rayHover    HoverProvider
	volumeHover HoverProvider

	holdThreshold float32

	state                 State
	previousSelectionMode State

	multiSelectHeld          bool
	triggerHeld              bool
	triggerHoldTime          float32
	enteredPlacementFromHold bool
	hoverAtPress             world.ObjectRef
	hitPointAtPress          mgl32.Vec3
	placementTarget          world.ObjectRef
}

func NewMachine(scene *world.Scene, sel *selection.State, placement PlacementController) *Machine {
	return &Machine{
		scene:         scene,
		sel:           sel,
		placement:     placement,
		holdThreshold: DefaultHoldThreshold,
	}
}

// SetHoldThreshold overrides the hold promotion time. Values <= 0 keep the
// current threshold.
func (m *Machine) SetHoldThreshold(seconds float32) {
	if seconds > 0 {
		m.holdThreshold = seconds
	}
}

// SetHoverProviders installs the ray and volume hover sources.
func (m *Machine) SetHoverProviders(ray, volume HoverProvider) {
	m.rayHover = ray
	m.volumeHover = volume
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) MultiSelectHeld() bool {
	return m.multiSelectHeld
}

// PlacementTarget returns the grabbed object's uid, zero outside placement.
func (m *Machine) PlacementTarget() uint64 {
	return m.placementTarget.UID
}

func (m *Machine) inSelectionMode() bool {
	return m.state == StateRaySelecting || m.state == StateVolumeSelecting
}

func (m *Machine) currentHover() (uint64, mgl32.Vec3, bool) {
	var p HoverProvider
	switch m.state {
	case StateRaySelecting:
		p = m.rayHover
	case StateVolumeSelecting:
		p = m.volumeHover
	}
	if p == nil {
		return 0, mgl32.Vec3{}, false
	}
	return p.HoverTarget()
}

// OnEnterEditMode moves Idle into the default ray-selection mode. Invoked by
// the session gate.
func (m *Machine) OnEnterEditMode() {
	if m.state != StateIdle {
		return
	}
	m.state = StateRaySelecting
	m.resetTrigger()
	log.Info().Str("state", m.state.String()).Msg("editmode: state machine engaged")
}

// OnExitEditMode tears everything down and returns to Idle. Any in-progress
// placement is discarded with transforms restored.
func (m *Machine) OnExitEditMode() {
	if m.state == StateIdle {
		return
	}
	if m.state == StateRemotePlacement {
		m.placement.Cancel()
		m.placementTarget.Clear()
	}
	m.sel.ClearAll()
	m.state = StateIdle
	m.resetTrigger()
	m.multiSelectHeld = false
	log.Info().Msg("editmode: state machine idle")
}

func (m *Machine) resetTrigger() {
	m.triggerHeld = false
	m.triggerHoldTime = 0
	m.enteredPlacementFromHold = false
	m.hoverAtPress.Clear()
}

// ToggleSelectionMode switches between ray and volume selection. No-op
// outside those states or while the trigger is down mid-gesture.
func (m *Machine) ToggleSelectionMode() {
	if !m.inSelectionMode() || m.triggerHeld {
		return
	}
	if m.state == StateRaySelecting {
		m.state = StateVolumeSelecting
	} else {
		m.state = StateRaySelecting
	}
	log.Info().Str("state", m.state.String()).Msg("editmode: selection mode switched")
}

// SetMultiSelect tracks the multi-select modifier button.
func (m *Machine) SetMultiSelect(held bool) {
	m.multiSelectHeld = held
}

// OnTriggerPress starts trigger tracking in a selection mode: it records the
// hover target and hit point for later use by the hold or release handler.
func (m *Machine) OnTriggerPress() {
	if !m.inSelectionMode() || m.triggerHeld {
		return
	}
	m.triggerHeld = true
	m.triggerHoldTime = 0
	m.enteredPlacementFromHold = false

	uid, hitPoint, ok := m.currentHover()
	if !ok {
		m.hoverAtPress.Clear()
		return
	}
	m.hoverAtPress.UID = uid
	m.hitPointAtPress = hitPoint
}

// OnTriggerRelease ends the gesture. A release before the hold threshold is
// a tap and toggles selection of the press-time hover target; a release
// during placement finalizes it and returns to the prior selection mode.
func (m *Machine) OnTriggerRelease() {
	if m.state == StateRemotePlacement {
		m.placement.Finalize()
		m.placementTarget.Clear()
		m.state = m.previousSelectionMode
		m.resetTrigger()
		log.Info().Str("state", m.state.String()).Msg("editmode: placement finalized")
		return
	}

	if !m.inSelectionMode() || !m.triggerHeld {
		return
	}
	wasHold := m.enteredPlacementFromHold
	target := m.hoverAtPress.Get(m.scene)
	m.resetTrigger()

	if wasHold || target == nil {
		return
	}
	if m.multiSelectHeld {
		m.sel.Toggle(target)
	} else {
		m.sel.SetSingle(target)
	}
}

// OnFrameUpdate accumulates trigger hold time and fires the hold promotion
// exactly once when the threshold is crossed, tolerant of oversized frame
// deltas. Implements frame.UpdateListener.
func (m *Machine) OnFrameUpdate(deltaTime float32) {
	if !m.inSelectionMode() || !m.triggerHeld || m.enteredPlacementFromHold {
		return
	}
	m.triggerHoldTime += deltaTime
	if m.triggerHoldTime < m.holdThreshold {
		return
	}
	m.enteredPlacementFromHold = true
	m.beginPlacement()
}

// beginPlacement promotes the held trigger into remote placement. The
// press-time hover target is revalidated first: the object may have been
// removed between press and this frame.
func (m *Machine) beginPlacement() {
	target := m.hoverAtPress.Get(m.scene)
	if target == nil {
		log.Warn().Uint64("uid", m.hoverAtPress.UID).
			Msg("editmode: hold target gone, staying in selection mode")
		return
	}

	if m.sel.IsSelected(target.UID) && m.sel.Count() > 1 {
		// target is part of a multi-selection: the whole group moves
	} else if m.sel.IsSelected(target.UID) {
		m.sel.ReduceToSingle(target.UID)
	} else {
		m.sel.ClearAll()
		m.sel.Add(target)
	}

	if !m.placement.Begin(m.sel.Selected(), target.UID, m.hitPointAtPress) {
		log.Warn().Uint64("uid", target.UID).Msg("editmode: placement refused, staying in selection mode")
		return
	}

	m.previousSelectionMode = m.state
	m.placementTarget.Set(target)
	m.state = StateRemotePlacement
	log.Info().Uint64("uid", target.UID).Int("group", m.sel.Count()).
		Msg("editmode: remote placement started")
}

// Cancel discards any in-progress placement, restores pre-placement
// transforms, clears the selection and drops all the way to Idle. A cancel
// from Idle is a no-op.
func (m *Machine) Cancel() {
	if m.state == StateIdle {
		return
	}
	if m.state == StateRemotePlacement {
		m.placement.Cancel()
		m.placementTarget.Clear()
	}
	m.sel.ClearAll()
	m.state = StateIdle
	m.resetTrigger()
	m.multiSelectHeld = false
	log.Info().Msg("editmode: cancelled")
}
