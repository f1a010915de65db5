// Package vrinput turns raw controller state into de-duplicated button edge
// events and dispatches them to prioritized subscribers. It is the lowest
// layer of the input stack: everything above it sees one press and one
// release per physical button actuation.
package vrinput

import (
	"github.com/rs/zerolog/log"
)

// CallbackID identifies a registered callback for later removal.
type CallbackID uint32

// InvalidCallbackID is never returned by a successful registration.
const InvalidCallbackID CallbackID = 0

// AxisCount is the number of controller axes the router tracks per hand
// (0 = thumbstick, 1 = trigger pull).
const AxisCount = 2

// Axis is one controller axis sample.
type Axis struct {
	X, Y float32
}

// ButtonCallback handles a button edge event. Return true to consume the
// event: consumed buttons are withheld from the host game while held.
type ButtonCallback func(hand Hand, released bool, button Button) bool

// AxisCallback handles an axis sample. Return true to consume the axis.
type AxisCallback func(hand Hand, axis int, x, y float32) bool

type buttonEntry struct {
	id       CallbackID
	mask     uint64
	priority int
	callback ButtonCallback
}

type axisEntry struct {
	id       CallbackID
	axis     int
	priority int
	callback AxisCallback
}

// Filtered is what remains of a controller state after consumed buttons and
// axes have been removed. The host applies this instead of the raw state.
type Filtered struct {
	Buttons uint64
	Axes    [AxisCount]Axis
}

// Router dedups button edges from polled controller state and dispatches
// them to subscribers in priority order. Single-threaded: all calls must
// come from the main simulation thread.
type Router struct {
	menuQuery func() bool // blocking-menu check polled before dispatch

	buttonCallbacks []buttonEntry
	axisCallbacks   []axisEntry
	nextCallbackID  CallbackID

	lastButtons [2]uint64
	blockedHeld [2]uint64

	initialized bool
}

// NewRouter creates a router. menuQuery may be nil (no menu ever blocks).
func NewRouter(menuQuery func() bool) *Router {
	return &Router{
		menuQuery:      menuQuery,
		nextCallbackID: 1, // 0 is InvalidCallbackID
	}
}

// Initialize marks the router ready. Idempotent.
func (r *Router) Initialize() {
	if r.initialized {
		log.Warn().Msg("vrinput: router already initialized")
		return
	}
	r.initialized = true
	log.Info().Msg("vrinput: router initialized")
}

// Shutdown clears all subscriptions and held-button tracking.
func (r *Router) Shutdown() {
	if !r.initialized {
		return
	}
	r.buttonCallbacks = nil
	r.axisCallbacks = nil
	r.blockedHeld = [2]uint64{}
	r.initialized = false
	log.Info().Msg("vrinput: router shut down")
}

func (r *Router) IsInitialized() bool {
	return r.initialized
}

// AddButtonCallback subscribes to edges of every button in mask. Higher
// priority runs earlier; equal priorities keep insertion order.
func (r *Router) AddButtonCallback(mask uint64, priority int, callback ButtonCallback) CallbackID {
	if callback == nil {
		return InvalidCallbackID
	}
	id := r.nextCallbackID
	r.nextCallbackID++

	idx := len(r.buttonCallbacks)
	for i, entry := range r.buttonCallbacks {
		if entry.priority < priority {
			idx = i
			break
		}
	}
	r.buttonCallbacks = append(r.buttonCallbacks, buttonEntry{})
	copy(r.buttonCallbacks[idx+1:], r.buttonCallbacks[idx:])
	r.buttonCallbacks[idx] = buttonEntry{id: id, mask: mask, priority: priority, callback: callback}

	log.Debug().Uint32("id", uint32(id)).Str("buttons", MaskNames(mask)).Int("priority", priority).
		Msg("vrinput: added button callback")
	return id
}

// RemoveButtonCallback removes a subscription. No-op for unknown ids.
func (r *Router) RemoveButtonCallback(id CallbackID) {
	if id == InvalidCallbackID {
		return
	}
	for i, entry := range r.buttonCallbacks {
		if entry.id == id {
			r.buttonCallbacks = append(r.buttonCallbacks[:i], r.buttonCallbacks[i+1:]...)
			log.Debug().Uint32("id", uint32(id)).Msg("vrinput: removed button callback")
			return
		}
	}
}

// AddAxisCallback subscribes to samples of one axis index.
func (r *Router) AddAxisCallback(axis, priority int, callback AxisCallback) CallbackID {
	if callback == nil || axis < 0 || axis >= AxisCount {
		return InvalidCallbackID
	}
	id := r.nextCallbackID
	r.nextCallbackID++

	idx := len(r.axisCallbacks)
	for i, entry := range r.axisCallbacks {
		if entry.priority < priority {
			idx = i
			break
		}
	}
	r.axisCallbacks = append(r.axisCallbacks, axisEntry{})
	copy(r.axisCallbacks[idx+1:], r.axisCallbacks[idx:])
	r.axisCallbacks[idx] = axisEntry{id: id, axis: axis, priority: priority, callback: callback}

	log.Debug().Uint32("id", uint32(id)).Int("axis", axis).Int("priority", priority).
		Msg("vrinput: added axis callback")
	return id
}

func (r *Router) RemoveAxisCallback(id CallbackID) {
	if id == InvalidCallbackID {
		return
	}
	for i, entry := range r.axisCallbacks {
		if entry.id == id {
			r.axisCallbacks = append(r.axisCallbacks[:i], r.axisCallbacks[i+1:]...)
			log.Debug().Uint32("id", uint32(id)).Msg("vrinput: removed axis callback")
			return
		}
	}
}

// ProcessState ingests one polled controller state for a hand and returns
// the state the host game should see, with consumed input removed.
// Consumed buttons stay blocked for as long as they are held.
func (r *Router) ProcessState(hand Hand, buttons uint64, axes [AxisCount]Axis) Filtered {
	if !r.initialized {
		return Filtered{Buttons: buttons, Axes: axes}
	}

	idx := int(hand)
	lastButtons := r.lastButtons[idx]

	newlyPressed := buttons &^ lastButtons
	newlyReleased := lastButtons &^ buttons

	if newlyPressed != 0 {
		blocked := r.invokeButtonCallbacks(hand, false, newlyPressed)
		r.blockedHeld[idx] |= blocked
	}
	if newlyReleased != 0 {
		r.invokeButtonCallbacks(hand, true, newlyReleased)
		r.blockedHeld[idx] &^= newlyReleased
	}

	blockedAxes := r.invokeAxisCallbacks(hand, axes)

	r.lastButtons[idx] = buttons

	out := Filtered{Buttons: buttons &^ r.blockedHeld[idx], Axes: axes}
	for i := 0; i < AxisCount; i++ {
		if blockedAxes&(1<<uint(i)) != 0 {
			out.Axes[i] = Axis{}
		}
	}
	return out
}

func (r *Router) menuBlocked() bool {
	return r.menuQuery != nil && r.menuQuery()
}

// invokeButtonCallbacks dispatches each changed button bit to all matching
// subscribers and returns the mask of buttons any subscriber consumed.
// The callback list is snapshotted first: a callback may register or remove
// callbacks, and that must not corrupt the iteration.
func (r *Router) invokeButtonCallbacks(hand Hand, released bool, changed uint64) uint64 {
	if r.menuBlocked() {
		return 0
	}

	var blocked uint64

	snapshot := make([]buttonEntry, len(r.buttonCallbacks))
	copy(snapshot, r.buttonCallbacks)

	for buttonID := 0; buttonID < 64; buttonID++ {
		mask := uint64(1) << uint(buttonID)
		if changed&mask == 0 {
			continue
		}
		for _, entry := range snapshot {
			if entry.mask&mask == 0 {
				continue
			}
			if r.safeButtonInvoke(entry.callback, hand, released, Button(buttonID)) {
				blocked |= mask
			}
		}
	}

	return blocked
}

func (r *Router) invokeAxisCallbacks(hand Hand, axes [AxisCount]Axis) uint32 {
	if r.menuBlocked() {
		return 0
	}

	var blocked uint32

	snapshot := make([]axisEntry, len(r.axisCallbacks))
	copy(snapshot, r.axisCallbacks)

	for axis := 0; axis < AxisCount; axis++ {
		for _, entry := range snapshot {
			if entry.axis != axis {
				continue
			}
			if r.safeAxisInvoke(entry.callback, hand, axis, axes[axis].X, axes[axis].Y) {
				blocked |= 1 << uint(axis)
			}
		}
	}

	return blocked
}

func (r *Router) safeButtonInvoke(cb ButtonCallback, hand Hand, released bool, button Button) (consumed bool) {
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Msg("vrinput: button callback panicked")
			consumed = false
		}
	}()
	return cb(hand, released, button)
}

func (r *Router) safeAxisInvoke(cb AxisCallback, hand Hand, axis int, x, y float32) (consumed bool) {
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Msg("vrinput: axis callback panicked")
			consumed = false
		}
	}()
	return cb(hand, axis, x, y)
}
