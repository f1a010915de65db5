// Package frame drives per-frame updates for every edit-mode subsystem.
// A single host hook calls Tick once per simulation frame; the scheduler
// computes delta time and fans it out to registered listeners.
package frame

import (
	"time"

	"github.com/rs/zerolog/log"
)

// UpdateListener receives per-frame updates with the elapsed wall-clock time
// since the previous frame, in seconds.
type UpdateListener interface {
	OnFrameUpdate(deltaTime float32)
}

// nominalDelta is used for the very first tick, when no previous sample exists.
const nominalDelta = float32(1.0 / 60.0)

type listenerEntry struct {
	listener       UpdateListener
	onlyInEditMode bool
}

// Scheduler is a single-threaded, ordered list of frame listeners.
// All methods must be called from the host's main simulation thread.
type Scheduler struct {
	listeners []listenerEntry

	// editModeActive gates edit-mode-only listeners. Nil means "never active".
	editModeActive func() bool

	lastTick    time.Time
	hasLastTick bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// SetEditModeQuery installs the query used to gate edit-mode-only listeners.
func (s *Scheduler) SetEditModeQuery(query func() bool) {
	s.editModeActive = query
}

// Register adds a listener. Duplicate registration is a no-op.
// If onlyInEditMode is true the listener is skipped while edit mode is off.
func (s *Scheduler) Register(listener UpdateListener, onlyInEditMode bool) {
	if listener == nil {
		log.Warn().Msg("frame: Register called with nil listener")
		return
	}
	for _, entry := range s.listeners {
		if entry.listener == listener {
			log.Warn().Msg("frame: listener already registered")
			return
		}
	}
	s.listeners = append(s.listeners, listenerEntry{listener, onlyInEditMode})
	log.Debug().Bool("onlyInEditMode", onlyInEditMode).Int("total", len(s.listeners)).
		Msg("frame: registered listener")
}

// Unregister removes a listener. No-op if it was never registered.
func (s *Scheduler) Unregister(listener UpdateListener) {
	for i, entry := range s.listeners {
		if entry.listener == listener {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			log.Debug().Int("remaining", len(s.listeners)).Msg("frame: unregistered listener")
			return
		}
	}
}

func (s *Scheduler) UnregisterAll() {
	s.listeners = nil
}

func (s *Scheduler) ListenerCount() int {
	return len(s.listeners)
}

// Tick is the host frame hook. Delta time comes from the steady clock; the
// first tick uses a nominal 60fps delta since there is no prior sample.
func (s *Scheduler) Tick() {
	now := time.Now()
	deltaTime := nominalDelta
	if s.hasLastTick {
		deltaTime = float32(now.Sub(s.lastTick).Seconds())
	}
	s.lastTick = now
	s.hasLastTick = true

	s.Advance(deltaTime)
}

// Advance dispatches one frame with an explicit delta time.
// Listeners may register or unregister listeners reentrantly: dispatch
// iterates a snapshot of the list, so mutation never corrupts the loop.
func (s *Scheduler) Advance(deltaTime float32) {
	inEditMode := s.editModeActive != nil && s.editModeActive()

	snapshot := make([]listenerEntry, len(s.listeners))
	copy(snapshot, s.listeners)

	for _, entry := range snapshot {
		if entry.onlyInEditMode && !inEditMode {
			continue
		}
		s.invoke(entry.listener, deltaTime)
	}
}

// invoke shields the frame tick from a misbehaving listener. A panic inside
// a listener is logged and swallowed so the remaining listeners still run.
func (s *Scheduler) invoke(listener UpdateListener, deltaTime float32) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("frame: listener panicked during update")
		}
	}()
	listener.OnFrameUpdate(deltaTime)
}
