// Package editmode owns the edit-mode gate, the edit-mode input filter, the
// selection/placement state machine and the ambient enter/exit gesture
// detector. Everything here runs on the main simulation thread.
package editmode

import (
	"github.com/rs/zerolog/log"

	"vredit/internal/vrinput"
)

// Settings edit mode disables on conflicting input consumers while active.
// A physics-grab system, for example, must stop reacting to trigger and grip
// or it would fight the editor for the same buttons.
const (
	SettingEnableTrigger = "EnableTrigger"
	SettingEnableGrip    = "EnableGrip"
)

var gatedSettings = []string{SettingEnableTrigger, SettingEnableGrip}

// InputConsumer is an external system whose input handling conflicts with
// edit mode. Settings are probed once at Initialize; a consumer that does
// not expose a setting is simply left alone for that setting.
type InputConsumer interface {
	Name() string
	BoolSetting(name string) (value bool, ok bool)
	SetBoolSetting(name string, value bool) bool
}

// ModeObserver is notified when edit mode engages or disengages. The state
// machine implements this to move between Idle and its selection modes.
type ModeObserver interface {
	OnEnterEditMode()
	OnExitEditMode()
}

type consumerCaps struct {
	consumer InputConsumer
	settings map[string]bool // which gated settings this consumer exposes
	changed  map[string]bool // which settings we actually flipped on Enter
}

// Session is the edit-mode gate. Enter and Exit are idempotent, and side
// effects on input consumers are reverted only if this session applied them.
type Session struct {
	router    *vrinput.Router
	consumers []*consumerCaps
	observers []ModeObserver

	active      bool
	initialized bool
}

func NewSession(router *vrinput.Router) *Session {
	return &Session{router: router}
}

// AddConsumer registers a conflicting input consumer. Must be called before
// Initialize so capability probing covers it.
func (s *Session) AddConsumer(c InputConsumer) {
	s.consumers = append(s.consumers, &consumerCaps{
		consumer: c,
		settings: make(map[string]bool),
		changed:  make(map[string]bool),
	})
}

// AddObserver registers a mode observer. Observers are invoked in
// registration order on Enter and reverse order on Exit.
func (s *Session) AddObserver(o ModeObserver) {
	s.observers = append(s.observers, o)
}

// Initialize probes consumer capabilities once. It fails soft when the raw
// input router is not ready: the session stays uninitialized and Enter is a
// no-op until a later Initialize succeeds.
func (s *Session) Initialize() bool {
	if s.initialized {
		return true
	}
	if s.router == nil || !s.router.IsInitialized() {
		log.Warn().Msg("editmode: input router not ready, session stays uninitialized")
		return false
	}
	for _, caps := range s.consumers {
		for _, name := range gatedSettings {
			if _, ok := caps.consumer.BoolSetting(name); ok {
				caps.settings[name] = true
			}
		}
		log.Info().Str("consumer", caps.consumer.Name()).Int("settings", len(caps.settings)).
			Msg("editmode: probed input consumer")
	}
	s.initialized = true
	return true
}

func (s *Session) IsInitialized() bool {
	return s.initialized
}

func (s *Session) IsActive() bool {
	return s.active
}

// Enter engages edit mode. No-op when already active or not initialized.
// Each conflicting consumer setting that is currently enabled gets disabled,
// and only those are remembered for the matching Exit.
func (s *Session) Enter() {
	if !s.initialized {
		log.Warn().Msg("editmode: Enter before Initialize, ignoring")
		return
	}
	if s.active {
		log.Debug().Msg("editmode: Enter while already active")
		return
	}

	for _, caps := range s.consumers {
		for name := range caps.settings {
			value, ok := caps.consumer.BoolSetting(name)
			if !ok || !value {
				continue // absent or already disabled, leave it be
			}
			if caps.consumer.SetBoolSetting(name, false) {
				caps.changed[name] = true
			} else {
				log.Warn().Str("consumer", caps.consumer.Name()).Str("setting", name).
					Msg("editmode: failed to disable consumer setting")
			}
		}
	}

	s.active = true
	log.Info().Msg("editmode: entered")

	for _, o := range s.observers {
		o.OnEnterEditMode()
	}
}

// Exit disengages edit mode. No-op when not active. Only settings this
// session disabled on Enter are re-enabled.
func (s *Session) Exit() {
	if !s.active {
		log.Debug().Msg("editmode: Exit while not active")
		return
	}

	for i := len(s.observers) - 1; i >= 0; i-- {
		s.observers[i].OnExitEditMode()
	}

	for _, caps := range s.consumers {
		for name := range caps.changed {
			if !caps.consumer.SetBoolSetting(name, true) {
				log.Warn().Str("consumer", caps.consumer.Name()).Str("setting", name).
					Msg("editmode: failed to restore consumer setting")
			}
			delete(caps.changed, name)
		}
	}

	s.active = false
	log.Info().Msg("editmode: exited")
}

// Toggle flips the mode.
func (s *Session) Toggle() {
	if s.active {
		s.Exit()
	} else {
		s.Enter()
	}
}
