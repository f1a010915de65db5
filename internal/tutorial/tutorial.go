// Package tutorial runs the one-time first-run flow shown when the player
// first enters edit mode through the ambient gesture.
package tutorial

import (
	"github.com/rs/zerolog/log"

	"vredit/internal/config"
)

// Notifier displays a user-facing message.
type Notifier interface {
	Notify(message string)
}

var firstRunMessages = []string{
	"Edit mode: point at an object and tap the trigger to select it.",
	"Hold the trigger to move the selection; the thumbstick pushes, pulls and spins it.",
	"Double-tap the trigger inside an object to leave edit mode.",
}

// Manager decides whether the first-run flow still needs to run and, when
// it does, walks the player through the basics once. The shown flag lives
// in configuration so it survives restarts.
type Manager struct {
	cfg      *config.Store
	notifier Notifier
}

func NewManager(cfg *config.Store, notifier Notifier) *Manager {
	return &Manager{cfg: cfg, notifier: notifier}
}

// HandleFirstEntry shows the tutorial on the first gesture entry and
// reports whether it handled messaging. Later entries return false so the
// caller falls back to its normal notification.
func (m *Manager) HandleFirstEntry() bool {
	if m.cfg.GetBool(config.KeyTutorialShown, config.DefaultTutorialShown) {
		return false
	}
	m.cfg.SetBool(config.KeyTutorialShown, true)
	log.Info().Msg("tutorial: first-run flow shown")
	if m.notifier == nil {
		return true
	}
	for _, msg := range firstRunMessages {
		m.notifier.Notify(msg)
	}
	return true
}
