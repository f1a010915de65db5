// Package menus tracks which host menus are open so input dispatch can be
// suppressed while a blocking menu has the player's attention.
package menus

import "github.com/rs/zerolog/log"

// blockingMenus are the menus that stop edit-mode input processing while open.
var blockingMenus = map[string]bool{
	"MainMenu":      true,
	"PauseMenu":     true,
	"LoadingMenu":   true,
	"ConsoleMenu":   true,
	"InventoryMenu": true,
	"JournalMenu":   true,
	"MessageBox":    true,
	"SettingsMenu":  true,
}

// Tracker keeps the set of currently open menus. The host reports menu
// open/close events; everything else polls IsBlockingMenuOpen synchronously.
type Tracker struct {
	open map[string]bool
}

func NewTracker() *Tracker {
	return &Tracker{open: make(map[string]bool)}
}

func (t *Tracker) OnMenuOpened(name string) {
	t.open[name] = true
	log.Debug().Str("menu", name).Msg("menus: opened")
}

func (t *Tracker) OnMenuClosed(name string) {
	delete(t.open, name)
	log.Debug().Str("menu", name).Msg("menus: closed")
}

func (t *Tracker) IsOpen(name string) bool {
	return t.open[name]
}

// IsBlockingMenuOpen reports whether any menu that suppresses edit-mode
// input is currently open.
func (t *Tracker) IsBlockingMenuOpen() bool {
	for name := range t.open {
		if blockingMenus[name] {
			return true
		}
	}
	return false
}
