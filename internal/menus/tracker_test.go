package menus

import "testing"

func TestBlockingMenuOpen(t *testing.T) {
	tr := NewTracker()

	if tr.IsBlockingMenuOpen() {
		t.Error("no menus open, nothing should block")
	}

	tr.OnMenuOpened("HUD")
	if tr.IsBlockingMenuOpen() {
		t.Error("HUD is not a blocking menu")
	}

	tr.OnMenuOpened("PauseMenu")
	if !tr.IsBlockingMenuOpen() {
		t.Error("PauseMenu should block")
	}

	tr.OnMenuClosed("PauseMenu")
	if tr.IsBlockingMenuOpen() {
		t.Error("closing the blocking menu should unblock")
	}
}

func TestCloseUnopenedMenuIsNoop(t *testing.T) {
	tr := NewTracker()
	tr.OnMenuClosed("PauseMenu")
	if tr.IsBlockingMenuOpen() {
		t.Error("closing a menu that was never opened should be a no-op")
	}
}
