package editmode

import (
	"github.com/rs/zerolog/log"

	"vredit/internal/vrinput"
)

// HandlerID identifies a filter callback for later removal.
type HandlerID uint32

// Handler is an edit-mode button handler. Return true to consume the event.
type Handler func(hand vrinput.Hand, released bool, button vrinput.Button) bool

type filterEntry struct {
	id      HandlerID
	mask    uint64
	handler Handler
}

// Filter is the second-stage router for edit-mode input. It forwards button
// edges only while the session is active and no blocking menu is open, and
// it runs every matching handler even after one consumes the event: a later
// subscriber's side effects must not depend on an earlier subscriber's
// return value.
type Filter struct {
	session   *Session
	menuQuery func() bool

	entries []filterEntry
	nextID  HandlerID
}

func NewFilter(session *Session, menuQuery func() bool) *Filter {
	return &Filter{
		session:   session,
		menuQuery: menuQuery,
		nextID:    1,
	}
}

// AddCallback subscribes a handler for every button in mask.
func (f *Filter) AddCallback(mask uint64, handler Handler) HandlerID {
	if handler == nil {
		return 0
	}
	id := f.nextID
	f.nextID++
	f.entries = append(f.entries, filterEntry{id: id, mask: mask, handler: handler})
	log.Debug().Uint32("id", uint32(id)).Str("buttons", vrinput.MaskNames(mask)).
		Msg("editmode: filter callback added")
	return id
}

// RemoveCallback unsubscribes a handler. No-op for unknown ids.
func (f *Filter) RemoveCallback(id HandlerID) {
	for i, e := range f.entries {
		if e.id == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return
		}
	}
}

// Dispatch feeds one raw button edge through the filter. It reports whether
// any handler consumed the event. This is registered as a button callback on
// the raw input router.
func (f *Filter) Dispatch(hand vrinput.Hand, released bool, button vrinput.Button) bool {
	if !f.session.IsActive() {
		return false
	}
	if f.menuQuery != nil && f.menuQuery() {
		return false
	}

	mask := vrinput.MaskFromButton(button)

	// Handlers may add or remove callbacks while we iterate.
	snapshot := make([]filterEntry, len(f.entries))
	copy(snapshot, f.entries)

	consumed := false
	for _, e := range snapshot {
		if e.mask&mask == 0 {
			continue
		}
		if e.handler(hand, released, button) {
			consumed = true
		}
	}
	return consumed
}
