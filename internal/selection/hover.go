package selection

// HoverState debounces the ray hover target. A new object must stay under
// the ray for a few consecutive frames before it becomes the hover target,
// which keeps the highlight from flickering as the controller jitters across
// object edges. Losing the ray does not immediately drop the target when the
// caller reports that a retention ray still hits it.
type HoverState struct {
	debounceFrames  int
	current         uint64
	candidate       uint64
	candidateFrames int
}

// NewHoverState creates a hover tracker requiring debounceFrames consecutive
// hits before switching targets. Zero means switch immediately.
func NewHoverState(debounceFrames int) *HoverState {
	return &HoverState{debounceFrames: debounceFrames}
}

// Current returns the hovered object uid, zero when nothing is hovered.
func (h *HoverState) Current() uint64 {
	return h.current
}

// Update feeds one frame of ray results. hitUID is the object under the
// central ray (zero for none); retainCurrent reports whether any ray still
// hits the current target. It returns the hover target after this frame and
// whether it changed.
func (h *HoverState) Update(hitUID uint64, retainCurrent bool) (uint64, bool) {
	switch {
	case hitUID == h.current && hitUID != 0:
		h.candidate = 0
		h.candidateFrames = 0
		return h.current, false

	case hitUID != 0:
		if hitUID != h.candidate {
			h.candidate = hitUID
			h.candidateFrames = 0
		}
		h.candidateFrames++
		if h.candidateFrames > h.debounceFrames {
			h.current = hitUID
			h.candidate = 0
			h.candidateFrames = 0
			return h.current, true
		}
		return h.current, false

	default: // no hit this frame
		h.candidate = 0
		h.candidateFrames = 0
		if h.current != 0 && retainCurrent {
			return h.current, false
		}
		if h.current == 0 {
			return 0, false
		}
		h.current = 0
		return 0, true
	}
}

// Reset clears the hover target and any pending candidate.
func (h *HoverState) Reset() {
	h.current = 0
	h.candidate = 0
	h.candidateFrames = 0
}
