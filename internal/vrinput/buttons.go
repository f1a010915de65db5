package vrinput

import "strings"

// Hand identifies which controller an event came from.
type Hand int

const (
	HandLeft Hand = iota
	HandRight
)

func (h Hand) String() string {
	if h == HandLeft {
		return "left"
	}
	return "right"
}

// Button is a logical controller button id. Values are bit positions in a
// 64-bit button mask, mirroring common VR runtime layouts.
type Button int

const (
	ButtonSystem   Button = 0
	ButtonMenu     Button = 1 // application menu / B button
	ButtonGrip     Button = 2
	ButtonA        Button = 7
	ButtonTouchpad Button = 32 // touchpad / thumbstick click
	ButtonTrigger  Button = 33
)

// MaskFromButton converts a button id to its single-bit mask.
func MaskFromButton(b Button) uint64 {
	return 1 << uint(b)
}

func (b Button) String() string {
	switch b {
	case ButtonSystem:
		return "System"
	case ButtonMenu:
		return "Menu"
	case ButtonGrip:
		return "Grip"
	case ButtonA:
		return "A"
	case ButtonTouchpad:
		return "Touchpad"
	case ButtonTrigger:
		return "Trigger"
	default:
		return "Unknown"
	}
}

// MaskNames returns a readable "+"-joined list of the buttons in a mask.
func MaskNames(mask uint64) string {
	if mask == 0 {
		return "(none)"
	}
	known := []Button{ButtonSystem, ButtonMenu, ButtonGrip, ButtonA, ButtonTouchpad, ButtonTrigger}
	var parts []string
	for _, b := range known {
		if mask&MaskFromButton(b) != 0 {
			parts = append(parts, b.String())
		}
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, "+")
}
