package config

// Option keys used by the editor. Bool keys carry a b prefix, float keys
// an f prefix, matching the section files they serialize into.
const (
	// KeyEditModeEnabled is the master switch for entering edit mode at all.
	KeyEditModeEnabled = "General:bEditModeEnabled"

	// KeyQuickEditEnabled allows the double-tap gesture to toggle edit mode.
	KeyQuickEditEnabled = "Controls:bQuickEditEnabled"

	// KeyTutorialShown records that the one-time tutorial ran to completion.
	KeyTutorialShown = "General:bTutorialShown"

	// KeyHoldToSelectSeconds is how long the trigger must stay down before a
	// press is treated as a hold instead of a tap.
	KeyHoldToSelectSeconds = "Controls:fHoldToSelectSeconds"

	// KeyDoubleTapSeconds is the window in which two grip taps count as a
	// double tap.
	KeyDoubleTapSeconds = "Controls:fDoubleTapSeconds"

	// KeySphereScanInterval throttles containment scans while resizing the
	// selection sphere.
	KeySphereScanInterval = "Selection:fSphereScanIntervalSeconds"
)

// Defaults for every registered option.
const (
	DefaultEditModeEnabled     = true
	DefaultQuickEditEnabled    = true
	DefaultTutorialShown       = false
	DefaultHoldToSelectSeconds = 0.25
	DefaultDoubleTapSeconds    = 0.4
	DefaultSphereScanInterval  = 0.1
)

// RegisterDefaults seeds every known option so a fresh config file lists
// them all with their defaults.
func RegisterDefaults(s *Store) {
	s.RegisterBoolOption(KeyEditModeEnabled, DefaultEditModeEnabled)
	s.RegisterBoolOption(KeyQuickEditEnabled, DefaultQuickEditEnabled)
	s.RegisterBoolOption(KeyTutorialShown, DefaultTutorialShown)
	s.RegisterFloatOption(KeyHoldToSelectSeconds, DefaultHoldToSelectSeconds)
	s.RegisterFloatOption(KeyDoubleTapSeconds, DefaultDoubleTapSeconds)
	s.RegisterFloatOption(KeySphereScanInterval, DefaultSphereScanInterval)
}
