package loupedeck

// Haptic names a vibration intensity/duration code the device accepts in
// a SetVibration message body. spec.md itself only specifies
// "vibrate(level)" as a bare integer; these values are supplemented from
// the original source's Haptic enum (lib/src/loupedeck/constants.rs),
// which time-plugin and the dispatcher's courtesy buzz both rely on by
// name.
type Haptic byte

const (
	HapticShortLow Haptic = 0x32
	HapticMedium   Haptic = 0x0a
	HapticLong     Haptic = 0x0f
	HapticVeryLong Haptic = 0x76
)
