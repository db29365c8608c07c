package host

import "github.com/loupedeckhost/loupedeck"

// TouchEvent is the event a ScreenPlugin instance's OnTouch receives,
// carrying the phase and raw coordinates the dispatcher routed on.
type TouchEvent struct {
	Phase loupedeck.TouchPhase
	X, Y  uint16
}

// ScreenPlugin is the opaque instance a ScreenPluginFactory produces. The
// controller's dispatcher calls OnTouch when a touch event routes to the
// instance's KeyLocation.
type ScreenPlugin interface {
	OnTouch(event TouchEvent)
}
