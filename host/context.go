package host

import (
	"image"

	"github.com/loupedeckhost/loupedeck"
)

// ScreenContext is handed to a plugin's screen factory on instantiation.
// It carries the screen and key a plugin instance is bound to, plus a
// cloned emitter so the plugin can draw and vibrate without touching the
// transport directly.
type ScreenContext struct {
	Screen  loupedeck.Screen
	Key     loupedeck.KeyLocation
	Emitter DeviceEventEmitter
}

// NewScreenContext builds a context for a key on the Center screen,
// cloning emitter so the caller's copy stays untouched.
func NewScreenContext(key loupedeck.KeyLocation, emitter DeviceEventEmitter) ScreenContext {
	return ScreenContext{
		Screen:  loupedeck.ScreenCenter,
		Key:     key,
		Emitter: emitter.Clone(),
	}
}

// DrawTarget rasterises surface to RGB565 and forwards it to the
// transport's draw_buffer at the key's pixel coordinates (90*x, 90*y,
// 90x90).
func (c ScreenContext) DrawTarget(surface image.Image) error {
	return c.Emitter.DrawKey(c.Key, surface)
}

// DrawRGB565 writes a pre-converted RGB565 buffer to the key's region,
// skipping pixel conversion.
func (c ScreenContext) DrawRGB565(buf []byte) error {
	x, y := loupedeck.KeyPixelOrigin(c.Key)
	return c.Emitter.DrawBuffer(c.Screen, x, y, 90, 90, buf)
}

// Vibrate fires a fire-and-forget haptic pulse.
func (c ScreenContext) Vibrate(level loupedeck.Haptic) error {
	return c.Emitter.Vibrate(level)
}
