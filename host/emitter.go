// Package host implements the plugin host context (C5): the per-key
// handle given to plugin screen instances, and the cloneable emitter
// that forwards draw and vibrate calls to the device transport.
package host

import (
	"image"

	"github.com/loupedeckhost/loupedeck"
)

// DeviceEventEmitter is a thin façade over the transport's outbound
// queue. It is cloneable so every ScreenContext can hold its own copy
// without sharing mutable state beyond the underlying Device.
type DeviceEventEmitter interface {
	DrawBuffer(screen loupedeck.Screen, x, y, w, h int, buf []byte) error
	DrawImage(screen loupedeck.Screen, x, y int, im image.Image) error
	DrawKey(k loupedeck.KeyLocation, im image.Image) error
	Vibrate(level loupedeck.Haptic) error
	Clone() DeviceEventEmitter
}

// deviceEmitter is the concrete DeviceEventEmitter wrapping a live
// *loupedeck.Device.
type deviceEmitter struct {
	device *loupedeck.Device
}

// NewDeviceEventEmitter wraps a connected device for use by plugin
// contexts.
func NewDeviceEventEmitter(d *loupedeck.Device) DeviceEventEmitter {
	return &deviceEmitter{device: d}
}

func (e *deviceEmitter) DrawBuffer(screen loupedeck.Screen, x, y, w, h int, buf []byte) error {
	return e.device.DrawBuffer(screen, x, y, w, h, buf)
}

func (e *deviceEmitter) DrawImage(screen loupedeck.Screen, x, y int, im image.Image) error {
	return e.device.DrawImage(screen, x, y, im)
}

func (e *deviceEmitter) DrawKey(k loupedeck.KeyLocation, im image.Image) error {
	return e.device.DrawKey(k, im)
}

func (e *deviceEmitter) Vibrate(level loupedeck.Haptic) error {
	return e.device.Vibrate(level)
}

// Clone returns a façade over the same device; all context calls return
// promptly regardless, since the underlying Device enqueues work rather
// than blocking on it.
func (e *deviceEmitter) Clone() DeviceEventEmitter {
	return &deviceEmitter{device: e.device}
}
