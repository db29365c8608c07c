package loupedeck

import (
	"encoding/binary"
	"fmt"
	"image"
	"time"
)

// DeviceInfo composes the replies to a SerialOut/VersionOut exchange.
type DeviceInfo struct {
	Serial  string
	Version string
}

// GetInfo issues SerialOut and VersionOut and waits for their matched
// SerialIn/VersionIn replies, composing the result. It fails if either
// reply doesn't arrive within the timeout.
func (d *Device) GetInfo(timeout time.Duration) (DeviceInfo, error) {
	serialEv, err := d.SendAndWait(Message{Header: SerialOut}, timeout)
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("loupedeck: get serial: %w", err)
	}
	versionEv, err := d.SendAndWait(Message{Header: VersionOut}, timeout)
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("loupedeck: get version: %w", err)
	}
	return DeviceInfo{Serial: serialEv.Serial, Version: versionEv.Version}, nil
}

// Vibrate fires a haptic pulse, fire-and-forget.
func (d *Device) Vibrate(level Haptic) error {
	return d.Send(Message{Header: SetVibration, Body: []byte{byte(level)}})
}

// DrawBuffer writes an RGB565 pixel buffer to a rectangular region of the
// named screen, then issues a refresh so the device latches it. buf must
// be exactly 2*w*h bytes.
func (d *Device) DrawBuffer(screen Screen, x, y, w, h int, buf []byte) error {
	if err := CheckBufferLength(buf, w, h); err != nil {
		return err
	}

	body := make([]byte, 10+len(buf))
	binary.BigEndian.PutUint16(body[0:2], uint16(screen))
	binary.BigEndian.PutUint16(body[2:4], uint16(x))
	binary.BigEndian.PutUint16(body[4:6], uint16(y))
	binary.BigEndian.PutUint16(body[6:8], uint16(w))
	binary.BigEndian.PutUint16(body[8:10], uint16(h))
	copy(body[10:], buf)

	if err := d.Send(Message{Header: WriteFrameBuffer, Body: body}); err != nil {
		return fmt.Errorf("loupedeck: draw buffer: %w", err)
	}

	refresh := make([]byte, 2)
	binary.BigEndian.PutUint16(refresh, uint16(screen))
	if err := d.Send(Message{Header: DrawOut, Body: refresh}); err != nil {
		return fmt.Errorf("loupedeck: draw refresh: %w", err)
	}
	return nil
}

// DrawImage converts im to RGB565 and draws it via DrawBuffer.
func (d *Device) DrawImage(screen Screen, x, y int, im image.Image) error {
	b := im.Bounds()
	return d.DrawBuffer(screen, x, y, b.Dx(), b.Dy(), EncodeRGB565(im))
}

// DrawKey draws a 90x90 image to the given key location on the Center
// screen.
func (d *Device) DrawKey(k KeyLocation, im image.Image) error {
	x, y := KeyPixelOrigin(k)
	return d.DrawImage(ScreenCenter, x, y, im)
}
