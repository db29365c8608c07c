package loupedeck

import (
	"fmt"
	"image"

	"maze.io/x/pixel/pixelcolor"
)

// EncodeRGB565 converts an image to the device's native little-endian
// RGB565 pixel buffer, row-major, skipping alpha entirely. The returned
// buffer's length is always 2*W*H for a W x H image.
func EncodeRGB565(im image.Image) []byte {
	b := im.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, 0, 2*w*h)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := pixelcolor.ToRGB565(im.At(x, y))
			out = append(out, byte(v&0xff), byte(v>>8))
		}
	}
	return out
}

// CheckBufferLength verifies a pixel buffer matches the expected size for
// a w x h RGB565 region, returning ErrLengthMismatch otherwise.
func CheckBufferLength(buf []byte, w, h int) error {
	want := 2 * w * h
	if len(buf) != want {
		return fmt.Errorf("loupedeck: buffer is %d bytes, want %d for %dx%d: %w", len(buf), want, w, h, ErrLengthMismatch)
	}
	return nil
}
