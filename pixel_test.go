package loupedeck

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func oneByOne(c color.Color) *image.RGBA {
	im := image.NewRGBA(image.Rect(0, 0, 1, 1))
	im.Set(0, 0, c)
	return im
}

func TestEncodeRGB565ReferenceValues(t *testing.T) {
	cases := []struct {
		name string
		c    color.RGBA
		want []byte
	}{
		{"black", color.RGBA{0, 0, 0, 255}, []byte{0x00, 0x00}},
		{"white", color.RGBA{255, 255, 255, 255}, []byte{0xFF, 0xFF}},
		{"red", color.RGBA{255, 0, 0, 255}, []byte{0x00, 0xF8}},
		{"green", color.RGBA{0, 255, 0, 255}, []byte{0xE0, 0x07}},
		{"blue", color.RGBA{0, 0, 255, 255}, []byte{0x1F, 0x00}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EncodeRGB565(oneByOne(tc.c))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCheckBufferLength(t *testing.T) {
	buf := make([]byte, 2*90*90)
	assert.NoError(t, CheckBufferLength(buf, 90, 90))
	assert.ErrorIs(t, CheckBufferLength(buf[:len(buf)-2], 90, 90), ErrLengthMismatch)
}
