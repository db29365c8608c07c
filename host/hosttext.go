package host

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextLabel rasterises plugin label text onto an x-by-y image before a
// plugin hands it to DrawTarget. Font size shrinks until the string fits
// within 85% of the box, then the string is centered.
type TextLabel struct {
	font *opentype.Font
	face font.Face
}

// NewTextLabel parses a TrueType/OpenType font's bytes and prepares a
// default 12pt face for it.
func NewTextLabel(ttf []byte) (*TextLabel, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("host: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 12, DPI: 150})
	if err != nil {
		return nil, fmt.Errorf("host: build face: %w", err)
	}
	return &TextLabel{font: f, face: face}, nil
}

// Render draws s centered in a w x h image, over bg, in fg.
func (t *TextLabel) Render(w, h int, s string, fg, bg color.Color) (image.Image, error) {
	im := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(im, im.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	fd := font.Drawer{
		Dst:  im,
		Src:  &image.Uniform{fg},
		Face: t.face,
	}

	size := 12.0
	maxWidth := fixed.I(int(float64(w) * 0.85))
	maxHeight := fixed.I(int(float64(h) * 0.85))

	for {
		face, err := opentype.NewFace(t.font, &opentype.FaceOptions{Size: size, DPI: 150})
		if err != nil {
			return nil, fmt.Errorf("host: build face: %w", err)
		}
		fd.Face = face

		bounds, _ := fd.BoundString(s)
		width := bounds.Max.X - bounds.Min.X
		height := bounds.Max.Y - bounds.Min.Y

		if (width > maxWidth || height > maxHeight) && size > 4 {
			size *= 0.8
			continue
		}

		centerX := (fixed.I(w) - width) / 2
		centerY := (fixed.I(h)-height)/2 - bounds.Min.Y

		fd.Dot = fixed.Point26_6{X: centerX, Y: centerY}
		fd.DrawString(s)
		return im, nil
	}
}
