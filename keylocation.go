package loupedeck

import "fmt"

// Screen identifies one of the device's three touch-screen regions.
type Screen uint16

const (
	ScreenLeft   Screen = 0x004C
	ScreenCenter Screen = 0x0041
	ScreenRight  Screen = 0x0052
)

func (s Screen) String() string {
	switch s {
	case ScreenLeft:
		return "Left"
	case ScreenCenter:
		return "Center"
	case ScreenRight:
		return "Right"
	default:
		return fmt.Sprintf("Screen(0x%04x)", uint16(s))
	}
}

// keySizePx is the side length, in pixels, of one square key on the
// Center screen's touch grid.
const keySizePx = 90

// centerOriginX is the x-offset of the Center screen's touch grid within
// the device's overall touch x-coordinate space.
const centerOriginX = 60

// KeyLocation identifies one key on the Center touch-screen grid. The
// controller treats it opaquely (it does not enforce 0..4 x 0..2 extents
// for the known hardware); it's only a map key.
type KeyLocation struct {
	X byte
	Y byte
}

func (k KeyLocation) String() string {
	return fmt.Sprintf("(%d,%d)", k.X, k.Y)
}

// ScreenForX maps a touch x-coordinate to the Screen it falls within.
// Out-of-range x (outside [0, 480]) is reported as an error; the caller
// is expected to drop the event rather than propagate a bogus Screen.
func ScreenForX(x uint16) (Screen, error) {
	switch {
	case x <= 60:
		return ScreenLeft, nil
	case x <= 420:
		return ScreenCenter, nil
	case x <= 480:
		return ScreenRight, nil
	default:
		return 0, fmt.Errorf("loupedeck: touch x %d out of range", x)
	}
}

// KeyLocationForTouch maps Center-screen touch coordinates to the key
// they fall within: kx = (x-60)/90, ky = y/90. Callers must have already
// established the touch is on the Center screen.
func KeyLocationForTouch(x, y uint16) KeyLocation {
	kx := (int(x) - centerOriginX) / keySizePx
	ky := int(y) / keySizePx
	return KeyLocation{X: byte(kx), Y: byte(ky)}
}

// KeyPixelOrigin returns the top-left pixel coordinate of a key on the
// Center screen.
func KeyPixelOrigin(k KeyLocation) (x, y int) {
	return int(k.X) * keySizePx, int(k.Y) * keySizePx
}
