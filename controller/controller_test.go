package controller

import (
	"image"
	"testing"
	"time"

	"github.com/loupedeckhost/loupedeck"
	"github.com/loupedeckhost/loupedeck/host"
	"github.com/loupedeckhost/loupedeck/plugin"
	"github.com/stretchr/testify/require"
)

// recordingScreen counts touches so tests can observe which instance a
// dispatched event reached.
type recordingScreen struct {
	id      string
	touches int
}

func (r *recordingScreen) OnTouch(host.TouchEvent) { r.touches++ }

// fakeEmitter satisfies host.DeviceEventEmitter without a live device.
type fakeEmitter struct{}

func (fakeEmitter) DrawBuffer(loupedeck.Screen, int, int, int, int, []byte) error { return nil }
func (fakeEmitter) DrawImage(loupedeck.Screen, int, int, image.Image) error       { return nil }
func (fakeEmitter) DrawKey(loupedeck.KeyLocation, image.Image) error              { return nil }
func (fakeEmitter) Vibrate(loupedeck.Haptic) error                                { return nil }
func (fakeEmitter) Clone() host.DeviceEventEmitter                                { return fakeEmitter{} }

func newTestController() (*Controller, chan loupedeck.Event) {
	events := make(chan loupedeck.Event, 10)
	c := &Controller{
		config:   ControllerConfig{Pages: map[string]PageConfig{}},
		registry: plugin.NewRegistry(),
		emitter:  fakeEmitter{},
		device:   nil,
		pageSwap: make(chan *Page),
		done:     make(chan struct{}),
	}
	go c.dispatch(events)
	return c, events
}

func registerDemoPlugin(t *testing.T, c *Controller, screenID string, instances *[]*recordingScreen) {
	t.Helper()
	decl := &plugin.PluginDeclaration{
		ABIVersion:  plugin.ABIVersion,
		CoreVersion: plugin.CoreVersion,
		PluginID:    "demo",
		Register: func(r plugin.Registrar) {
			r.RegisterScreen(screenID, plugin.ScreenOptions{}, func(ctx host.ScreenContext) host.ScreenPlugin {
				s := &recordingScreen{id: screenID}
				*instances = append(*instances, s)
				return s
			})
		},
	}
	lp, err := plugin.FromDeclaration(decl)
	require.NoError(t, err)
	c.registry.Store(lp)
}

func TestPageSwapDestroysPreviousInstances(t *testing.T) {
	c, events := newTestController()

	var madeA, madeB []*recordingScreen
	registerDemoPlugin(t, c, "screen-a", &madeA)

	key := loupedeck.KeyLocation{X: 2, Y: 1}
	c.SetPage(PageConfig{
		Name:   "A",
		Screen: map[loupedeck.KeyLocation]PluginIdentifier{key: {PluginID: "demo", PluginRef: "screen-a"}},
	})
	require.NoError(t, c.SetCurrentPage("A"))

	events <- loupedeck.Event{Kind: loupedeck.EventTouch, TouchScreen: loupedeck.ScreenCenter, TouchX: 240, TouchY: 90}
	waitUntil(t, func() bool { return len(madeA) == 1 && madeA[0].touches == 1 })

	// Re-register under a new ref for page B, reusing the same factory
	// shape but a fresh instance set.
	registerDemoPlugin(t, c, "screen-b", &madeB)
	c.SetPage(PageConfig{
		Name:   "B",
		Screen: map[loupedeck.KeyLocation]PluginIdentifier{key: {PluginID: "demo", PluginRef: "screen-b"}},
	})
	require.NoError(t, c.SetCurrentPage("B"))

	events <- loupedeck.Event{Kind: loupedeck.EventTouch, TouchScreen: loupedeck.ScreenCenter, TouchX: 240, TouchY: 90}
	waitUntil(t, func() bool { return len(madeB) == 1 && madeB[0].touches == 1 })

	require.Len(t, madeA, 1)
	require.Len(t, madeB, 1)
	require.Equal(t, 1, madeA[0].touches, "page A's instance should have received exactly the first touch")
	require.Equal(t, 1, madeB[0].touches, "page B's instance should have received exactly the second touch")
}

func TestSetCurrentPageSkipsMissingPluginEntries(t *testing.T) {
	c, _ := newTestController()

	c.SetPage(PageConfig{
		Name: "partial",
		Screen: map[loupedeck.KeyLocation]PluginIdentifier{
			{X: 0, Y: 0}: {PluginID: "does-not-exist", PluginRef: "none"},
		},
	})

	require.NoError(t, c.SetCurrentPage("partial"))
}

// waitUntil polls cond until it's true or a short deadline passes,
// letting the dispatcher goroutine catch up to a just-sent event before
// the test asserts on its side effects.
func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
