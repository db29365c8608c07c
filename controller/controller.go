package controller

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/loupedeckhost/loupedeck"
	"github.com/loupedeckhost/loupedeck/host"
	"github.com/loupedeckhost/loupedeck/plugin"
)

// Controller holds the persisted page/plugin configuration, the plugin
// registry, the currently active page (if any), and a reference to the
// transport's emitter and event bus. It is the C6 component.
type Controller struct {
	mu     sync.Mutex
	config ControllerConfig

	registry *plugin.Registry
	emitter  host.DeviceEventEmitter

	device *loupedeck.Device

	pageSwap chan *Page
	done     chan struct{}
}

// New builds a Controller bound to a connected device. Start must be
// called once to spin the dispatcher.
func New(device *loupedeck.Device) *Controller {
	return &Controller{
		config:   ControllerConfig{Pages: map[string]PageConfig{}},
		registry: plugin.NewRegistry(),
		emitter:  host.NewDeviceEventEmitter(device),
		device:   device,
		pageSwap: make(chan *Page),
		done:     make(chan struct{}),
	}
}

// LoadPlugin opens a shared library and registers it, delegating to the
// plugin package (C4).
func (c *Controller) LoadPlugin(path string) error {
	lp, err := plugin.Load(path)
	if err != nil {
		return err
	}
	c.registry.Store(lp)
	return nil
}

// SetPage upserts the named page config. It does not affect whichever
// page is currently active.
func (c *Controller) SetPage(cfg PageConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Pages[cfg.Name] = cfg
}

// ListPages returns every configured page's name.
func (c *Controller) ListPages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.config.Pages))
	for name := range c.config.Pages {
		names = append(names, name)
	}
	return names
}

// GetPage returns the named page's config, if any.
func (c *Controller) GetPage(name string) (PageConfig, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg, ok := c.config.Pages[name]
	return cfg, ok
}

// ListPlugins returns every loaded plugin's id.
func (c *Controller) ListPlugins() []string {
	return c.registry.List()
}

// SetCurrentPage materialises a live Page from the named config and
// hands it to the dispatcher, replacing whichever page was previously
// active. Missing plugin or factory entries are skipped without error,
// so partial pages are tolerated.
func (c *Controller) SetCurrentPage(name string) error {
	c.mu.Lock()
	cfg, ok := c.config.Pages[name]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("controller: unknown page %q", name)
	}

	page := &Page{
		Name:      cfg.Name,
		Instances: make(map[loupedeck.KeyLocation]host.ScreenPlugin, len(cfg.Screen)),
	}

	for key, ident := range cfg.Screen {
		lp, ok := c.registry.Get(ident.PluginID)
		if !ok {
			slog.Warn("skipping key: unknown plugin id", "key", key, "plugin_id", ident.PluginID)
			continue
		}
		factory, ok := lp.Factory(ident.PluginRef)
		if !ok {
			slog.Warn("skipping key: unknown plugin ref", "key", key, "plugin_id", ident.PluginID, "plugin_ref", ident.PluginRef)
			continue
		}

		ctx := host.NewScreenContext(key, c.emitter)
		page.Instances[key] = factory(ctx)
	}

	select {
	case c.pageSwap <- page:
	case <-c.done:
		return fmt.Errorf("controller: %w", loupedeck.ErrClosed)
	}
	return nil
}

// Start captures the device's event subscription and spins the
// dispatcher. It must be called exactly once.
func (c *Controller) Start() {
	events := c.device.Subscribe()
	go c.dispatch(events)
}

// Stop ends the dispatcher loop.
func (c *Controller) Stop() {
	close(c.done)
}

// dispatch is the single cooperative loop that observes device events
// and page-swap requests, serialized on one goroutine so the active page
// slot never needs its own lock.
func (c *Controller) dispatch(events chan loupedeck.Event) {
	var active *Page

	for {
		select {
		case page := <-c.pageSwap:
			active = page

		case ev, ok := <-events:
			if !ok {
				return
			}
			c.handleEvent(active, ev)

		case <-c.done:
			return
		}
	}
}

func (c *Controller) handleEvent(active *Page, ev loupedeck.Event) {
	switch ev.Kind {
	case loupedeck.EventButtonPress:
		if ev.Direction == loupedeck.Down {
			// Courtesy haptic feedback on every button-down: fixed
			// policy, not plugin-driven.
			if err := c.device.Vibrate(loupedeck.HapticShortLow); err != nil {
				slog.Warn("courtesy haptic failed", "err", err)
			}
		}

	case loupedeck.EventTouch:
		if active == nil || ev.TouchScreen != loupedeck.ScreenCenter {
			return
		}
		key := loupedeck.KeyLocationForTouch(ev.TouchX, ev.TouchY)
		instance, ok := active.Instances[key]
		if !ok {
			return
		}
		instance.OnTouch(host.TouchEvent{
			Phase: ev.TouchPhase,
			X:     ev.TouchX,
			Y:     ev.TouchY,
		})
	}
}
