// Command timeplugin is a screen plugin built with -buildmode=plugin. It
// registers two screens, current-time and current-date, each drawing its
// value onto the key it's bound to and firing a short haptic pattern on
// touch: Medium, then two VeryLong pulses a second apart.
package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/loupedeckhost/loupedeck"
	"github.com/loupedeckhost/loupedeck/host"
	"github.com/loupedeckhost/loupedeck/plugin"
	"golang.org/x/image/font/gofont/goregular"
)

// plugin_declaration must be declared as a value, not a pointer: the
// host's handle.Lookup returns a pointer to whatever type this variable
// holds, and loader.go asserts that pointer is *plugin.PluginDeclaration.
var plugin_declaration = plugin.PluginDeclaration{
	ABIVersion:  plugin.ABIVersion,
	CoreVersion: plugin.CoreVersion,
	PluginID:    "time-plugin",
	Register:    register,
}

func register(r plugin.Registrar) {
	r.RegisterScreen("current-time", plugin.ScreenOptions{Exclusive: false}, newClockScreen(time.Kitchen))
	r.RegisterScreen("current-date", plugin.ScreenOptions{Exclusive: false}, newClockScreen("2006-01-02"))
}

// clockScreen redraws its key with the current time formatted by layout
// whenever touched, then fires the plugin's standard buzz pattern.
type clockScreen struct {
	ctx    host.ScreenContext
	layout string
	label  *host.TextLabel
}

func newClockScreen(layout string) plugin.ScreenPluginFactory {
	return func(ctx host.ScreenContext) host.ScreenPlugin {
		return &clockScreen{ctx: ctx, layout: layout}
	}
}

func (s *clockScreen) OnTouch(event host.TouchEvent) {
	slog.Info("time-plugin: touch", "layout", s.layout, "x", event.X, "y", event.Y)

	if err := s.redraw(); err != nil {
		slog.Warn("time-plugin: redraw failed", "err", err)
	}

	go s.buzz()
}

func (s *clockScreen) redraw() error {
	if s.label == nil {
		label, err := host.NewTextLabel(goregular.TTF)
		if err != nil {
			return fmt.Errorf("time-plugin: %w", err)
		}
		s.label = label
	}

	im, err := s.label.Render(90, 90, time.Now().Format(s.layout), color.White, color.Black)
	if err != nil {
		return fmt.Errorf("time-plugin: render: %w", err)
	}
	return s.ctx.DrawTarget(im)
}

func (s *clockScreen) buzz() {
	if err := s.ctx.Vibrate(loupedeck.HapticMedium); err != nil {
		slog.Warn("time-plugin: vibrate failed", "err", err)
		return
	}
	time.Sleep(time.Second)
	if err := s.ctx.Vibrate(loupedeck.HapticVeryLong); err != nil {
		slog.Warn("time-plugin: vibrate failed", "err", err)
		return
	}
	time.Sleep(time.Second)
	if err := s.ctx.Vibrate(loupedeck.HapticVeryLong); err != nil {
		slog.Warn("time-plugin: vibrate failed", "err", err)
	}
}
