// Command loupedeck-host connects to a device, loads plugin shared
// libraries from a directory, loads a page configuration, and dispatches
// device events to the active page until interrupted.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/loupedeckhost/loupedeck"
	"github.com/loupedeckhost/loupedeck/controller"
)

func main() {
	cfg := loadHostConfig()

	device, err := connectDevice(cfg)
	if err != nil {
		slog.Error("connect failed", "err", err)
		os.Exit(1)
	}
	defer device.Close()

	info, err := device.GetInfo(cfg.RPCTimeout)
	if err != nil {
		slog.Error("device handshake failed", "err", err)
		os.Exit(1)
	}
	slog.Info("device identified", "serial", info.Serial, "version", info.Version)

	ctl := controller.New(device)

	if err := loadPlugins(ctl, cfg.PluginDir); err != nil {
		slog.Error("loading plugins failed", "err", err)
		os.Exit(1)
	}

	if err := loadPages(ctl, cfg.PageFile); err != nil {
		slog.Error("loading pages failed", "err", err)
		os.Exit(1)
	}

	ctl.Start()

	if len(ctl.ListPages()) == 0 {
		slog.Info("no pages configured, no page active")
	} else if err := ctl.SetCurrentPage(cfg.StartPage); err != nil {
		slog.Error("setting start page failed", "page", cfg.StartPage, "err", err)
		os.Exit(1)
	}

	slog.Info("loupedeck-host running", "start_page", cfg.StartPage)
	waitForSignal()

	ctl.Stop()
	slog.Info("loupedeck-host shutting down")
}

func connectDevice(cfg *hostConfig) (*loupedeck.Device, error) {
	if cfg.SerialPort != "" {
		slog.Info("connecting to configured serial port", "port", cfg.SerialPort)
		return loupedeck.ConnectPath(cfg.SerialPort)
	}
	slog.Info("auto-detecting serial port")
	return loupedeck.Connect()
}

// loadPlugins opens every *.so file directly under dir. A directory that
// doesn't exist yet is not an error: a fresh install has no plugins.
func loadPlugins(ctl *controller.Controller, dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		slog.Info("plugin directory does not exist, skipping", "dir", dir)
		return nil
	}
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".so" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := ctl.LoadPlugin(path); err != nil {
			slog.Warn("skipping plugin", "path", path, "err", err)
			continue
		}
		slog.Info("loaded plugin", "path", path)
	}
	return nil
}

// loadPages reads the page configuration file and registers every page it
// contains with the controller. A missing file is not an error: the
// controller simply starts with no pages configured.
func loadPages(ctl *controller.Controller, path string) error {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Info("page file does not exist, starting with no pages", "path", path)
		return nil
	}
	if err != nil {
		return err
	}

	cfg, err := controller.LoadConfig(raw)
	if err != nil {
		return err
	}
	for _, page := range cfg.Pages {
		ctl.SetPage(page)
	}
	return nil
}

func waitForSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}
