package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// hostConfig holds the host process's own settings: which serial port to
// use (or auto-detect), where to find plugin shared libraries and the
// page config file, and how long request/reply calls wait before timing
// out.
type hostConfig struct {
	SerialPort string        `envconfig:"SERIAL_PORT"`
	PluginDir  string        `envconfig:"PLUGIN_DIR" default:"./plugins"`
	PageFile   string        `envconfig:"PAGE_FILE" default:"./pages.json"`
	StartPage  string        `envconfig:"START_PAGE" default:"home"`
	RPCTimeout time.Duration `envconfig:"RPC_TIMEOUT" default:"2s"`
}

// loadHostConfig reads a .env file (if present) then populates hostConfig
// from environment variables. A missing .env is not an error; malformed
// values are fatal, matching the env-config pattern's own precedent.
func loadHostConfig() *hostConfig {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment and defaults")
	}

	cfg := &hostConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		slog.Error("invalid host configuration", "err", err)
		os.Exit(1)
	}
	return cfg
}
