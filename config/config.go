// Package config loads the sidecar settings: built-in defaults, then an
// optional YAML file, then BROOD_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/nstehr/brood/world"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "BROOD_"

type Config struct {
	// Socket is the unix socket the bridge connects to. Empty disables it.
	Socket string `yaml:"socket" env:"SOCKET"`
	// WSAddr is a host:port for the websocket listener. Empty disables it.
	WSAddr   string `yaml:"ws_addr" env:"WS_ADDR"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// JournalDir receives one compressed decision journal per match.
	JournalDir string `yaml:"journal_dir" env:"JOURNAL_DIR"`
	// StorePath is the SQLite match history. Empty disables it.
	StorePath string `yaml:"store_path" env:"STORE_PATH"`

	Thresholds world.Thresholds `yaml:"thresholds" envPrefix:"THRESHOLD_"`

	// Gates maps command names to extra expr conditions. YAML only: the
	// expressions do not survive a flat env var.
	Gates    map[string]string `yaml:"gates"`
	Disabled []string          `yaml:"disabled" env:"DISABLED" envSeparator:","`

	Bridge Bridge `yaml:"bridge" envPrefix:"BRIDGE_"`
}

// Bridge describes the game-side process brood starts and stops. An empty
// Command means the bridge is run by someone else.
type Bridge struct {
	Command string        `yaml:"command" env:"COMMAND"`
	Args    []string      `yaml:"args" env:"ARGS" envSeparator:" "`
	Grace   time.Duration `yaml:"grace" env:"GRACE"`
}

func Default() Config {
	return Config{
		Socket:     "/tmp/brood.sock",
		LogLevel:   "info",
		Thresholds: world.DefaultThresholds(),
		Bridge:     Bridge{Grace: 5 * time.Second},
	}
}

// Load reads path (if non-empty) over the defaults, applies the environment
// and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate fixes up what has a sane default and rejects what does not.
func (c *Config) Validate() error {
	c.Thresholds.Validate()
	if c.Bridge.Grace <= 0 {
		c.Bridge.Grace = Default().Bridge.Grace
	}
	if c.Socket == "" && c.WSAddr == "" {
		return fmt.Errorf("no listener: set socket or ws_addr")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return l, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
