package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "brood.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Socket != "/tmp/brood.sock" || cfg.Thresholds.ProxyRadius != 75 || cfg.Bridge.Grace != 5*time.Second {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadLayers(t *testing.T) {
	p := writeFile(t, `
ws_addr: ":8765"
log_level: debug
thresholds:
  proxy_radius: 60
  floating_after: -1
gates:
  build-spire: "Time > 600"
disabled: [drone-scout]
bridge:
  command: /usr/bin/bridge
  args: ["--realtime"]
`)
	t.Setenv("BROOD_THRESHOLD_AIR_THREAT_RADIUS", "40")
	t.Setenv("BROOD_DISABLED", "overlord,drone-scout")
	t.Setenv("BROOD_BRIDGE_GRACE", "2s")

	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"yaml value", cfg.WSAddr, ":8765"},
		{"yaml threshold", cfg.Thresholds.ProxyRadius, 60.0},
		{"invalid threshold reset", cfg.Thresholds.FloatingAfter, 300.0},
		{"env threshold", cfg.Thresholds.AirThreatRadius, 40.0},
		{"untouched default", cfg.Thresholds.GroundThreatRadius, 20.0},
		{"gate", cfg.Gates["build-spire"], "Time > 600"},
		{"bridge command", cfg.Bridge.Command, "/usr/bin/bridge"},
		{"env duration", cfg.Bridge.Grace, 2 * time.Second},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}
	if !slices.Equal(cfg.Disabled, []string{"overlord", "drone-scout"}) {
		t.Errorf("env should replace the yaml list, got %v", cfg.Disabled)
	}
	if l, _ := cfg.Level(); l != slog.LevelDebug {
		t.Errorf("level = %v", l)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{"bad yaml", "socket: [", nil},
		{"bad level", "log_level: chatty", nil},
		{"no listener", "socket: \"\"", nil},
		{"bad env", "", map[string]string{"BROOD_THRESHOLD_PROXY_RADIUS": "far"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(writeFile(t, tc.body)); err == nil {
				t.Error("expected an error")
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
