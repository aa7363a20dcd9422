package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	// Isolated viper instance: no user/project files, no env.
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}

	if cfg.VW.Command != DefaultCommand {
		t.Errorf("expected default command %q, got %q", DefaultCommand, cfg.VW.Command)
	}
	if cfg.VW.TimeoutSeconds != 5 {
		t.Errorf("expected default timeout 5s, got %d", cfg.VW.TimeoutSeconds)
	}
	if !cfg.VW.Escape {
		t.Error("expected escaping on by default")
	}
	if cfg.VW.EchoLines != 0 {
		t.Errorf("expected no echo by default, got %d", cfg.VW.EchoLines)
	}
	if !cfg.History.Enabled || cfg.History.Path != "wabbit.db" {
		t.Errorf("unexpected history defaults: %+v", cfg.History)
	}
	if cfg.Teach.RatePerSecond != 0 {
		t.Errorf("expected unlimited teach rate, got %g", cfg.Teach.RatePerSecond)
	}

	if cfg.VW.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", cfg.VW.Timeout())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"empty command", func(c *Config) { c.VW.Command = "  " }, true},
		{"negative timeout", func(c *Config) { c.VW.TimeoutSeconds = -1 }, true},
		{"zero timeout is valid (fallback applies)", func(c *Config) { c.VW.TimeoutSeconds = 0 }, false},
		{"negative echo lines", func(c *Config) { c.VW.EchoLines = -1 }, true},
		{"negative rate", func(c *Config) { c.Teach.RatePerSecond = -0.5 }, true},
		{"zero rate is valid (unlimited)", func(c *Config) { c.Teach.RatePerSecond = 0 }, false},
		{"enabled history needs a path", func(c *Config) { c.History.Path = "" }, true},
		{"disabled history allows empty path", func(c *Config) { c.History.Enabled = false; c.History.Path = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := `[vw]
command = "vw --quiet -p /dev/stdout"
timeout_seconds = 30
echo_lines = 1

[teach]
rate_per_second = 2.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}

	if cfg.VW.Command != "vw --quiet -p /dev/stdout" {
		t.Errorf("command not loaded: %q", cfg.VW.Command)
	}
	if cfg.VW.TimeoutSeconds != 30 || cfg.VW.EchoLines != 1 {
		t.Errorf("vw section not loaded: %+v", cfg.VW)
	}
	if cfg.Teach.RatePerSecond != 2.5 {
		t.Errorf("teach section not loaded: %+v", cfg.Teach)
	}
	// Keys the file omits keep their defaults.
	if cfg.History.Path != "wabbit.db" {
		t.Errorf("expected default history path, got %q", cfg.History.Path)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", FileName)

	cfg := Default()
	cfg.VW.Command = "vw --loss_function logistic -p /dev/stdout --quiet"
	cfg.VW.EchoLines = 1
	cfg.Teach.RatePerSecond = 10

	if err := Write(cfg, path); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}
	if loaded.VW.Command != cfg.VW.Command {
		t.Errorf("command did not round-trip: %q", loaded.VW.Command)
	}
	if loaded.VW.EchoLines != 1 || loaded.Teach.RatePerSecond != 10 {
		t.Errorf("values did not round-trip: %+v", loaded)
	}
}

func TestWriteBacksUpExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	if err := Write(Default(), path); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	cfg.VW.EchoLines = 1
	if err := Write(cfg, path); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path + ".back"); err != nil {
		t.Errorf("expected backup file: %v", err)
	}
}

func TestWriteDefaultRefusesClobber(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() failed: %v", err)
	}
	if err := WriteDefault(path); err == nil {
		t.Fatal("expected error overwriting existing config")
	}
}

func TestWatcherDeliversReload(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping debounce wait in short mode")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := Write(Default(), path); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Stop()

	reloaded := make(chan *Config, 1)
	w.OnReload(func(cfg *Config) error {
		select {
		case reloaded <- cfg:
		default:
		}
		return nil
	})
	w.Start()

	cfg := Default()
	cfg.Teach.RatePerSecond = 7
	if err := Write(cfg, path); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-reloaded:
		if got.Teach.RatePerSecond != 7 {
			t.Errorf("reloaded rate = %g, want 7", got.Teach.RatePerSecond)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("reload callback never fired")
	}
}
