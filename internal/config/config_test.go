package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[server]
port = 9090

[db]
host = "localhost"
port = 5432
user = "pokevault"
database = "pokevault"

[auction]
extend_window_minutes = 3

[session]
secret = "not-a-real-secret"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.DB.Host != "localhost" {
		t.Errorf("DB.Host = %s, want localhost", cfg.DB.Host)
	}
	if got := cfg.Auction.ExtendWindow(); got != 3*time.Minute {
		t.Errorf("ExtendWindow() = %v, want 3m", got)
	}

	// Unset values fall back to defaults.
	if got := cfg.Auction.ExtendBy(); got != 10*time.Minute {
		t.Errorf("ExtendBy() default = %v, want 10m", got)
	}
	if got := cfg.Auction.SweepInterval(); got != 15*time.Second {
		t.Errorf("SweepInterval() default = %v, want 15s", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() succeeded on missing file")
	}
}
