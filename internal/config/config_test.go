package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	vellumerrors "github.com/vellum-ui/vellum/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Cache.MaxEntries != 128 {
		t.Errorf("maxEntries = %d, want 128", cfg.Cache.MaxEntries)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := writeConfig(t, `{
		"name": "demo",
		"server": {"port": 9000},
		"cache": {"ttl": "30s"},
		"logLevel": "debug"
	}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "demo" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("host = %q, default lost on partial config", cfg.Server.Host)
	}
	if got := cfg.CacheTTL(); got != 30*time.Second {
		t.Errorf("ttl = %v, want 30s", got)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	dir := writeConfig(t, `{"server": `)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var verr *vellumerrors.VellumError
	if !stderrors.As(err, &verr) || verr.Code != "E400" {
		t.Errorf("error = %v, want code E400", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"negative max entries", func(c *Config) { c.Cache.MaxEntries = -1 }},
		{"bad ttl", func(c *Config) { c.Cache.TTL = "five minutes" }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr *vellumerrors.VellumError
			if !stderrors.As(err, &verr) || verr.Code != "E401" {
				t.Errorf("error = %v, want code E401", err)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := New()
	cfg.Name = "saved"
	cfg.Server.Port = 9100
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != "saved" || loaded.Server.Port != 9100 {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Path() != path {
		t.Errorf("path = %q, want %q", loaded.Path(), path)
	}
}

func TestDurationFallbacks(t *testing.T) {
	cfg := New()
	cfg.Cache.CleanupInterval = ""
	cfg.Server.ShutdownTimeout = ""

	if got := cfg.CacheCleanupInterval(); got != time.Minute {
		t.Errorf("cleanup interval = %v, want 1m", got)
	}
	if got := cfg.ServerShutdownTimeout(); got != 10*time.Second {
		t.Errorf("shutdown timeout = %v, want 10s", got)
	}
}
