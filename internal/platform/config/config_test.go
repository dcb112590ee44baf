package config

import (
	"os"
	"path/filepath"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envMap(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr() != ":8080" || cfg.AppName != DefaultAppName || cfg.Timezone.String() != "UTC" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.UpstreamRate != DefaultUpstreamRate || cfg.AllowAllCapabilities {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"port":"9090","bolt_path":"/tmp/file.db","log_level":"debug","allow_all_capabilities":true,"upstream_rate":2}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := load(envMap(map[string]string{
		EnvConfigFile: path,
		"BOLT_PATH":   "/tmp/env.db",
		"TIMEZONE":    "America/Argentina/Buenos_Aires",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" || cfg.LogLevel != "debug" || !cfg.AllowAllCapabilities || cfg.UpstreamRate != 2 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.BoltPath != "/tmp/env.db" {
		t.Errorf("env must override file, got %q", cfg.BoltPath)
	}
	if cfg.Timezone.String() != "America/Argentina/Buenos_Aires" {
		t.Errorf("timezone: got %s", cfg.Timezone)
	}
	if cfg.ConfigPath != path {
		t.Errorf("config path: got %q", cfg.ConfigPath)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []map[string]string{
		{"TIMEZONE": "Mars/Olympus"},
		{"UPSTREAM_RATE": "-1"},
		{"ALLOW_ALL_CAPABILITIES": "maybe"},
		{EnvConfigFile: "/does/not/exist.json"},
	}
	for _, env := range cases {
		if _, err := load(envMap(env)); err == nil {
			t.Errorf("expected error for %v", env)
		}
	}
}

func TestClockUsesTimezone(t *testing.T) {
	cfg, err := load(envMap(map[string]string{"TIMEZONE": "Europe/Madrid"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Clock()().Location().String(); got != "Europe/Madrid" {
		t.Fatalf("clock location: got %s", got)
	}
}
