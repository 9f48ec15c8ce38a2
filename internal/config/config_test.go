package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "moonglow.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.MaxEventRangeDays != DefaultMaxEventRangeDays {
		t.Errorf("MaxEventRangeDays = %d, want %d", cfg.Server.MaxEventRangeDays, DefaultMaxEventRangeDays)
	}
	if cfg.Watch.Schedule != DefaultSchedule {
		t.Errorf("Schedule = %q, want %q", cfg.Watch.Schedule, DefaultSchedule)
	}
	if cfg.Watch.Timezone != DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", cfg.Watch.Timezone, DefaultTimezone)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  cors_allowed_origins:
    - https://example.com
watch:
  schedule: "*/15 * * * *"
output:
  json: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 1 || cfg.Server.CORSAllowedOrigins[0] != "https://example.com" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.Server.CORSAllowedOrigins)
	}
	if cfg.Watch.Schedule != "*/15 * * * *" {
		t.Errorf("Schedule = %q", cfg.Watch.Schedule)
	}
	// Not set in the file, so the default fills in.
	if cfg.Watch.Timezone != DefaultTimezone {
		t.Errorf("Timezone = %q, want default", cfg.Watch.Timezone)
	}
	if !cfg.Output.JSON {
		t.Error("Output.JSON = false, want true")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("PORT", "7070")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MOONGLOW_SCHEDULE", "@every 10m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Port = %d, want 7070 from env", cfg.Server.Port)
	}
	if got := strings.Join(cfg.Server.CORSAllowedOrigins, "|"); got != "https://a.example|https://b.example" {
		t.Errorf("CORSAllowedOrigins = %q", got)
	}
	if cfg.Watch.Schedule != "@every 10m" {
		t.Errorf("Schedule = %q", cfg.Watch.Schedule)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: expected error")
	}

	bad := writeConfig(t, "server: [not, a, map")
	if _, err := Load(bad); err == nil {
		t.Error("malformed YAML: expected error")
	}

	t.Setenv("PORT", "eighty")
	if _, err := Load(""); err == nil {
		t.Error("non-numeric PORT: expected error")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 70000
	cfg.Watch.Schedule = "every now and then"
	cfg.Watch.Timezone = "Mars/Olympus_Mons"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"server.port", "watch.schedule", "watch.timezone"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
