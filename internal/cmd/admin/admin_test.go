package admin

import (
	"context"
	"flag"
	"io"
	"testing"
	"time"

	"github.com/louisbranch/adminpanel/internal/platform/timeouts"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != defaultHTTPAddr {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("expected default api base url, got %q", cfg.APIBaseURL)
	}
	if cfg.MapsAPIKey != "" {
		t.Fatalf("expected no maps key, got %q", cfg.MapsAPIKey)
	}
	if cfg.ReplayInterval != timeouts.ReplayInterval {
		t.Fatalf("expected default replay interval, got %v", cfg.ReplayInterval)
	}
	if cfg.RequestTimeout != timeouts.APIRequest {
		t.Fatalf("expected default request timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.HealthAddr != "" {
		t.Fatalf("expected health endpoint disabled, got %q", cfg.HealthAddr)
	}
	if !cfg.StrictForms {
		t.Fatal("expected strict forms by default")
	}
	if cfg.SessionTTL != defaultSessionTTL {
		t.Fatalf("expected default session ttl, got %v", cfg.SessionTTL)
	}
	if cfg.Probe {
		t.Fatal("expected probe off by default")
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("ADMINPANEL_ADDR", "env-admin")
	t.Setenv("ADMINPANEL_API_BASE_URL", "https://api.example.com")
	t.Setenv("ADMINPANEL_MAPS_API_KEY", "maps-key")
	t.Setenv("ADMINPANEL_REPLAY_INTERVAL", "250ms")
	t.Setenv("ADMINPANEL_REQUEST_TIMEOUT", "3s")
	t.Setenv("ADMINPANEL_HEALTH_ADDR", "localhost:9090")
	t.Setenv("ADMINPANEL_STRICT_FORMS", "false")
	t.Setenv("ADMINPANEL_SESSION_TTL", "30m")

	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	want := Config{
		HTTPAddr:       "env-admin",
		APIBaseURL:     "https://api.example.com",
		MapsAPIKey:     "maps-key",
		ReplayInterval: 250 * time.Millisecond,
		RequestTimeout: 3 * time.Second,
		HealthAddr:     "localhost:9090",
		StrictForms:    false,
		SessionTTL:     30 * time.Minute,
	}
	if cfg != want {
		t.Fatalf("config = %+v, want %+v", cfg, want)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("ADMINPANEL_ADDR", "env-admin")
	t.Setenv("ADMINPANEL_STRICT_FORMS", "true")

	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	args := []string{"-http-addr", "flag-admin", "-strict-forms=false", "-replay-interval", "2s", "-probe"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-admin" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.StrictForms {
		t.Fatal("expected parity mode from flag")
	}
	if cfg.ReplayInterval != 2*time.Second {
		t.Fatalf("expected flag replay interval, got %v", cfg.ReplayInterval)
	}
	if !cfg.Probe {
		t.Fatal("expected probe from flag")
	}
}

func TestParseConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "bad duration env", env: map[string]string{"ADMINPANEL_REPLAY_INTERVAL": "soon"}},
		{name: "bad bool env", env: map[string]string{"ADMINPANEL_STRICT_FORMS": "maybe"}},
		{name: "bad timeout env", env: map[string]string{"ADMINPANEL_REQUEST_TIMEOUT": "1x"}},
		{name: "non-positive interval flag", args: []string{"-replay-interval", "0s"}},
		{name: "unknown flag", args: []string{"-nope"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			fs := flag.NewFlagSet("admin", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			if _, err := ParseConfig(fs, tc.args); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRunProbeRequiresHealthAddr(t *testing.T) {
	if err := Run(context.Background(), Config{Probe: true}); err == nil {
		t.Fatal("expected error without health address")
	}
}

func TestRunRejectsInvalidAPIBaseURL(t *testing.T) {
	t.Setenv("ADMINPANEL_DB_PATH", t.TempDir()+"/admin.db")
	err := Run(context.Background(), Config{HTTPAddr: "127.0.0.1:0", APIBaseURL: "not a url"})
	if err == nil {
		t.Fatal("expected error for invalid api base url")
	}
}
