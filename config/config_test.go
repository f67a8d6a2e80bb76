package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000/api/v1" {
		t.Errorf("unexpected base url: %q", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.Timeout)
	}
	if cfg.RequestsPerSecond != 10 || cfg.Burst != 20 {
		t.Errorf("unexpected limiter defaults: %v rps, burst %d", cfg.RequestsPerSecond, cfg.Burst)
	}
	if cfg.CookieFile != ".videotube-cookies.json" {
		t.Errorf("unexpected cookie file default: %q", cfg.CookieFile)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("VIDEOTUBE_BASE_URL", "https://tube.example/api/v1")
	t.Setenv("VIDEOTUBE_TIMEOUT", "5s")
	t.Setenv("VIDEOTUBE_RPS", "2.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://tube.example/api/v1" {
		t.Errorf("unexpected base url: %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.Timeout)
	}
	if cfg.RequestsPerSecond != 2.5 {
		t.Errorf("unexpected rps: %v", cfg.RequestsPerSecond)
	}
}

func TestLoadRejectsMalformedValue(t *testing.T) {
	t.Setenv("VIDEOTUBE_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}
