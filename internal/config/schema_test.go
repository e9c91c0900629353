package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/brpctl/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.APIBase != "https://alkitab.sabda.org/api" {
		t.Errorf("APIBase = %q", cfg.Source.APIBase)
	}
	if cfg.Source.Translation != "id" {
		t.Errorf("Translation = %q, want id", cfg.Source.Translation)
	}
	if cfg.Defaults.Profile != "default" {
		t.Errorf("Profile = %q", cfg.Defaults.Profile)
	}
	if cfg.Defaults.UTCOffset != 7 {
		t.Errorf("UTCOffset = %d, want 7", cfg.Defaults.UTCOffset)
	}
	if cfg.Defaults.PrefetchConcurrency != 4 {
		t.Errorf("PrefetchConcurrency = %d, want 4", cfg.Defaults.PrefetchConcurrency)
	}
	if !strings.HasSuffix(cfg.Defaults.CacheDir, filepath.Join("brpctl", "chapters")) {
		t.Errorf("CacheDir = %q", cfg.Defaults.CacheDir)
	}
	if strings.HasPrefix(cfg.Defaults.DBPath, "~") {
		t.Errorf("DBPath not expanded: %q", cfg.Defaults.DBPath)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "pretty" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := `source:
  translation: tb
  timeout: 5s
defaults:
  profile: alice
  cache_dir: ~/bible
  utc_offset: -5
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.Translation != "tb" || cfg.Defaults.Profile != "alice" || cfg.Defaults.UTCOffset != -5 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if got := cfg.Source.TimeoutDuration(); got != 5*time.Second {
		t.Errorf("TimeoutDuration = %v", got)
	}
	home, _ := os.UserHomeDir()
	if cfg.Defaults.CacheDir != filepath.Join(home, "bible") {
		t.Errorf("CacheDir = %q", cfg.Defaults.CacheDir)
	}
	// Untouched keys keep defaults.
	if cfg.Defaults.PrefetchConcurrency != 4 {
		t.Errorf("PrefetchConcurrency = %d", cfg.Defaults.PrefetchConcurrency)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BRPCTL_DEFAULTS_PROFILE", "fromenv")
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Defaults.Profile != "fromenv" {
		t.Errorf("Profile = %q, want fromenv", cfg.Defaults.Profile)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	_ = os.WriteFile(path, []byte("source: [unclosed"), 0644)
	if _, err := config.Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad_InvalidOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	_ = os.WriteFile(path, []byte("defaults:\n  utc_offset: 30\n"), 0644)
	if _, err := config.Load(path); err == nil {
		t.Error("expected error for utc_offset 30")
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(config.EnvPath, "/from/env.yml")
	if got := config.ResolvePath("/explicit.yml"); got != "/explicit.yml" {
		t.Errorf("explicit path = %q", got)
	}
	if got := config.ResolvePath(""); got != "/from/env.yml" {
		t.Errorf("env path = %q", got)
	}
	t.Setenv(config.EnvPath, "")
	if got := config.ResolvePath(""); got != config.DefaultPath() {
		t.Errorf("default path = %q", got)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yml")
	cfg := config.Defaults()
	cfg.Defaults.Profile = "bob"
	cfg.Source.Version = "tb"
	if err := config.Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "api_base:") || !strings.Contains(string(data), "  profile: bob") {
		t.Errorf("unexpected file:\n%s", data)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Defaults.Profile != "bob" || got.Source.Version != "tb" {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestTimeoutDuration_Fallback(t *testing.T) {
	for _, s := range []string{"", "soon", "-1s"} {
		if got := (config.SourceConfig{Timeout: s}).TimeoutDuration(); got != 30*time.Second {
			t.Errorf("TimeoutDuration(%q) = %v", s, got)
		}
	}
}
