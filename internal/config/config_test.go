package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Repo != DefaultRepo {
		t.Errorf("Repo = %q, want %q", cfg.Repo, DefaultRepo)
	}
	if cfg.Ref != "HEAD" {
		t.Errorf("Ref = %q, want HEAD", cfg.Ref)
	}
	if cfg.Jobs != DefaultJobs {
		t.Errorf("Jobs = %d, want %d", cfg.Jobs, DefaultJobs)
	}
	if cfg.Python != "python3" {
		t.Errorf("Python = %q, want python3", cfg.Python)
	}
	if cfg.Prefix != "" {
		t.Errorf("Prefix = %q, want empty (system default)", cfg.Prefix)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadNoFile(t *testing.T) {
	cfg, err := Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Repo != DefaultRepo {
		t.Errorf("Repo = %q, want default", cfg.Repo)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `repo = "https://example.org/fork/pyHealpix.git"
jobs = 8
prefix = "/opt/pyhealpix"
timeout = "30m"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(LoadOptions{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Repo != "https://example.org/fork/pyHealpix.git" {
		t.Errorf("Repo = %q", cfg.Repo)
	}
	if cfg.Jobs != 8 {
		t.Errorf("Jobs = %d, want 8", cfg.Jobs)
	}
	if cfg.Prefix != "/opt/pyhealpix" {
		t.Errorf("Prefix = %q", cfg.Prefix)
	}
	if cfg.Timeout != 30*time.Minute {
		t.Errorf("Timeout = %v, want 30m", cfg.Timeout)
	}
	// Unset keys keep their defaults.
	if cfg.Python != "python3" {
		t.Errorf("Python = %q, want python3", cfg.Python)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("jobs = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEPBOOT_JOBS", "6")

	cfg, err := Load(LoadOptions{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Jobs != 6 {
		t.Errorf("Jobs = %d, want env override 6", cfg.Jobs)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("jobs = [broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(LoadOptions{ConfigFile: path}); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty repo", func(c *Config) { c.Repo = "" }},
		{"zero jobs", func(c *Config) { c.Jobs = 0 }},
		{"negative jobs", func(c *Config) { c.Jobs = -1 }},
		{"empty work root", func(c *Config) { c.WorkRoot = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
