package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	wisherror "github.com/msto63/wishbrick/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "2s", 2 * time.Second, false},
		{"milliseconds", "250ms", 250 * time.Millisecond, false},
		{"complex", "1m30s", 90 * time.Second, false},
		{"invalid", "soon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	ports := map[string]int{
		WorkerSort:   5555,
		WorkerFilter: 5556,
		WorkerSearch: 5557,
		WorkerTotals: 5558,
	}
	for name, want := range ports {
		if got := cfg.Worker(name).Port; got != want {
			t.Errorf("%s port = %d, want %d", name, got, want)
		}
	}
	if cfg.Client.Pause.Duration != time.Second {
		t.Errorf("Client.Pause = %v, want 1s", cfg.Client.Pause.Duration)
	}
	if cfg.Client.EmptyPause.Duration != 2*time.Second {
		t.Errorf("Client.EmptyPause = %v, want 2s", cfg.Client.EmptyPause.Duration)
	}
	if cfg.Client.CallTimeout.Duration != 0 {
		t.Errorf("Client.CallTimeout = %v, want 0 (block)", cfg.Client.CallTimeout.Duration)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("Store.Driver = %q, want memory", cfg.Store.Driver)
	}
	if cfg.Search.SearchURL != "https://www.google.com/search?q=" {
		t.Errorf("Search.SearchURL = %q", cfg.Search.SearchURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[general]
log_level = "debug"

[client]
pause = "100ms"
fail_fast = true

[store]
driver = "sqlite"

[filter]
port = 6556

[search]
host = "127.0.0.1"
search_url = "https://example.test/?q="
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.General.LogLevel)
	}
	if cfg.Client.Pause.Duration != 100*time.Millisecond {
		t.Errorf("Pause = %v, want 100ms", cfg.Client.Pause.Duration)
	}
	if !cfg.Client.FailFast {
		t.Error("FailFast = false, want true")
	}
	if cfg.Store.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", cfg.Store.Driver)
	}
	if got := cfg.GetServiceAddress(WorkerFilter); got != "localhost:6556" {
		t.Errorf("filter address = %q, want localhost:6556", got)
	}
	if got := cfg.ListenAddress(WorkerSearch); got != "127.0.0.1:5557" {
		t.Errorf("search listen address = %q, want 127.0.0.1:5557", got)
	}
	if cfg.Search.SearchURL != "https://example.test/?q=" {
		t.Errorf("SearchURL = %q", cfg.Search.SearchURL)
	}
	// untouched sections still get defaults
	if cfg.Client.EmptyPause.Duration != 2*time.Second {
		t.Errorf("EmptyPause = %v, want 2s", cfg.Client.EmptyPause.Duration)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
client:
  empty_pause: 500ms
totals:
  address: totals.internal:7000
search:
  port: 7557
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Client.EmptyPause.Duration != 500*time.Millisecond {
		t.Errorf("EmptyPause = %v, want 500ms", cfg.Client.EmptyPause.Duration)
	}
	if got := cfg.GetServiceAddress(WorkerTotals); got != "totals.internal:7000" {
		t.Errorf("totals address = %q, want totals.internal:7000", got)
	}
	if cfg.Search.Port != 7557 {
		t.Errorf("search port = %d, want 7557", cfg.Search.Port)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); !wisherror.HasCode(err, wisherror.CodeConfigError) {
		t.Errorf("Load(missing) error = %v, want CONFIG_ERROR", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[client\npause ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !wisherror.HasCode(err, wisherror.CodeConfigError) {
		t.Errorf("Load(bad) error = %v, want CONFIG_ERROR", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("WISH_SORT_PORT", "6000")
	t.Setenv("WISH_FILTER_HOST", "filter.local")
	t.Setenv("WISH_TOTALS_ADDR", "10.0.0.5:9000")
	t.Setenv("WISH_STORE_DRIVER", "sqlite")
	t.Setenv("WISH_LOG_LEVEL", "warn")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"sort", cfg.GetServiceAddress(WorkerSort), "localhost:6000"},
		{"filter", cfg.GetServiceAddress(WorkerFilter), "filter.local:5556"},
		{"totals", cfg.GetServiceAddress(WorkerTotals), "10.0.0.5:9000"},
		{"driver", cfg.Store.Driver, "sqlite"},
		{"log level", cfg.General.LogLevel, "warn"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}

	t.Setenv("WISH_SEARCH_PORT", "abc")
	if err := Default().ApplyEnv(); !wisherror.HasCode(err, wisherror.CodeConfigError) {
		t.Errorf("ApplyEnv(bad port) error = %v, want CONFIG_ERROR", err)
	}
}

func TestLoadFromEnvWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WISH_CONFIG", "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.GetServiceAddress(WorkerSearch) != "localhost:5557" {
		t.Errorf("search address = %q, want defaults", cfg.GetServiceAddress(WorkerSearch))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Sort.Port = 0 }},
		{"port too high", func(c *Config) { c.Totals.Port = 70000 }},
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }},
		{"negative pause", func(c *Config) { c.Client.Pause.Duration = -time.Second }},
		{"empty search url", func(c *Config) { c.Search.SearchURL = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestWorkerUnknown(t *testing.T) {
	cfg := Default()
	if cfg.Worker("bayes") != nil {
		t.Error("Worker(unknown) != nil")
	}
	if cfg.GetServiceAddress("bayes") != "" {
		t.Error("GetServiceAddress(unknown) != empty")
	}
}
