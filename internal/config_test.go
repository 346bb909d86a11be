package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
currency: SEK
store:
  backend: sqlite
  path: /tmp/subs.db
  key: mine
  format: yaml
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Currency != "SEK" {
		t.Errorf("Currency = %q", cfg.Currency)
	}
	want := StoreConfig{Backend: "sqlite", Path: "/tmp/subs.db", Key: "mine", Format: "yaml"}
	if cfg.Store != want {
		t.Errorf("Store = %+v, want %+v", cfg.Store, want)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Backend != "file" || cfg.Store.Key != DefaultStorageKey || cfg.Store.Format != "json" {
		t.Errorf("unexpected defaults: %+v", cfg.Store)
	}
	if cfg.Store.Path == "" {
		t.Error("expected a default path")
	}
}

func TestLoadConfig_SQLiteDefaultPath(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "store:\n  backend: sqlite\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(cfg.Store.Path, "subscriptions.db") {
		t.Errorf("sqlite default path = %q", cfg.Store.Path)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "store: [unclosed"},
		{"unknown backend", "store:\n  backend: redis\n"},
		{"unknown format", "store:\n  format: toml\n"},
		{"key with slash", "store:\n  key: a/b\n"},
		{"bad locale", "locale: \"not a locale!\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfigOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should give defaults, got %v", err)
	}
	if cfg.Store.Backend != "file" {
		t.Errorf("Backend = %q", cfg.Store.Backend)
	}
}

func TestApplyStoreArg(t *testing.T) {
	tests := []struct {
		name        string
		arg         string
		wantBackend string
		wantPath    string
	}{
		{"empty keeps config", "", "file", "/configured"},
		{"bare path keeps backend", "/other", "file", "/other"},
		{"sqlite prefix", "sqlite:/x/subs.db", "sqlite", "/x/subs.db"},
		{"memory", "memory:", "memory", "-"}, // default path, not checked
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Store: StoreConfig{Backend: "file", Path: "/configured", Key: "k", Format: "json"}}
			cfg.ApplyStoreArg(tt.arg)
			if cfg.Store.Backend != tt.wantBackend {
				t.Errorf("Backend = %q, want %q", cfg.Store.Backend, tt.wantBackend)
			}
			if tt.wantPath != "-" && cfg.Store.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", cfg.Store.Path, tt.wantPath)
			}
		})
	}
}

func TestConfigSave_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "config.yaml")
	cfg := &Config{Currency: "EUR", Store: StoreConfig{Backend: "sqlite", Path: "/x.db"}}
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Currency != "EUR" || loaded.Store.Backend != "sqlite" || loaded.Store.Path != "/x.db" {
		t.Errorf("reloaded config = %+v", loaded)
	}
}
