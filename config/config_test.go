package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docc-render.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Addr != ":8080" {
		t.Errorf("Expected addr :8080, got %s", cfg.Addr)
	}
	if cfg.Store != StoreSQLite {
		t.Errorf("Expected sqlite store, got %s", cfg.Store)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := writeConfig(t, `
addr: ":9000"
store: manifest
manifest_path: docs/index.json
watch_manifest: false
fallback_src: /static/missing.svg
max_mounts: 16
shutdown_timeout: 2s
`)
	t.Setenv("DOCC_RENDER_ADDR", "127.0.0.1:9100")
	t.Setenv("DOCC_RENDER_MAX_MOUNTS", "32")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9100" {
		t.Errorf("Expected env addr to win, got %s", cfg.Addr)
	}
	if cfg.Store != StoreManifest || cfg.ManifestPath != "docs/index.json" {
		t.Errorf("Unexpected store settings %+v", cfg)
	}
	if cfg.WatchManifest {
		t.Error("Expected watch_manifest false from file")
	}
	if cfg.FallbackSrc != "/static/missing.svg" {
		t.Errorf("Unexpected fallback src %q", cfg.FallbackSrc)
	}
	if cfg.MaxMounts != 32 {
		t.Errorf("Expected env max mounts 32, got %d", cfg.MaxMounts)
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Errorf("Expected shutdown timeout 2s, got %s", cfg.ShutdownTimeout)
	}
	if cfg.SQLitePath != defaultSQLitePath {
		t.Errorf("Expected untouched default sqlite path, got %s", cfg.SQLitePath)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults from an empty file, got %+v", cfg)
	}
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load(writeConfig(t, "adress: :80\n"))
	if err == nil {
		t.Fatal("Expected unknown field to be rejected")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected missing config file to fail")
	}
}

func TestApplyEnv_Errors(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"DOCC_RENDER_MAX_MOUNTS", "many", "DOCC_RENDER_MAX_MOUNTS must be an integer"},
		{"DOCC_RENDER_SHUTDOWN_TIMEOUT", "soon", "DOCC_RENDER_SHUTDOWN_TIMEOUT must be a valid duration"},
		{"DOCC_RENDER_WATCH_MANIFEST", "maybe", "DOCC_RENDER_WATCH_MANIFEST must be a boolean"},
		{"DOCC_RENDER_ADDR", "", "DOCC_RENDER_ADDR must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := Default()
			err := cfg.ApplyEnv()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestApplyEnv_EmptyFallbackSrcAllowed(t *testing.T) {
	t.Setenv("DOCC_RENDER_FALLBACK_SRC", "")
	cfg := Default()
	cfg.FallbackSrc = "/x.svg"
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.FallbackSrc != "" {
		t.Errorf("Expected fallback src to be cleared, got %q", cfg.FallbackSrc)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"Empty addr", func(c *Config) { c.Addr = "" }, "addr"},
		{"Unknown store", func(c *Config) { c.Store = "redis" }, "store must be one of"},
		{"MySQL without uri", func(c *Config) { c.Store = StoreMySQL }, "mysql_uri"},
		{"Manifest without path", func(c *Config) { c.Store = StoreManifest }, "manifest_path"},
		{"SQLite without path", func(c *Config) { c.SQLitePath = "" }, "sqlite_path"},
		{"Zero mounts", func(c *Config) { c.MaxMounts = 0 }, "max_mounts"},
		{"Zero timeout", func(c *Config) { c.ShutdownTimeout = 0 }, "shutdown_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
