// Package config loads the server settings: built-in defaults, then an
// optional YAML file, then DOCC_RENDER_* environment variables. Command line
// flags are applied last by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreSQLite   = "sqlite"
	StoreMySQL    = "mysql"
	StoreManifest = "manifest"

	envPrefix = "DOCC_RENDER_"

	defaultAddr            = ":8080"
	defaultSQLitePath      = ".data/assets.db"
	defaultMaxMounts       = 4096
	defaultShutdownTimeout = 5 * time.Second
	maximumMounts          = 1 << 20
)

type Config struct {
	Addr            string        `yaml:"addr"`
	Store           string        `yaml:"store"`
	MySQLURI        string        `yaml:"mysql_uri"`
	SQLitePath      string        `yaml:"sqlite_path"`
	ManifestPath    string        `yaml:"manifest_path"`
	WatchManifest   bool          `yaml:"watch_manifest"`
	FallbackSrc     string        `yaml:"fallback_src"`
	MaxMounts       int           `yaml:"max_mounts"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func Default() Config {
	return Config{
		Addr:            defaultAddr,
		Store:           StoreSQLite,
		SQLitePath:      defaultSQLitePath,
		WatchManifest:   true,
		MaxMounts:       defaultMaxMounts,
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is not empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from DOCC_RENDER_* variables that are set.
func (c *Config) ApplyEnv() error {
	var err error
	if c.Addr, err = readString("ADDR", c.Addr); err != nil {
		return err
	}
	if c.Store, err = readString("STORE", c.Store); err != nil {
		return err
	}
	if c.MySQLURI, err = readString("MYSQL_URI", c.MySQLURI); err != nil {
		return err
	}
	if c.SQLitePath, err = readString("SQLITE_PATH", c.SQLitePath); err != nil {
		return err
	}
	if c.ManifestPath, err = readString("MANIFEST_PATH", c.ManifestPath); err != nil {
		return err
	}
	if c.WatchManifest, err = readBool("WATCH_MANIFEST", c.WatchManifest); err != nil {
		return err
	}
	// An empty fallback src is meaningful: the fallback image has no src.
	if v, ok := os.LookupEnv(envPrefix + "FALLBACK_SRC"); ok {
		c.FallbackSrc = v
	}
	if c.MaxMounts, err = readInt("MAX_MOUNTS", c.MaxMounts); err != nil {
		return err
	}
	if c.ShutdownTimeout, err = readDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	switch c.Store {
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for store %q", c.Store)
		}
	case StoreMySQL:
		if c.MySQLURI == "" {
			return fmt.Errorf("mysql_uri is required for store %q", c.Store)
		}
	case StoreManifest:
		if c.ManifestPath == "" {
			return fmt.Errorf("manifest_path is required for store %q", c.Store)
		}
	default:
		return fmt.Errorf("store must be one of %s, %s, %s; got %q", StoreSQLite, StoreMySQL, StoreManifest, c.Store)
	}
	if c.MaxMounts < 1 || c.MaxMounts > maximumMounts {
		return fmt.Errorf("max_mounts must be between 1 and %d", maximumMounts)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be greater than 0")
	}
	return nil
}

func readString(key, fallback string) (string, error) {
	raw, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return fallback, nil
	}
	if raw == "" {
		return "", fmt.Errorf("%s%s must not be empty", envPrefix, key)
	}
	return raw, nil
}

func readBool(key string, fallback bool) (bool, error) {
	raw, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s%s must be a boolean: %w", envPrefix, key, err)
	}
	return parsed, nil
}

func readInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s%s must be an integer: %w", envPrefix, key, err)
	}
	return parsed, nil
}

func readDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s%s must be a valid duration: %w", envPrefix, key, err)
	}
	return parsed, nil
}
