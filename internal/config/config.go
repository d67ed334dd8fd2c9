// Package config loads PlantCare's runtime configuration.
//
// Configuration lives in a YAML file (default ~/.plantcare/config.yaml).
// A missing file is not an error: defaults apply. Environment variables
// override file values so containers can configure the server without
// mounting a file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/plantcare/internal/kvstore"
	"github.com/HendryAvila/plantcare/internal/plants"
	"github.com/HendryAvila/plantcare/internal/telemetry"
)

// Environment overrides.
const (
	EnvDataDir       = "PLANTCARE_DATA_DIR"
	EnvStorageDriver = "PLANTCARE_STORAGE_DRIVER"
	EnvStorageDSN    = "PLANTCARE_STORAGE_DSN"
	EnvNATSURL       = "PLANTCARE_NATS_URL"
	EnvNATSSubject   = "PLANTCARE_NATS_SUBJECT"
)

// ConfigFile is the default config filename inside the data directory.
const ConfigFile = "config.yaml"

// Config is the root configuration.
type Config struct {
	DataDir   string          `yaml:"data_dir"`
	Storage   StorageConfig   `yaml:"storage"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Chat      ChatConfig      `yaml:"chat"`
}

// StorageConfig selects the KV backend for the plant registry.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn,omitempty"`
	Key    string `yaml:"key"`
}

// TelemetryConfig points at the sensor channel. An empty NATSURL disables
// the subscription; snapshots can still be pushed via the sensor_update tool.
type TelemetryConfig struct {
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject"`
}

// ChatConfig bounds conversational input.
type ChatConfig struct {
	MaxInputLength int `yaml:"max_input_length"`
}

// DefaultDataDir returns ~/.plantcare.
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".plantcare")
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DataDir: DefaultDataDir(),
		Storage: StorageConfig{
			Driver: kvstore.DriverSQLite,
			Key:    plants.StorageKey,
		},
		Telemetry: TelemetryConfig{
			Subject: telemetry.DefaultSubject,
		},
		Chat: ChatConfig{
			MaxInputLength: 500,
		},
	}
}

// DefaultPath returns the config file path inside the default data dir.
func DefaultPath() string {
	return filepath.Join(DefaultDataDir(), ConfigFile)
}

// Load reads path over the defaults, applies env overrides and validates.
// An empty path means DefaultPath().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.Getenv)
	cfg.DataDir = expandHome(cfg.DataDir)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := getenv(EnvStorageDriver); v != "" {
		c.Storage.Driver = v
	}
	if v := getenv(EnvStorageDSN); v != "" {
		c.Storage.DSN = v
	}
	if v := getenv(EnvNATSURL); v != "" {
		c.Telemetry.NATSURL = v
	}
	if v := getenv(EnvNATSSubject); v != "" {
		c.Telemetry.Subject = v
	}
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case kvstore.DriverSQLite:
		if c.DataDir == "" {
			return errors.New("config: data_dir is required for the sqlite driver")
		}
	case kvstore.DriverPostgres:
		if c.Storage.DSN == "" {
			return errors.New("config: storage.dsn is required for the postgres driver")
		}
	case kvstore.DriverMemory:
	default:
		return fmt.Errorf("config: invalid storage driver %q: must be one of: sqlite, postgres, memory", c.Storage.Driver)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return errors.New("config: storage.key must not be empty")
	}
	if c.Telemetry.NATSURL != "" && strings.TrimSpace(c.Telemetry.Subject) == "" {
		return errors.New("config: telemetry.subject must not be empty when nats_url is set")
	}
	if c.Chat.MaxInputLength < 1 {
		return errors.New("config: chat.max_input_length must be at least 1")
	}
	return nil
}

// StoreOptions converts the storage section for kvstore.Open.
func (c Config) StoreOptions() kvstore.Options {
	return kvstore.Options{
		Driver:  c.Storage.Driver,
		DataDir: c.DataDir,
		DSN:     c.Storage.DSN,
	}
}

// Save writes the configuration as YAML, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
