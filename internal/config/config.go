package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const appName = "accountnote"

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageJSON   = "json"
)

// Secret backends.
const (
	SecretsPlain   = "plain"
	SecretsKeyring = "keyring"
)

// Config holds all accountnote configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Secrets SecretsConfig `toml:"secrets"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
}

// StorageConfig selects where the account collection is persisted.
type StorageConfig struct {
	Backend string `toml:"backend"`
	// Path overrides the default file under DataDir.
	Path string `toml:"path"`
}

// SecretsConfig selects where passwords are kept. "plain" stores them with
// the rest of the account; "keyring" moves them to the OS keyring.
type SecretsConfig struct {
	Backend string `toml:"backend"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// UIConfig holds display settings.
type UIConfig struct {
	ShowPasswords bool `toml:"show_passwords"`
}

func defaults() Config {
	return Config{
		Storage: StorageConfig{Backend: StorageSQLite},
		Secrets: SecretsConfig{Backend: SecretsPlain},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load reads config from path. If path is empty, returns defaults.
// ACCOUNTNOTE_STORAGE and ACCOUNTNOTE_LOG_LEVEL override the file.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if v := os.Getenv("ACCOUNTNOTE_STORAGE"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("ACCOUNTNOTE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown backends.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageSQLite, StorageJSON:
	default:
		return fmt.Errorf("invalid storage backend %q (use %s or %s)", c.Storage.Backend, StorageSQLite, StorageJSON)
	}
	switch c.Secrets.Backend {
	case SecretsPlain, SecretsKeyring:
	default:
		return fmt.Errorf("invalid secrets backend %q (use %s or %s)", c.Secrets.Backend, SecretsPlain, SecretsKeyring)
	}
	return nil
}

// StoragePath returns the configured storage path or the backend's default
// file under DataDir.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	if c.Storage.Backend == StorageJSON {
		return filepath.Join(DataDir(), "accounts.json")
	}
	return filepath.Join(DataDir(), "accounts.db")
}

// ConfigDir returns the accountnote config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// DataDir returns the accountnote data directory path.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}
