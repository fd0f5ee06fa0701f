// Package config loads the optional ticketdesk config file.
//
// The file is YAML. Its location is, in order: the --config flag, $TICKETDESK_CONFIG,
// or config.yaml under ConfigDir. Environment variables and flags override file values;
// callers apply those on top of the returned Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Data is the seed file (YAML or JSONC). Empty means the embedded sample.
	Data string `yaml:"data,omitempty"`

	Log       LogConfig       `yaml:"log,omitempty"`
	QuickEdit QuickEditConfig `yaml:"quickEdit,omitempty"`
	Tickets   TicketsConfig   `yaml:"tickets,omitempty"`
	Table     TableConfig     `yaml:"table,omitempty"`
}

type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level,omitempty"`
}

type QuickEditConfig struct {
	// ClearSelection empties the selection after a bulk status change or delete.
	ClearSelection bool `yaml:"clearSelection,omitempty"`
}

type TicketsConfig struct {
	// TouchUpdatedAt refreshes updatedAt when a bulk edit changes a ticket's status.
	TouchUpdatedAt bool `yaml:"touchUpdatedAt,omitempty"`
}

type TableConfig struct {
	Sort string `yaml:"sort,omitempty"`
	Desc bool   `yaml:"desc,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests out of the real home dir).
	if v := strings.TrimSpace(os.Getenv("TICKETDESK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ticketdesk"), nil
}

// Path resolves the config file location. explicit reports whether the path was
// named by the caller or $TICKETDESK_CONFIG rather than defaulted.
func Path(flagPath string) (path string, explicit bool, err error) {
	if v := strings.TrimSpace(flagPath); v != "" {
		return v, true, nil
	}
	if v := strings.TrimSpace(os.Getenv("TICKETDESK_CONFIG")); v != "" {
		return v, true, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(dir, "config.yaml"), false, nil
}

// Load reads the config at the resolved path. A missing default file yields an empty
// Config; a missing explicit file is an error.
func Load(flagPath string) (*Config, string, error) {
	path, explicit, err := Path(flagPath)
	if err != nil {
		return nil, "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return &Config{}, path, nil
		}
		return nil, path, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, path, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, path, nil
}

// Save writes cfg to path, keeping a .bak copy of the previous file.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.yaml.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.yaml.*.tmp", path, b, 0o600)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// ApplyEnv overlays the TICKETDESK_* environment variables onto cfg.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("TICKETDESK_DATA")); v != "" {
		c.Data = v
	}
	if v := strings.TrimSpace(os.Getenv("TICKETDESK_LOG_FILE")); v != "" {
		c.Log.File = v
	}
	if v := strings.TrimSpace(os.Getenv("TICKETDESK_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
}
