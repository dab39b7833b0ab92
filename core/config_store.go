package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppConfig is the persisted runtime-togglable configuration.
type AppConfig struct {
	SecureCookie bool `json:"secureCookie"`
}

// ConfigProvider yields the current AppConfig. Implementations may hit storage
// on every call; callers must not cache the result.
type ConfigProvider interface {
	Current() (AppConfig, error)
}

// FileConfigStore keeps AppConfig in config.json under a data directory.
// The file is re-read on every Current call so edits take effect without
// a restart.
type FileConfigStore struct {
	path string
}

func NewFileConfigStore(dir string) *FileConfigStore {
	return &FileConfigStore{path: filepath.Join(dir, "config.json")}
}

// Ensure writes a default config.json when none exists. Idempotent.
func (s *FileConfigStore) Ensure() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}

	// Secure by default; plaintext-HTTP development must opt out explicitly.
	data, err := json.MarshalIndent(AppConfig{SecureCookie: true}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("initialize %s: %w", s.path, err)
	}
	return nil
}

// Current reads and decodes config.json. An unreadable or corrupt file is a
// hard failure: cookie attributes must not be guessed.
func (s *FileConfigStore) Current() (AppConfig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return cfg, nil
}

// StaticConfig is a ConfigProvider returning a fixed value, for tests.
type StaticConfig AppConfig

func (c StaticConfig) Current() (AppConfig, error) { return AppConfig(c), nil }
