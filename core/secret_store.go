package core

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

const signingKeySize = 32

// KeySource provides the symmetric signing key for session tokens.
type KeySource interface {
	Load() ([]byte, error)
}

// FileSecretStore persists the signing key as a base64 line in a file named
// "secret". The base64 text itself is the key material handed to the token
// signer, matching the on-disk format this store has always used; changing
// that would invalidate every outstanding session.
type FileSecretStore struct {
	path string
}

func NewFileSecretStore(dir string) *FileSecretStore {
	return &FileSecretStore{path: filepath.Join(dir, "secret")}
}

// Ensure generates and persists a fresh signing key when none exists.
// Idempotent: an existing file is never touched.
func (s *FileSecretStore) Ensure() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}

	raw := make([]byte, signingKeySize)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("generate signing key: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	if err := os.WriteFile(s.path, []byte(encoded), 0o600); err != nil {
		return fmt.Errorf("initialize %s: %w", s.path, err)
	}
	return nil
}

// Load returns the signing-key bytes. Callers treat a failure here as fatal:
// issuing or verifying tokens without the persisted key is unsafe.
func (s *FileSecretStore) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read signing key %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("signing key %s is empty", s.path)
	}
	return data, nil
}

// StaticKey is a KeySource returning fixed bytes, for tests.
type StaticKey []byte

func (k StaticKey) Load() ([]byte, error) { return []byte(k), nil }
