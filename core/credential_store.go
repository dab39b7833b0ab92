package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Credential is the single registered account.
type Credential struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// CredentialRepository defines persistence operations for the account record.
type CredentialRepository interface {
	Exists() bool
	Load() (Credential, error)
	Create(username, passwordHash string) error
}

// FileCredentialStore keeps the credential in login.json under a data
// directory. At most one record ever exists; Create enforces that.
type FileCredentialStore struct {
	path string
	mu   sync.Mutex
}

func NewFileCredentialStore(dir string) *FileCredentialStore {
	return &FileCredentialStore{path: filepath.Join(dir, "login.json")}
}

// Exists reports whether a registration has occurred.
func (s *FileCredentialStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load returns the stored credential. ErrCredentialNotFound when no account
// has been registered; other errors mean the record is unreadable or corrupt.
func (s *FileCredentialStore) Load() (Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credential{}, ErrCredentialNotFound
		}
		return Credential{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	var c Credential
	if err := json.Unmarshal(data, &c); err != nil {
		return Credential{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return c, nil
}

// Create persists a new credential record. The mutex plus O_EXCL open make
// the exists-then-create step atomic: under concurrent registrations exactly
// one caller wins, the rest get ErrCredentialExists.
func (s *FileCredentialStore) Create(username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(Credential{Username: username, PasswordHash: passwordHash})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return ErrCredentialExists
		}
		return fmt.Errorf("create %s: %w", s.path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(s.path)
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(s.path)
		return fmt.Errorf("close %s: %w", s.path, err)
	}
	return nil
}
