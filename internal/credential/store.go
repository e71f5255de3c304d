package credential

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

const (
	sectionName = "GitHub"
	keyName     = "token"
)

// Store reads and writes the token file at Path.
// No locking is performed; concurrent invocations may race on the file.
type Store struct {
	Path string
}

// NewStore creates a Store for the given file path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load returns the stored token and true when the file parses and contains
// the GitHub section with a token key. Any failure yields "", false.
func (s *Store) Load() (string, bool) {
	if s.Path == "" {
		return "", false
	}

	if _, err := os.Stat(s.Path); err != nil {
		return "", false
	}

	cfg, err := ini.Load(s.Path)
	if err != nil {
		return "", false
	}

	sec, err := cfg.GetSection(sectionName)
	if err != nil {
		return "", false
	}

	if !sec.HasKey(keyName) {
		return "", false
	}

	return sec.Key(keyName).String(), true
}

// Save overwrites the file with the given token.
func (s *Store) Save(token string) error {
	if s.Path == "" {
		return fmt.Errorf("credential file path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := ini.Empty()

	sec, err := cfg.NewSection(sectionName)
	if err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}

	if _, err := sec.NewKey(keyName, token); err != nil {
		return fmt.Errorf("failed to set token key: %w", err)
	}

	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.Path, err)
	}

	if _, err := cfg.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}

	return f.Close()
}

// Reset clears the stored token.
func (s *Store) Reset() error {
	return s.Save("")
}
