// Package session persists the bearer token and username across runs, the
// client-side half of the login contract. The file lives under ~/.artes so
// every entry point (CLI commands and the TUI) shares one session.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

type Session struct {
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
}

// Active reports whether a session token is present.
func (s Session) Active() bool { return strings.TrimSpace(s.Token) != "" }

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.artes).
	if v := strings.TrimSpace(os.Getenv("ARTES_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".artes"), nil
}

func sessionPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// Restore reads the persisted session. A missing file is an inactive
// session, not an error.
func Restore() (Session, error) {
	path, err := sessionPath()
	if err != nil {
		return Session{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Persist writes the token and username durably. The write is atomic so a
// concurrent CLI invocation never observes a torn session file.
func Persist(token, username string) error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(Session{Token: token, Username: username}, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "session.json.*.tmp", path, b, 0o600)
}

// Clear removes the persisted session. Clearing an already-absent session
// is a no-op.
func Clear() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
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
