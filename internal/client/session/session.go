// Package session keeps the logged-in identity of the CLI user between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/billed/internal/filex"
)

// User types known to the store.
const (
	TypeEmployee = "Employee"
	TypeAdmin    = "Admin"
)

// ErrNoSession is returned by Load when nobody is logged in.
var ErrNoSession = errors.New("no active session")

// Session is the identity read by the controllers. Token is the bearer token
// used by the store client and never leaves this machine otherwise.
type Session struct {
	Type  string `json:"type"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// IsEmployee reports whether the session belongs to an employee account.
func (s Session) IsEmployee() bool {
	return s.Type == TypeEmployee
}

// Load reads the session stored at path. A missing file or an empty email
// yields ErrNoSession.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Email == "" {
		return nil, ErrNoSession
	}
	return &s, nil
}

// Save writes the session to path, readable by the owner only. Missing
// parent directories are created.
func Save(path string, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := filex.EnsureParentDir(path); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an absent session is not an error.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
