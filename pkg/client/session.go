package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Session holds the bearer credentials between calls, persisted to a JSON
// file so separate invocations share one login.
type Session struct {
	mu   sync.RWMutex
	path string

	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Role         string `json:"role"`
}

// NewSession returns a session backed by path. An empty path keeps the
// session in memory only.
func NewSession(path string) *Session {
	return &Session{path: path}
}

// Init loads previously persisted credentials. A missing file is a clean
// logged-out session, not an error.
func (s *Session) Init() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}
	return nil
}

// Set stores credentials and persists them when the session is file-backed.
func (s *Session) Set(token, refreshToken, role string) error {
	s.mu.Lock()
	s.Token = token
	s.RefreshToken = refreshToken
	s.Role = role
	s.mu.Unlock()
	return s.save()
}

// Clear wipes the credentials and removes the session file.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.Token = ""
	s.RefreshToken = ""
	s.Role = ""
	s.mu.Unlock()

	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// BearerToken returns the current access token, empty when logged out.
func (s *Session) BearerToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Token
}

// CurrentRefreshToken returns the refresh token for rotation calls.
func (s *Session) CurrentRefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.RefreshToken
}

// CurrentRole reports the role the backend returned at login.
func (s *Session) CurrentRole() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Role
}

func (s *Session) save() error {
	if s.path == "" {
		return nil
	}

	s.mu.RLock()
	data, err := json.Marshal(s)
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
