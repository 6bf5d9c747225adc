// internal/session/store.go
//
// Durable record of who is logged in. One JSON file under the verdant config
// directory holds the whole session; the backend remains the authority on
// whether that identity is still honored.

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// Session identifies the current logged-in user. Created on successful
// login or signup, deleted on logout.
type Session struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Store reads and writes the session file. The zero value is not usable;
// construct with NewStore.
type Store struct {
	path string
}

// NewStore returns a store backed by dir/session.json.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, "session.json")}
}

// Path returns the backing file, mainly for logs and tests.
func (s *Store) Path() string {
	return s.path
}

// Save persists the session, overwriting any prior value. The write goes to
// a temp file in the same directory and is renamed into place, so a crash
// mid-write cannot leave a torn session file behind.
func (s *Store) Save(sess Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "session-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Load returns the persisted session. A missing or unparsable file reads as
// "not logged in" rather than an error the caller has to sort out.
func (s *Store) Load() (Session, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}, false
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, false
	}
	return sess, true
}

// Clear removes the persisted session. Clearing an absent session succeeds.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsAuthenticated reports whether a session is persisted.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Load()
	return ok
}

// IsAdmin reports whether the persisted session carries the admin role.
func (s *Store) IsAdmin() bool {
	sess, ok := s.Load()
	return ok && sess.Role == RoleAdmin
}

// IsCustomer reports whether the persisted session carries the customer role.
func (s *Store) IsCustomer() bool {
	sess, ok := s.Load()
	return ok && sess.Role == RoleCustomer
}
