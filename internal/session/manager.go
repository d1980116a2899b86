package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coursedesk/coursedesk/pkg/courseapi"
)

// Manager is the single source of truth for "who is logged in". It
// starts in StateLoading; Restore must run before any protected view
// renders. All mutation goes through Login and Logout.
type Manager struct {
	store  *FileStore
	logger *slog.Logger

	mu      sync.RWMutex
	state   State
	current *Session
}

// NewManager creates a Manager backed by the given store. The manager
// starts in StateLoading until Restore is called.
func NewManager(store *FileStore, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger,
		state:  StateLoading,
	}
}

// Restore reads the durable record and populates the in-memory session.
// A missing or corrupt record silently yields StateUnauthenticated.
// The restored token is not validated against the server; staleness is
// discovered lazily when an API call fails authorization. Restore is
// idempotent: repeated calls without an intervening Login or Logout
// produce identical state.
func (m *Manager) Restore() error {
	sess, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sess == nil {
		m.state = StateUnauthenticated
		m.current = nil
		return nil
	}
	m.state = StateAuthenticated
	m.current = sess
	m.logger.Debug("session restored", "user", sess.User.Email)
	return nil
}

// Login sets the in-memory session and writes the durable record.
// Subsequent protected-route checks pass.
func (m *Manager) Login(token string, user courseapi.Identity) error {
	sess := &Session{
		Token:     token,
		User:      user,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.store.Save(sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateAuthenticated
	m.current = sess
	m.logger.Info("logged in", "user", user.Email)
	return nil
}

// Logout clears the in-memory session and removes the durable record.
// Subsequent protected-route checks fail.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateUnauthenticated
	m.current = nil
	m.logger.Info("logged out")
	return nil
}

// State returns the current lifecycle state. It never reports
// StateAuthenticated without a user present.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Current returns a copy of the active session, or nil when there is
// none.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	sess := *m.current
	return &sess
}

// IsAdmin reports whether the current session's user holds the admin
// role.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.IsAdmin()
}

// Token returns the active credential, or "" when unauthenticated.
// Manager implements courseapi.TokenSource so the HTTP client adapter
// consults the session on every call.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Token
}
