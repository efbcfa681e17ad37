// Package session manages authenticated sessions and remember-me tokens.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/res5515/jcommune/internal/dependencies/clock"
	"github.com/res5515/jcommune/internal/model"
	"github.com/res5515/jcommune/internal/services/auth"
)

// Errors
var (
	ErrInvalidSession = errors.New("invalid or expired session")
)

// Cookie names written on login
const (
	CookieName           = "session"
	RememberMeCookieName = "remember_me"
)

// Session represents an authenticated session
type Session struct {
	Token      string
	UserID     model.UserID
	Username   string
	Persistent bool // true for remember-me sessions
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Config holds configuration for the session manager
type Config struct {
	SessionDuration    time.Duration
	RememberMeDuration time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration:    24 * time.Hour,
		RememberMeDuration: 30 * 24 * time.Hour,
	}
}

// Manager tracks sessions and last-seen times. It implements the
// authenticator's SessionBinder contract.
type Manager struct {
	clock  clock.Clock
	logger *slog.Logger
	cfg    Config

	mu       sync.RWMutex
	sessions map[string]*Session
	lastSeen map[model.UserID]time.Time
}

// Ensure Manager implements the binder contract
var _ auth.SessionBinder = (*Manager)(nil)

// NewManager creates a session manager
func NewManager(clk clock.Clock, cfg Config, logger *slog.Logger) *Manager {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	if cfg.RememberMeDuration == 0 {
		cfg.RememberMeDuration = DefaultConfig().RememberMeDuration
	}
	return &Manager{
		clock:    clk,
		logger:   logger,
		cfg:      cfg,
		sessions: make(map[string]*Session),
		lastSeen: make(map[model.UserID]time.Time),
	}
}

// Bind creates a session for the principal and sets the session cookie
func (m *Manager) Bind(principal *auth.Principal, req *auth.RequestContext) error {
	session := m.create(principal, false, m.cfg.SessionDuration)
	req.SessionToken = session.Token

	req.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})
	return nil
}

// OnAuthenticationSuccess records the user as seen online
func (m *Manager) OnAuthenticationSuccess(principal *auth.Principal, req *auth.RequestContext) {
	m.mu.Lock()
	m.lastSeen[principal.User.ID] = m.clock.Now()
	m.mu.Unlock()

	m.logger.Debug("user seen online", slog.String("username", principal.User.Username))
}

// Validate checks a session token and returns the session
func (m *Manager) Validate(token string) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if m.clock.Now().After(session.ExpiresAt) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// Invalidate removes a session
func (m *Manager) Invalidate(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// LastSeen returns when the user was last seen online
func (m *Manager) LastSeen(id model.UserID) (time.Time, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.lastSeen[id]
	return t, ok
}

// CleanExpired removes expired sessions (call periodically)
func (m *Manager) CleanExpired() {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	for token, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			delete(m.sessions, token)
		}
	}
}

// create stores a new session for a principal
func (m *Manager) create(principal *auth.Principal, persistent bool, ttl time.Duration) *Session {
	now := m.clock.Now()
	session := &Session{
		Token:      generateToken("sess_"),
		UserID:     principal.User.ID,
		Username:   principal.User.Username,
		Persistent: persistent,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}

	m.mu.Lock()
	m.sessions[session.Token] = session
	m.mu.Unlock()

	return session
}

// generateToken generates a random token with a prefix
func generateToken(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
