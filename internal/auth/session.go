package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"go.uber.org/zap"

	"store-it/internal/models"
	"store-it/internal/utils"
)

const (
	// sessionTTL is the lifetime granted at login/signup.
	sessionTTL = 7 * 24 * time.Hour
	// renewalTTL is the sliding-window extension applied on each
	// successful validation.
	renewalTTL = 15 * 24 * time.Hour

	tokenBytes = 32
)

// SessionStore is the persistence needed by the session manager.
// Lookups return (nil, nil) for unknown tokens.
type SessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	FindWithUser(ctx context.Context, token string) (*models.Session, error)
	UpdateExpiry(ctx context.Context, token string, expiresAt time.Time) error
	Delete(ctx context.Context, token string) error
}

// SessionManager issues and validates opaque bearer tokens. Tokens are
// capability credentials and must never be logged.
type SessionManager struct {
	sessions SessionStore
	log      *zap.SugaredLogger
}

func NewSessionManager(sessions SessionStore, log *zap.SugaredLogger) *SessionManager {
	return &SessionManager{sessions: sessions, log: log}
}

// Create persists a new session for userID and returns its token.
func (m *SessionManager) Create(ctx context.Context, userID string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	expiresAt := time.Now().Add(sessionTTL)
	s := &models.Session{ID: token, UserID: userID, ExpiresAt: &expiresAt}
	if err := m.sessions.Create(ctx, s); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// Validate resolves a token to its user. An unknown or expired token
// yields utils.ErrUnauthenticated; expired sessions are never resurrected.
// On success the expiry slides forward to now + renewalTTL (last write
// wins under concurrent validation, which is harmless) and the returned
// user has its password scrubbed.
func (m *SessionManager) Validate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, utils.ErrUnauthenticated
	}
	s, err := m.sessions.FindWithUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	now := time.Now()
	if s == nil || s.Expired(now) {
		return nil, utils.ErrUnauthenticated
	}
	if err := m.sessions.UpdateExpiry(ctx, token, now.Add(renewalTTL)); err != nil {
		return nil, fmt.Errorf("extend session: %w", err)
	}
	user := s.User.Scrubbed()
	return &user, nil
}

// Invalidate deletes the session row. Unknown tokens are not an error.
func (m *SessionManager) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.sessions.Delete(ctx, token)
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
