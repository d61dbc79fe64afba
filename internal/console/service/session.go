package service

import (
	"context"
	"fmt"
	"time"

	"github.com/opsdeck/console/internal/console/domain"
	"github.com/opsdeck/console/internal/console/store"
	"github.com/opsdeck/console/pkg/httpx"
	"github.com/opsdeck/console/pkg/idx"
)

// DefaultSessionTTL is how long a sign-in stays valid without re-authenticating.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionService mints and validates the server-side sessions behind the
// ss-id cookie. It implements httpx.SessionValidator.
type SessionService struct {
	Store store.Store
	TTL   time.Duration
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSessionTTL
}

// Mint creates a new session for the user.
func (s *SessionService) Mint(ctx context.Context, userID int64) (domain.Session, error) {
	now := time.Now().UTC()
	session := domain.Session{
		ID:        idx.New().String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl()),
	}
	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// ValidateSession resolves a cookie value to a principal, rejecting unknown
// and expired sessions. Expired rows are deleted eagerly; housekeeping picks
// up the rest.
func (s *SessionService) ValidateSession(ctx context.Context, sessionID string) (httpx.Principal, error) {
	session, err := s.Store.Sessions().GetSession(ctx, sessionID)
	if err != nil {
		return httpx.Principal{}, fmt.Errorf("unknown session: %w", err)
	}

	if session.Expired(time.Now().UTC()) {
		_ = s.Store.Sessions().DeleteSession(ctx, sessionID)
		return httpx.Principal{}, fmt.Errorf("session expired")
	}

	user, err := s.Store.Users().GetUserByID(ctx, session.UserID)
	if err != nil {
		return httpx.Principal{}, fmt.Errorf("session user missing: %w", err)
	}

	return httpx.Principal{
		SessionID: session.ID,
		UserID:    user.ID,
		Role:      user.Role,
	}, nil
}

// Destroy removes a single session.
func (s *SessionService) Destroy(ctx context.Context, sessionID string) error {
	return s.Store.Sessions().DeleteSession(ctx, sessionID)
}

// DestroyAllForUser revokes every session a user holds. Called after any
// credential change to force re-authentication everywhere.
func (s *SessionService) DestroyAllForUser(ctx context.Context, userID int64) error {
	return s.Store.Sessions().DeleteUserSessions(ctx, userID)
}
