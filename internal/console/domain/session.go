package domain

import "time"

// Session is a server-side login session identified by the ss-id cookie.
type Session struct {
	ID        string // ULID
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
