package domain

import "time"

// ActionToken records the jti of a mailed verification or reset link so it
// can only be redeemed once. The token itself is a signed JWT and is never
// stored.
type ActionToken struct {
	JTI       string
	UserID    int64
	Purpose   string // tokenx.PurposeVerify or tokenx.PurposeReset
	Used      bool
	ExpiresAt time.Time
	CreatedAt time.Time
}
