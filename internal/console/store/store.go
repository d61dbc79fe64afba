package store

import (
	"context"
	"errors"

	"github.com/opsdeck/console/internal/console/domain"
)

var (
	ErrNotFound = errors.New("store: not found")

	// Uniqueness violations carry which column collided so the HTTP layer
	// can return a structured conflict instead of guessing from text.
	ErrEmailExists    = errors.New("store: email already exists")
	ErrUsernameExists = errors.New("store: username already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users
	Sessions() Sessions
	ActionTokens() ActionTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST Commit() or Rollback() the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id int64) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user and returns the assigned id.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// UpdateUser replaces the admin-editable fields (email, username,
	// first/last name, role) and bumps updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	// UpdateEmail sets a new address and clears the verified flag; the
	// owner has to complete verification again.
	UpdateEmail(ctx context.Context, id int64, email string) error

	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	UpdateProfile(ctx context.Context, id int64, firstName, lastName, username string) error
	MarkVerified(ctx context.Context, id int64) error
	DeleteUser(ctx context.Context, id int64) error

	// List returns one page ordered by the validated ORDER BY clause the
	// service builds from the sort model.
	List(ctx context.Context, limit, offset int, orderBy string) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)

	// IsEmpty reports whether any users exist; used to seed the first admin.
	IsEmpty(ctx context.Context) (bool, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSession(ctx context.Context, id string) (domain.Session, error)
	DeleteSession(ctx context.Context, id string) error

	// DeleteUserSessions is the forced re-authentication hook: credential
	// changes revoke every session the user holds.
	DeleteUserSessions(ctx context.Context, userID int64) error

	DeleteExpiredSessions(ctx context.Context) error
}

type ActionTokens interface {
	CreateActionToken(ctx context.Context, t domain.ActionToken) error

	// GetActionToken returns the token row regardless of used/expired state;
	// the service decides how to reject it.
	GetActionToken(ctx context.Context, jti string) (domain.ActionToken, error)

	MarkActionTokenUsed(ctx context.Context, jti string) error
	DeleteExpiredActionTokens(ctx context.Context) error
}
