package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/opsdeck/console/internal/console/domain"
	"github.com/opsdeck/console/internal/console/store"
	"github.com/opsdeck/console/pkg/cryptox"
)

var (
	// ErrSelfDelete rejects an administrator deleting their own account.
	ErrSelfDelete = errors.New("service: user prohibited from deleting self")

	// ErrWrongPassword is returned when the current password supplied to a
	// credential change does not match.
	ErrWrongPassword = errors.New("service: wrong password")

	// ErrEmailMismatch is returned when the current_email in an e-mail
	// change does not match the account.
	ErrEmailMismatch = errors.New("service: current email does not match")

	// ErrBadSort rejects sort models naming unknown fields or directions.
	ErrBadSort = errors.New("service: invalid sort model")
)

// sortColumns whitelists grid sort fields and maps them to columns. The
// ORDER BY clause is assembled from these values only.
var sortColumns = map[string]string{
	"id":         "id",
	"email":      "email",
	"username":   "username",
	"first_name": "first_name",
	"last_name":  "last_name",
	"role":       "role",
	"verified":   "verified",
	"created":    "created_at",
}

// UserService implements the admin user CRUD and the per-account profile,
// e-mail and password updates.
type UserService struct {
	Store    store.Store
	Sessions *SessionService
	Accounts *AccountService
}

// List returns one page of users. page is the zero-based page index as sent
// by the grid; the row offset is limit*page. sortJSON is the grid sort model
// (may be empty).
func (s *UserService) List(ctx context.Context, limit, page int, sortJSON string) (domain.UserPage, error) {
	orderBy, err := buildOrderBy(sortJSON)
	if err != nil {
		return domain.UserPage{}, err
	}

	rows, err := s.Store.Users().List(ctx, limit, limit*page, orderBy)
	if err != nil {
		return domain.UserPage{}, fmt.Errorf("failed to list users: %w", err)
	}
	count, err := s.Store.Users().Count(ctx)
	if err != nil {
		return domain.UserPage{}, fmt.Errorf("failed to count users: %w", err)
	}

	return domain.UserPage{Rows: rows, Count: count}, nil
}

// Create adds an account on behalf of an administrator. The account gets a
// random password the admin never sees, and a reset mail so the new user can
// choose their own.
func (s *UserService) Create(ctx context.Context, u domain.User) error {
	password, err := cryptox.GeneratePassword()
	if err != nil {
		return err
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	u.Verified = false
	if u.Role == "" {
		u.Role = domain.RoleUser
	}

	id, err := s.Store.Users().CreateUser(ctx, u)
	if err != nil {
		return err
	}
	u.ID = id

	return s.Accounts.SendReset(ctx, u)
}

// Update replaces the admin-editable fields of an account.
func (s *UserService) Update(ctx context.Context, u domain.User) error {
	return s.Store.Users().UpdateUser(ctx, u)
}

// Remove deletes an account. Administrators cannot delete themselves; the
// console enforces this client-side too, but the server is the authority.
func (s *UserService) Remove(ctx context.Context, id, callerID int64) error {
	if id == callerID {
		return ErrSelfDelete
	}
	return s.Store.Users().DeleteUser(ctx, id)
}

// UpdateEmail changes the account's address after re-checking the password
// and the current address. The account drops back to unverified, gets a new
// verification mail, and loses all sessions.
func (s *UserService) UpdateEmail(ctx context.Context, id int64, currentEmail, newEmail, password string) error {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return ErrWrongPassword
	}
	if user.Email != currentEmail {
		return ErrEmailMismatch
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdateEmail(ctx, id, newEmail); err != nil {
			return err
		}
		return tx.Sessions().DeleteUserSessions(ctx, id)
	})
	if err != nil {
		return err
	}

	return s.Accounts.sendVerification(ctx, id, newEmail)
}

// UpdatePassword changes the password after checking the current one, and
// revokes every session.
func (s *UserService) UpdatePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if err := cryptox.VerifyPassword(currentPassword, user.PasswordHash); err != nil {
		return ErrWrongPassword
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, id, hash); err != nil {
			return err
		}
		return tx.Sessions().DeleteUserSessions(ctx, id)
	})
}

// UpdateProfile updates the display fields and returns the fresh record so
// the client can overwrite its cached session.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, firstName, lastName, username string) (domain.User, error) {
	if err := s.Store.Users().UpdateProfile(ctx, id, firstName, lastName, username); err != nil {
		return domain.User{}, err
	}
	return s.Store.Users().GetUserByID(ctx, id)
}

// buildOrderBy turns the grid sort model JSON into a safe ORDER BY clause.
// An empty model sorts by id ascending; a trailing id tiebreaker keeps
// pagination stable under equal keys.
func buildOrderBy(sortJSON string) (string, error) {
	if strings.TrimSpace(sortJSON) == "" {
		return "id ASC", nil
	}

	var model []domain.SortField
	if err := json.Unmarshal([]byte(sortJSON), &model); err != nil {
		return "", ErrBadSort
	}
	if len(model) == 0 {
		return "id ASC", nil
	}

	clauses := make([]string, 0, len(model)+1)
	sawID := false
	for _, item := range model {
		column, ok := sortColumns[item.Field]
		if !ok {
			return "", ErrBadSort
		}

		var direction string
		switch strings.ToLower(item.Sort) {
		case "asc", "":
			direction = "ASC"
		case "desc":
			direction = "DESC"
		default:
			return "", ErrBadSort
		}

		if column == "id" {
			sawID = true
		}
		clauses = append(clauses, column+" "+direction)
	}

	if !sawID {
		clauses = append(clauses, "id ASC")
	}
	return strings.Join(clauses, ", "), nil
}
