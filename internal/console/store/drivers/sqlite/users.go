package sqlite

import (
	"context"
	"fmt"

	"github.com/opsdeck/console/internal/console/domain"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, email, username, first_name, last_name, role, password_hash, verified, created_at, updated_at`

func (r *usersRepo) scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.PasswordHash,
		&u.Verified,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return r.scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO users (email, username, first_name, last_name, role, password_hash, verified)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Email, u.Username, u.FirstName, u.LastName, u.Role, u.PasswordHash, u.Verified)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users
		 SET email = ?, username = ?, first_name = ?, last_name = ?, role = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		u.Email, u.Username, u.FirstName, u.LastName, u.Role, u.ID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowAffected(res)
}

func (r *usersRepo) UpdateEmail(ctx context.Context, id int64, email string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET email = ?, verified = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		email, id)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowAffected(res)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		hash, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, id int64, firstName, lastName, username string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users
		 SET first_name = ?, last_name = ?, username = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		firstName, lastName, username, id)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowAffected(res)
}

func (r *usersRepo) MarkVerified(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET verified = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

// List runs with an ORDER BY clause assembled by the service from a
// whitelist; raw client input never reaches this string.
func (r *usersRepo) List(ctx context.Context, limit, offset int, orderBy string) ([]domain.User, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM users ORDER BY %s LIMIT ? OFFSET ?`, userColumns, orderBy)

	rows, err := r.q.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0, limit)
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	count, err := r.Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
