package sqlite

import (
	"context"

	"github.com/opsdeck/console/internal/console/domain"
)

type actionTokensRepo struct {
	q querier
}

func (r *actionTokensRepo) CreateActionToken(ctx context.Context, t domain.ActionToken) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO action_tokens (jti, user_id, purpose, used, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.JTI, t.UserID, t.Purpose, t.Used, t.ExpiresAt, t.CreatedAt)
	return err
}

func (r *actionTokensRepo) GetActionToken(ctx context.Context, jti string) (domain.ActionToken, error) {
	var t domain.ActionToken
	err := r.q.QueryRowContext(ctx,
		`SELECT jti, user_id, purpose, used, expires_at, created_at FROM action_tokens WHERE jti = ?`,
		jti).
		Scan(&t.JTI, &t.UserID, &t.Purpose, &t.Used, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return domain.ActionToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *actionTokensRepo) MarkActionTokenUsed(ctx context.Context, jti string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE action_tokens SET used = 1 WHERE jti = ?`, jti)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *actionTokensRepo) DeleteExpiredActionTokens(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM action_tokens WHERE expires_at < CURRENT_TIMESTAMP OR used = 1`)
	return err
}
