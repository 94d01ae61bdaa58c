package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// PGRepo is the Postgres-backed Repo.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, email, full_name, created_at
FROM users
WHERE email = $1
LIMIT 1`
	var user User
	var fullName sql.NullString
	err := r.DB.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(
		&user.ID,
		&user.Email,
		&fullName,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if fullName.Valid {
		user.FullName = fullName.String
	}
	return user, nil
}

func (r *PGRepo) FindSubscriptionByUserID(ctx context.Context, userID string) (Subscription, error) {
	const query = `
SELECT id, user_id, plan_id, status, current_period_end
FROM subscriptions
WHERE user_id = $1
ORDER BY current_period_end DESC
LIMIT 1`
	var sub Subscription
	var periodEnd sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&sub.ID,
		&sub.UserID,
		&sub.PlanID,
		&sub.Status,
		&periodEnd,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Subscription{}, ErrNotFound
		}
		return Subscription{}, err
	}
	if periodEnd.Valid {
		sub.CurrentPeriodEnd = periodEnd.Time
	} else {
		sub.CurrentPeriodEnd = time.Time{}
	}
	return sub, nil
}

var _ Repo = (*PGRepo)(nil)
