package subscriber

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/weatherlyhq/weatherly/internal/platform/db"
)

var (
	ErrNotFound    = errors.New("subscriber repository: subscriber not found")
	ErrExists      = errors.New("subscriber repository: subscriber already exists")
	ErrQueryFailed = errors.New("subscriber repository: query failed")
)

const pgUniqueViolation = "23505"

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(executor db.Executor) *SQLRepository {
	return &SQLRepository{db: executor}
}

type CreateParams struct {
	Email         string
	PasswordHash  string
	City          string
	PreferredTime string
	Timezone      string
	Frequency     string
}

const queryCreate = `
INSERT INTO subscribers (email, password_hash, city, preferred_time, timezone, frequency, subscribed, verification_sent)
VALUES ($1, $2, $3, $4, $5, $6, TRUE, FALSE)
RETURNING created_at, updated_at
`

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (Subscriber, error) {
	sub := Subscriber{
		Email:         params.Email,
		PasswordHash:  params.PasswordHash,
		City:          params.City,
		PreferredTime: params.PreferredTime,
		Timezone:      params.Timezone,
		Frequency:     params.Frequency,
		Subscribed:    true,
	}

	row := r.db.QueryRowContext(ctx, queryCreate,
		params.Email, params.PasswordHash, params.City, params.PreferredTime, params.Timezone, params.Frequency)
	if err := row.Scan(&sub.CreatedAt, &sub.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return Subscriber{}, ErrExists
		}
		return Subscriber{}, fmt.Errorf("%w: create subscriber %s: %v", ErrQueryFailed, params.Email, err)
	}

	return sub, nil
}

const queryFindByEmail = `
SELECT email, password_hash, city, preferred_time, timezone, frequency, subscribed, verification_sent, created_at, updated_at
FROM subscribers
WHERE email = $1
LIMIT 1
`

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (Subscriber, error) {
	row := r.db.QueryRowContext(ctx, queryFindByEmail, email)
	var sub Subscriber
	err := row.Scan(&sub.Email, &sub.PasswordHash, &sub.City, &sub.PreferredTime, &sub.Timezone,
		&sub.Frequency, &sub.Subscribed, &sub.VerificationSent, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Subscriber{}, ErrNotFound
		}
		return Subscriber{}, fmt.Errorf("%w: find subscriber %s: %v", ErrQueryFailed, email, err)
	}
	return sub, nil
}

const queryListSubscribed = `
SELECT email, password_hash, city, preferred_time, timezone, frequency, subscribed, verification_sent, created_at, updated_at
FROM subscribers
WHERE subscribed = TRUE
`

func (r *SQLRepository) ListSubscribed(ctx context.Context) ([]Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, queryListSubscribed)
	if err != nil {
		return nil, fmt.Errorf("%w: list subscribed: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	//nolint:prealloc //Cannot identify the length of the rows without running another query.
	var subs []Subscriber
	for rows.Next() {
		var sub Subscriber
		err := rows.Scan(&sub.Email, &sub.PasswordHash, &sub.City, &sub.PreferredTime, &sub.Timezone,
			&sub.Frequency, &sub.Subscribed, &sub.VerificationSent, &sub.CreatedAt, &sub.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("subscriber repository: scan row: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("subscriber repository: iterate over rows: %w", err)
	}

	return subs, nil
}

type UpdatePreferencesParams struct {
	City          string
	PreferredTime string
	Timezone      string
	Frequency     string
}

const queryUpdatePreferences = `
UPDATE subscribers
SET city = $2, preferred_time = $3, timezone = $4, frequency = $5, updated_at = NOW()
WHERE email = $1
`

func (r *SQLRepository) UpdatePreferences(ctx context.Context, email string, params UpdatePreferencesParams) error {
	res, err := r.db.ExecContext(ctx, queryUpdatePreferences,
		email, params.City, params.PreferredTime, params.Timezone, params.Frequency)
	if err != nil {
		return fmt.Errorf("%w: update preferences for %s: %v", ErrQueryFailed, email, err)
	}

	return checkAffected(res, email)
}

const querySetSubscribed = `
UPDATE subscribers SET subscribed = $2, updated_at = NOW() WHERE email = $1
`

func (r *SQLRepository) SetSubscribed(ctx context.Context, email string, subscribed bool) error {
	res, err := r.db.ExecContext(ctx, querySetSubscribed, email, subscribed)
	if err != nil {
		return fmt.Errorf("%w: set subscribed for %s: %v", ErrQueryFailed, email, err)
	}

	return checkAffected(res, email)
}

// The flag is one-way: once true it is never reset here.
const querySetVerificationSent = `
UPDATE subscribers SET verification_sent = TRUE, updated_at = NOW() WHERE email = $1
`

func (r *SQLRepository) SetVerificationSent(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, querySetVerificationSent, email)
	if err != nil {
		return fmt.Errorf("%w: set verification sent for %s: %v", ErrQueryFailed, email, err)
	}

	return checkAffected(res, email)
}

func checkAffected(res sql.Result, email string) error {
	numRows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected for %s: %w", email, err)
	}

	if numRows == 0 {
		return ErrNotFound
	}

	return nil
}
