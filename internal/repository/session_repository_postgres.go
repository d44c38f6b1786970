package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type postgresSessionRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgresSessionRepository stores sessions in the operator_sessions table
func NewPostgresSessionRepository(db *sql.DB) SessionRepository {
	return &postgresSessionRepository{db: db, now: time.Now}
}

// Save upserts the token using parameterized queries
func (r *postgresSessionRepository) Save(ctx context.Context, sessionID, token string, ttl time.Duration) error {
	var expiresAt sql.NullTime
	if ttl > 0 {
		expiresAt = sql.NullTime{Time: r.now().Add(ttl).UTC(), Valid: true}
	}

	query := `
		INSERT INTO operator_sessions (id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at
	`

	if _, err := r.db.ExecContext(ctx, query, sessionID, token, expiresAt, r.now().UTC()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *postgresSessionRepository) Find(ctx context.Context, sessionID string) (string, error) {
	query := `
		SELECT token
		FROM operator_sessions
		WHERE id = $1 AND (expires_at IS NULL OR expires_at > $2)
	`

	var token string
	err := r.db.QueryRowContext(ctx, query, sessionID, r.now().UTC()).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("failed to find session: %w", err)
	}
	return token, nil
}

func (r *postgresSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM operator_sessions WHERE id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry and returns how many were removed
func (r *postgresSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM operator_sessions WHERE expires_at IS NOT NULL AND expires_at <= $1`, r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}
