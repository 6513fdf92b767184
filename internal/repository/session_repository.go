package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/clinic-review-platform/internal/model"
)

// SessionRepo persists the single device session (one 'token_hash'
// column, one row). Logging in replaces the row outright, which is
// what enforces session singularity: whoever logged in last owns the
// session and any previous login is gone.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Replace installs userID as the one active session, displacing any
// previous session row.
func (r *SessionRepo) Replace(ctx context.Context, userID, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO session (id, user_id, token_hash, created_at) VALUES (1,?,?,?) "+
			"ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id, token_hash=excluded.token_hash, created_at=excluded.created_at",
		userID, tokenHash, encodeTime(time.Now().UTC()))
	return err
}

// Current returns the active session, or sql.ErrNoRows when nobody is
// signed in.
func (r *SessionRepo) Current(ctx context.Context) (model.Session, error) {
	var (
		s   model.Session
		raw string
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, token_hash, created_at FROM session WHERE id=1").
		Scan(&s.UserID, &s.TokenHash, &raw)
	if err != nil {
		return model.Session{}, err
	}
	s.CreatedAt = decodeTime(raw)
	return s, nil
}

// Clear removes the session row. Clearing an empty table is not an
// error; logout is idempotent.
func (r *SessionRepo) Clear(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM session WHERE id=1")
	return err
}
