package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/clinic-review-platform/internal/model"
)

// AuditRepo stores the capped action trail. Cap is the maximum
// number of rows retained; every insert trims the oldest overflow in
// the same transaction so the table can never exceed the cap, even
// transiently across restarts.
type AuditRepo struct {
	DB  *sql.DB
	Cap int
}

func NewAuditRepo(db *sql.DB, cap int) *AuditRepo {
	if cap < 1 {
		cap = 1
	}
	return &AuditRepo{DB: db, Cap: cap}
}

// Insert appends an entry and evicts the oldest rows beyond the cap.
func (r *AuditRepo) Insert(ctx context.Context, e model.AuditLogEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO audit_logs (id,actor_user_id,action,metadata,created_at) VALUES (?,?,?,?,?)",
		e.ID, e.ActorUserID, e.Action, e.Metadata, encodeTime(e.CreatedAt)); err != nil {
		return err
	}
	// LIMIT -1 OFFSET cap selects everything past the newest Cap rows.
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM audit_logs WHERE rowid IN (SELECT rowid FROM audit_logs ORDER BY created_at DESC, rowid DESC LIMIT -1 OFFSET ?)",
		r.Cap); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns up to limit entries, newest first. A non-positive
// limit returns the whole retained window.
func (r *AuditRepo) List(ctx context.Context, limit int) ([]model.AuditLogEntry, error) {
	if limit <= 0 {
		limit = r.Cap
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,actor_user_id,action,metadata,created_at FROM audit_logs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AuditLogEntry{}
	for rows.Next() {
		var (
			e   model.AuditLogEntry
			raw string
		)
		if err := rows.Scan(&e.ID, &e.ActorUserID, &e.Action, &e.Metadata, &raw); err != nil {
			return nil, err
		}
		e.CreatedAt = decodeTime(raw)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of retained entries.
func (r *AuditRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_logs").Scan(&n)
	return n, err
}
