package repository

import (
	"context"
	"database/sql"
	"time"
)

// FavoriteRepo stores the patient's bookmarked clinics as bare
// (user, clinic) pairs.
type FavoriteRepo struct{ DB *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{DB: db} }

// Toggle flips the bookmark for a clinic and reports whether the
// clinic is favorited afterwards.
func (r *FavoriteRepo) Toggle(ctx context.Context, userID, clinicID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id=? AND clinic_id=?", userID, clinicID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil // was favorited, now removed
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO favorites (user_id, clinic_id, created_at) VALUES (?,?,?)",
		userID, clinicID, encodeTime(time.Now().UTC()))
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns the clinic ids a user has bookmarked, oldest first.
func (r *FavoriteRepo) List(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT clinic_id FROM favorites WHERE user_id=? ORDER BY rowid", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
