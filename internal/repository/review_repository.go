package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/clinic-review-platform/internal/model"
)

// ReviewRepo stores submitted reviews plus the helpful-vote ledger
// that keeps the counter honest against repeat clicks.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

const reviewCols = "id,clinic_id,user_id,author,avatar,age,date,rating,dept,doctor_id,title,body,tags,helpful,dr_rating,fac_rating,wait_rating,reply,created_at"

// Insert persists a new review.
func (r *ReviewRepo) Insert(ctx context.Context, rv model.Review) error {
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews ("+reviewCols+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)",
		rv.ID, rv.ClinicID, rv.UserID, rv.Author, rv.Avatar, rv.Age, rv.Date, rv.Rating, rv.Dept,
		rv.DoctorID, rv.Title, rv.Body, encodeStrings(rv.Tags), rv.Helpful, rv.DrRating, rv.FacRating,
		rv.WaitRate, rv.Reply, encodeTime(rv.CreatedAt))
	return err
}

// GetByID fetches one review.
func (r *ReviewRepo) GetByID(ctx context.Context, id string) (model.Review, error) {
	return scanReview(r.DB.QueryRowContext(ctx,
		"SELECT "+reviewCols+" FROM reviews WHERE id=? LIMIT 1", id))
}

// ListByClinic returns a clinic's submitted reviews, newest first.
func (r *ReviewRepo) ListByClinic(ctx context.Context, clinicID string) ([]model.Review, error) {
	return r.list(ctx, "SELECT "+reviewCols+" FROM reviews WHERE clinic_id=? ORDER BY created_at DESC, rowid DESC", clinicID)
}

// ListAll returns every submitted review, newest first.
func (r *ReviewRepo) ListAll(ctx context.Context) ([]model.Review, error) {
	return r.list(ctx, "SELECT "+reviewCols+" FROM reviews ORDER BY created_at DESC, rowid DESC")
}

// AddHelpfulVote records voterID finding the review helpful and
// returns the updated counter. A repeat vote by the same user changes
// nothing and returns the current counter; the ledger's primary key
// is what makes the operation idempotent.
func (r *ReviewRepo) AddHelpfulVote(ctx context.Context, reviewID, voterID string) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO review_votes (review_id, voter_user_id, created_at) VALUES (?,?,?)",
		reviewID, voterID, encodeTime(time.Now().UTC()))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if _, err := tx.ExecContext(ctx,
			"UPDATE reviews SET helpful = helpful + 1 WHERE id=?", reviewID); err != nil {
			return 0, err
		}
	}
	var helpful int
	if err := tx.QueryRowContext(ctx,
		"SELECT helpful FROM reviews WHERE id=? LIMIT 1", reviewID).Scan(&helpful); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return helpful, nil
}

// SetReply stores the clinic's official answer. A review carries at
// most one reply; a second attempt fails with ErrConflict instead of
// silently overwriting the published text.
func (r *ReviewRepo) SetReply(ctx context.Context, reviewID, reply string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE reviews SET reply=? WHERE id=? AND reply=''", reply, reviewID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the review is missing or it already has a reply.
		var existing string
		err := r.DB.QueryRowContext(ctx,
			"SELECT reply FROM reviews WHERE id=? LIMIT 1", reviewID).Scan(&existing)
		if err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

// Merge upserts a review pulled from the remote mirror. Locally held
// rows win nothing special: the mirror is the source of truth during
// a pull, so an existing row is overwritten in place.
func (r *ReviewRepo) Merge(ctx context.Context, rv model.Review) error {
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews ("+reviewCols+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?) "+
			"ON CONFLICT(id) DO UPDATE SET helpful=excluded.helpful, reply=excluded.reply",
		rv.ID, rv.ClinicID, rv.UserID, rv.Author, rv.Avatar, rv.Age, rv.Date, rv.Rating, rv.Dept,
		rv.DoctorID, rv.Title, rv.Body, encodeStrings(rv.Tags), rv.Helpful, rv.DrRating, rv.FacRating,
		rv.WaitRate, rv.Reply, encodeTime(rv.CreatedAt))
	return err
}

func (r *ReviewRepo) list(ctx context.Context, query string, args ...any) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func scanReview(row rowScanner) (model.Review, error) {
	var (
		rv        model.Review
		tags, raw string
	)
	err := row.Scan(&rv.ID, &rv.ClinicID, &rv.UserID, &rv.Author, &rv.Avatar, &rv.Age, &rv.Date,
		&rv.Rating, &rv.Dept, &rv.DoctorID, &rv.Title, &rv.Body, &tags, &rv.Helpful,
		&rv.DrRating, &rv.FacRating, &rv.WaitRate, &rv.Reply, &raw)
	if err != nil {
		return model.Review{}, err
	}
	rv.Tags = decodeStrings(tags)
	rv.CreatedAt = decodeTime(raw)
	return rv, nil
}
