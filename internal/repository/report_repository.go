package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/clinic-review-platform/internal/model"
)

// ReportRepo stores moderation flags raised against reviews.
type ReportRepo struct{ DB *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

// Insert appends a report.
func (r *ReportRepo) Insert(ctx context.Context, rp model.ReviewReport) error {
	if rp.CreatedAt.IsZero() {
		rp.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO review_reports (id,review_id,clinic_id,reporter_user_id,reason,created_at) VALUES (?,?,?,?,?,?)",
		rp.ID, rp.ReviewID, rp.ClinicID, rp.ReporterUserID, rp.Reason, encodeTime(rp.CreatedAt))
	return err
}

// ListByClinic returns reports filed against a clinic's reviews,
// newest first. Clinic dashboards use this to surface flagged
// content.
func (r *ReportRepo) ListByClinic(ctx context.Context, clinicID string) ([]model.ReviewReport, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,review_id,clinic_id,reporter_user_id,reason,created_at FROM review_reports WHERE clinic_id=? ORDER BY created_at DESC, rowid DESC",
		clinicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ReviewReport{}
	for rows.Next() {
		var (
			rp  model.ReviewReport
			raw string
		)
		if err := rows.Scan(&rp.ID, &rp.ReviewID, &rp.ClinicID, &rp.ReporterUserID, &rp.Reason, &raw); err != nil {
			return nil, err
		}
		rp.CreatedAt = decodeTime(raw)
		out = append(out, rp)
	}
	return out, rows.Err()
}
