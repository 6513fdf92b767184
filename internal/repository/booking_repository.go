package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/clinic-review-platform/internal/model"
)

// BookingRepo stores confirmed appointments.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingCols = "id,user_id,clinic_id,clinic_name,booking_type,date,time,dept,status,concern,created_at"

// Insert persists a booking.
func (r *BookingRepo) Insert(ctx context.Context, b model.Booking) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO bookings ("+bookingCols+") VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		b.ID, b.UserID, b.ClinicID, b.ClinicName, b.Type, b.Date, b.Time, b.Dept, b.Status,
		b.Concern, encodeTime(b.CreatedAt))
	return err
}

// Merge inserts a booking pulled from the remote mirror, skipping
// ids already held locally. Bookings never change after creation.
func (r *BookingRepo) Merge(ctx context.Context, b model.Booking) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT OR IGNORE INTO bookings ("+bookingCols+") VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		b.ID, b.UserID, b.ClinicID, b.ClinicName, b.Type, b.Date, b.Time, b.Dept, b.Status,
		b.Concern, encodeTime(b.CreatedAt))
	return err
}

// ListByUser returns a patient's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	return r.list(ctx, "SELECT "+bookingCols+" FROM bookings WHERE user_id=? ORDER BY created_at DESC, rowid DESC", userID)
}

// ListAll returns every booking, newest first.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	return r.list(ctx, "SELECT "+bookingCols+" FROM bookings ORDER BY created_at DESC, rowid DESC")
}

// ListByClinic returns the appointments made at a facility, newest
// first. Used by the clinic dashboard.
func (r *BookingRepo) ListByClinic(ctx context.Context, clinicID string) ([]model.Booking, error) {
	return r.list(ctx, "SELECT "+bookingCols+" FROM bookings WHERE clinic_id=? ORDER BY created_at DESC, rowid DESC", clinicID)
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Booking{}
	for rows.Next() {
		var (
			b   model.Booking
			raw string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.ClinicID, &b.ClinicName, &b.Type, &b.Date, &b.Time,
			&b.Dept, &b.Status, &b.Concern, &raw); err != nil {
			return nil, err
		}
		b.CreatedAt = decodeTime(raw)
		out = append(out, b)
	}
	return out, rows.Err()
}
