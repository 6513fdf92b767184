package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/clinic-review-platform/internal/model"
)

// DoctorRepo stores operator-added roster physicians.
type DoctorRepo struct{ DB *sql.DB }

func NewDoctorRepo(db *sql.DB) *DoctorRepo { return &DoctorRepo{DB: db} }

const doctorCols = "id,clinic_id,name,title,dept,exp,edu,certs,specialties,bio,photo,female,created_at"

// Add inserts a roster entry.
func (r *DoctorRepo) Add(ctx context.Context, d model.Doctor) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO clinic_doctors ("+doctorCols+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)",
		d.ID, d.ClinicID, d.Name, d.Title, d.Dept, d.Exp, d.Edu, encodeStrings(d.Certs),
		encodeStrings(d.Specialties), d.Bio, d.Photo, d.Female, encodeTime(d.CreatedAt))
	return err
}

// Merge upserts a roster entry pulled from the remote mirror.
func (r *DoctorRepo) Merge(ctx context.Context, d model.Doctor) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO clinic_doctors ("+doctorCols+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?) "+
			"ON CONFLICT(id) DO UPDATE SET name=excluded.name, title=excluded.title, dept=excluded.dept, "+
			"exp=excluded.exp, edu=excluded.edu, certs=excluded.certs, specialties=excluded.specialties, "+
			"bio=excluded.bio, photo=excluded.photo, female=excluded.female",
		d.ID, d.ClinicID, d.Name, d.Title, d.Dept, d.Exp, d.Edu, encodeStrings(d.Certs),
		encodeStrings(d.Specialties), d.Bio, d.Photo, d.Female, encodeTime(d.CreatedAt))
	return err
}

// ListByClinic returns a clinic's roster, newest first.
func (r *DoctorRepo) ListByClinic(ctx context.Context, clinicID string) ([]model.Doctor, error) {
	return r.list(ctx, "SELECT "+doctorCols+" FROM clinic_doctors WHERE clinic_id=? ORDER BY rowid DESC", clinicID)
}

// ListAll returns every roster physician, newest first.
func (r *DoctorRepo) ListAll(ctx context.Context) ([]model.Doctor, error) {
	return r.list(ctx, "SELECT "+doctorCols+" FROM clinic_doctors ORDER BY rowid DESC")
}

func (r *DoctorRepo) list(ctx context.Context, query string, args ...any) ([]model.Doctor, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Doctor{}
	for rows.Next() {
		var (
			d                 model.Doctor
			certs, specs, raw string
		)
		if err := rows.Scan(&d.ID, &d.ClinicID, &d.Name, &d.Title, &d.Dept, &d.Exp, &d.Edu,
			&certs, &specs, &d.Bio, &d.Photo, &d.Female, &raw); err != nil {
			return nil, err
		}
		d.Certs = decodeStrings(certs)
		d.Specialties = decodeStrings(specs)
		d.CreatedAt = decodeTime(raw)
		out = append(out, d)
	}
	return out, rows.Err()
}
