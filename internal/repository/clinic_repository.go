package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/clinic-review-platform/internal/model"
)

// ClinicRepo stores operator-owned clinic profiles. The
// owner_user_id column is unique: saving a second time updates the
// existing facility instead of registering a new one.
type ClinicRepo struct{ DB *sql.DB }

func NewClinicRepo(db *sql.DB) *ClinicRepo { return &ClinicRepo{DB: db} }

const clinicCols = "id,owner_user_id,name,short,address,lat,lng,tel,hours,access,description,depts,beds,founded,parking,night_service,female_doctor,online,logo_url,updated_at"

// Upsert writes a profile keyed by owner. On conflict every column
// except id and owner is replaced, so the facility keeps its public
// identifier across edits.
func (r *ClinicRepo) Upsert(ctx context.Context, p model.ClinicProfile) error {
	p.UpdatedAt = time.Now().UTC()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO clinic_profiles ("+clinicCols+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?) "+
			"ON CONFLICT(owner_user_id) DO UPDATE SET "+
			"name=excluded.name, short=excluded.short, address=excluded.address, lat=excluded.lat, lng=excluded.lng, "+
			"tel=excluded.tel, hours=excluded.hours, access=excluded.access, description=excluded.description, "+
			"depts=excluded.depts, beds=excluded.beds, founded=excluded.founded, parking=excluded.parking, "+
			"night_service=excluded.night_service, female_doctor=excluded.female_doctor, online=excluded.online, "+
			"logo_url=excluded.logo_url, updated_at=excluded.updated_at",
		p.ID, p.OwnerUserID, p.Name, p.Short, p.Address, p.Lat, p.Lng, p.Tel, p.Hours, p.Access, p.Desc,
		encodeStrings(p.Depts), p.Beds, p.Founded, p.Parking, p.NightService, p.FemaleDoctor, p.Online,
		p.LogoURL, encodeTime(p.UpdatedAt))
	return err
}

// GetByOwner returns the profile owned by userID.
func (r *ClinicRepo) GetByOwner(ctx context.Context, userID string) (model.ClinicProfile, error) {
	return r.scanOne(ctx, "SELECT "+clinicCols+" FROM clinic_profiles WHERE owner_user_id=? LIMIT 1", userID)
}

// GetByID returns the profile with the given facility id.
func (r *ClinicRepo) GetByID(ctx context.Context, id string) (model.ClinicProfile, error) {
	return r.scanOne(ctx, "SELECT "+clinicCols+" FROM clinic_profiles WHERE id=? LIMIT 1", id)
}

// ListAll returns every registered profile in registration order.
func (r *ClinicRepo) ListAll(ctx context.Context) ([]model.ClinicProfile, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+clinicCols+" FROM clinic_profiles ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ClinicProfile{}
	for rows.Next() {
		p, err := scanClinic(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ClinicRepo) scanOne(ctx context.Context, query string, arg any) (model.ClinicProfile, error) {
	return scanClinic(r.DB.QueryRowContext(ctx, query, arg))
}

type rowScanner interface{ Scan(dest ...any) error }

func scanClinic(row rowScanner) (model.ClinicProfile, error) {
	var (
		p          model.ClinicProfile
		depts, raw string
	)
	err := row.Scan(&p.ID, &p.OwnerUserID, &p.Name, &p.Short, &p.Address, &p.Lat, &p.Lng, &p.Tel, &p.Hours,
		&p.Access, &p.Desc, &depts, &p.Beds, &p.Founded, &p.Parking, &p.NightService, &p.FemaleDoctor,
		&p.Online, &p.LogoURL, &raw)
	if err != nil {
		return model.ClinicProfile{}, err
	}
	p.Depts = decodeStrings(depts)
	p.UpdatedAt = decodeTime(raw)
	return p, nil
}
