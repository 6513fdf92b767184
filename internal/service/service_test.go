package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/iliyamo/clinic-review-platform/internal/database"
	"github.com/iliyamo/clinic-review-platform/internal/remote"
	"github.com/iliyamo/clinic-review-platform/internal/repository"
)

// testEnv wires the full service stack over an in-memory database.
type testEnv struct {
	DB        *sql.DB
	Users     *repository.UserRepo
	Sessions  *repository.SessionRepo
	Clinics   *repository.ClinicRepo
	Doctors   *repository.DoctorRepo
	Reviews   *repository.ReviewRepo
	Reports   *repository.ReportRepo
	Bookings  *repository.BookingRepo
	Favorites *repository.FavoriteRepo

	Auth      *AuthService
	Catalog   *CatalogService
	Lifecycle *LifecycleService
	Auditor   *Auditor
}

func newTestEnv(t *testing.T, gw remote.Gateway) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Bootstrap(context.Background(), db); err != nil {
		t.Fatalf("bootstrap schema: %v", err)
	}

	env := &testEnv{
		DB:        db,
		Users:     repository.NewUserRepo(db),
		Sessions:  repository.NewSessionRepo(db),
		Clinics:   repository.NewClinicRepo(db),
		Doctors:   repository.NewDoctorRepo(db),
		Reviews:   repository.NewReviewRepo(db),
		Reports:   repository.NewReportRepo(db),
		Bookings:  repository.NewBookingRepo(db),
		Favorites: repository.NewFavoriteRepo(db),
	}
	env.Auditor = &Auditor{Repo: repository.NewAuditRepo(db, 1000), Remote: gw}
	env.Catalog = &CatalogService{Clinics: env.Clinics, Doctors: env.Doctors, Reviews: env.Reviews}
	env.Auth = &AuthService{
		Users:        env.Users,
		Sessions:     env.Sessions,
		Clinics:      env.Clinics,
		Audit:        env.Auditor,
		Remote:       gw,
		JWTSecret:    "test-secret",
		AccessTTLMin: 15,
		BcryptCost:   4, // keep hashing fast in tests
	}
	env.Lifecycle = &LifecycleService{
		Users:     env.Users,
		Clinics:   env.Clinics,
		Doctors:   env.Doctors,
		Reviews:   env.Reviews,
		Reports:   env.Reports,
		Bookings:  env.Bookings,
		Favorites: env.Favorites,
		Catalog:   env.Catalog,
		Audit:     env.Auditor,
		Remote:    gw,
	}
	return env
}

// signupPatient registers a patient account and returns the result.
func (e *testEnv) signupPatient(t *testing.T, name, email string) AuthResult {
	t.Helper()
	res, err := e.Auth.Signup(context.Background(), SignupInput{
		Name: name, Email: email, Password: "password1",
	})
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return res
}

// signupClinic registers a clinic operator account.
func (e *testEnv) signupClinic(t *testing.T, name, email string) AuthResult {
	t.Helper()
	res, err := e.Auth.Signup(context.Background(), SignupInput{
		Name: name, Email: email, Password: "password1", Role: "clinic",
	})
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return res
}

// fakeGateway is a scriptable remote.Gateway. Unset hooks succeed and
// return zero values; every mutating call is recorded by name.
type fakeGateway struct {
	Calls []string

	SignUpFn       func(email, password string) (remote.Session, error)
	SignInFn       func(email, password string) (remote.Session, error)
	GetProfileFn   func(id string) (remote.Profile, error)
	InsertReviewFn func(r remote.ReviewRecord) error

	ListClinicsFn  func() ([]remote.ClinicRecord, error)
	ListDoctorsFn  func() ([]remote.DoctorRecord, error)
	ListBookingsFn func() ([]remote.BookingRecord, error)
	ListReviewsFn  func() ([]remote.ReviewRecord, error)
}

var _ remote.Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) record(name string) { f.Calls = append(f.Calls, name) }

func (f *fakeGateway) SignUp(_ context.Context, email, password string) (remote.Session, error) {
	f.record("SignUp")
	if f.SignUpFn != nil {
		return f.SignUpFn(email, password)
	}
	return remote.Session{UserID: "remote-" + email, AccessToken: "tok"}, nil
}

func (f *fakeGateway) SignIn(_ context.Context, email, password string) (remote.Session, error) {
	f.record("SignIn")
	if f.SignInFn != nil {
		return f.SignInFn(email, password)
	}
	return remote.Session{UserID: "remote-" + email, AccessToken: "tok"}, nil
}

func (f *fakeGateway) SignOut(context.Context) error { f.record("SignOut"); return nil }

func (f *fakeGateway) UpsertProfile(_ context.Context, _ remote.Profile) error {
	f.record("UpsertProfile")
	return nil
}

func (f *fakeGateway) GetProfile(_ context.Context, id string) (remote.Profile, error) {
	if f.GetProfileFn != nil {
		return f.GetProfileFn(id)
	}
	return remote.Profile{}, sql.ErrNoRows
}

func (f *fakeGateway) UpsertClinic(_ context.Context, _ remote.ClinicRecord) error {
	f.record("UpsertClinic")
	return nil
}

func (f *fakeGateway) ListClinics(context.Context) ([]remote.ClinicRecord, error) {
	if f.ListClinicsFn != nil {
		return f.ListClinicsFn()
	}
	return nil, nil
}

func (f *fakeGateway) UpsertDoctor(_ context.Context, _ remote.DoctorRecord) error {
	f.record("UpsertDoctor")
	return nil
}

func (f *fakeGateway) ListDoctors(context.Context) ([]remote.DoctorRecord, error) {
	if f.ListDoctorsFn != nil {
		return f.ListDoctorsFn()
	}
	return nil, nil
}

func (f *fakeGateway) InsertBooking(_ context.Context, _ remote.BookingRecord) error {
	f.record("InsertBooking")
	return nil
}

func (f *fakeGateway) ListBookings(context.Context) ([]remote.BookingRecord, error) {
	if f.ListBookingsFn != nil {
		return f.ListBookingsFn()
	}
	return nil, nil
}

func (f *fakeGateway) InsertReview(_ context.Context, r remote.ReviewRecord) error {
	f.record("InsertReview")
	if f.InsertReviewFn != nil {
		return f.InsertReviewFn(r)
	}
	return nil
}

func (f *fakeGateway) UpdateReview(_ context.Context, _ string, _ map[string]any) error {
	f.record("UpdateReview")
	return nil
}

func (f *fakeGateway) ListReviews(context.Context) ([]remote.ReviewRecord, error) {
	if f.ListReviewsFn != nil {
		return f.ListReviewsFn()
	}
	return nil, nil
}

func (f *fakeGateway) InsertReport(_ context.Context, _ remote.ReportRecord) error {
	f.record("InsertReport")
	return nil
}

func (f *fakeGateway) InsertAuditLog(_ context.Context, _ remote.AuditRecord) error {
	f.record("InsertAuditLog")
	return nil
}

func (f *fakeGateway) called(name string) bool {
	for _, c := range f.Calls {
		if c == name {
			return true
		}
	}
	return false
}
