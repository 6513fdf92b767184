// Package remote mirrors local writes to an optional hosted
// persistence service speaking the PostgREST convention (auth under
// /auth/v1, row access under /rest/v1). The platform works fully
// without it; when configured, account state and user-generated
// content survive a wiped local database because the next login pulls
// everything back down.
package remote

import (
	"context"
	"errors"
)

// ErrInvalidLogin is returned by SignIn when the service rejects the
// credentials. Callers use it to tell "wrong password" apart from
// transport failures.
var ErrInvalidLogin = errors.New("remote: invalid login credentials")

// Session is the identity handed back by the auth endpoints. An
// empty AccessToken after SignUp means the account still needs email
// confirmation and cannot be signed in yet.
type Session struct {
	UserID      string
	AccessToken string
}

// Profile mirrors the remote `profiles` table.
type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Avatar      string `json:"avatar"`
}

// ClinicRecord mirrors the remote `clinics` table.
type ClinicRecord struct {
	ID           string   `json:"id"`
	OwnerUserID  string   `json:"owner_user_id"`
	Name         string   `json:"name"`
	Short        string   `json:"short"`
	Address      string   `json:"address"`
	Tel          string   `json:"tel"`
	Hours        string   `json:"hours"`
	Access       string   `json:"access"`
	Description  string   `json:"description"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Beds         int      `json:"beds"`
	Founded      int      `json:"founded"`
	Depts        []string `json:"depts"`
	Parking      bool     `json:"parking"`
	NightService bool     `json:"night_service"`
	Female       bool     `json:"female"`
	Online       bool     `json:"online"`
	LogoURL      string   `json:"logo_url"`
}

// DoctorRecord mirrors the remote `clinic_doctors` table.
type DoctorRecord struct {
	ID          string   `json:"id"`
	ClinicID    string   `json:"clinic_id"`
	OwnerUserID string   `json:"owner_user_id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Dept        string   `json:"dept"`
	Exp         int      `json:"exp"`
	Specialties []string `json:"specialties"`
	Bio         string   `json:"bio"`
	Photo       string   `json:"photo"`
	Female      bool     `json:"female"`
}

// BookingRecord mirrors the remote `bookings` table.
type BookingRecord struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	ClinicID   string `json:"clinic_id"`
	ClinicName string `json:"clinic_name"`
	Type       string `json:"type"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Dept       string `json:"dept"`
	Status     string `json:"status"`
	Concern    string `json:"concern"`
}

// ReviewRecord mirrors the remote `reviews` table.
type ReviewRecord struct {
	ID       string   `json:"id"`
	ClinicID string   `json:"clinic_id"`
	UserID   string   `json:"user_id"`
	Author   string   `json:"author"`
	Av       string   `json:"av"`
	Age      string   `json:"age"`
	Date     string   `json:"date"`
	Rating   int      `json:"rating"`
	Dept     string   `json:"dept"`
	Did      string   `json:"did"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Tags     []string `json:"tags"`
	Helpful  int      `json:"helpful"`
	Dr       int      `json:"dr"`
	Fr       int      `json:"fr"`
	Wr       int      `json:"wr"`
	Reply    string   `json:"reply,omitempty"`
}

// ReportRecord mirrors the remote `review_reports` table.
type ReportRecord struct {
	ReviewID       string `json:"review_id"`
	ReporterUserID string `json:"reporter_user_id"`
	ClinicID       string `json:"clinic_id"`
	Reason         string `json:"reason"`
}

// AuditRecord mirrors the remote `audit_logs` table.
type AuditRecord struct {
	ActorUserID string `json:"actor_user_id"`
	Action      string `json:"action"`
	Metadata    string `json:"metadata"`
	CreatedAt   string `json:"created_at"`
}

// Gateway is the mirroring contract the services depend on. A nil
// Gateway means the platform runs local-only. Tests substitute fakes.
type Gateway interface {
	SignUp(ctx context.Context, email, password string) (Session, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context) error

	UpsertProfile(ctx context.Context, p Profile) error
	GetProfile(ctx context.Context, id string) (Profile, error)

	UpsertClinic(ctx context.Context, c ClinicRecord) error
	ListClinics(ctx context.Context) ([]ClinicRecord, error)

	UpsertDoctor(ctx context.Context, d DoctorRecord) error
	ListDoctors(ctx context.Context) ([]DoctorRecord, error)

	InsertBooking(ctx context.Context, b BookingRecord) error
	ListBookings(ctx context.Context) ([]BookingRecord, error)

	InsertReview(ctx context.Context, r ReviewRecord) error
	UpdateReview(ctx context.Context, id string, patch map[string]any) error
	ListReviews(ctx context.Context) ([]ReviewRecord, error)

	InsertReport(ctx context.Context, r ReportRecord) error
	InsertAuditLog(ctx context.Context, a AuditRecord) error
}
