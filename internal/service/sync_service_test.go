package service

import (
	"context"
	"testing"

	"github.com/iliyamo/clinic-review-platform/internal/remote"
)

func TestSyncFromRemote(t *testing.T) {
	gw := &fakeGateway{
		ListClinicsFn: func() ([]remote.ClinicRecord, error) {
			return []remote.ClinicRecord{
				{ID: "clinic_r1", OwnerUserID: "u_remote", Name: "リモート医院", Depts: []string{"内科"}},
				{ID: "", OwnerUserID: "u_x", Name: "壊れた行"}, // skipped
			}, nil
		},
		ListDoctorsFn: func() ([]remote.DoctorRecord, error) {
			return []remote.DoctorRecord{
				{ID: "doc_r1", ClinicID: "clinic_r1", Name: "佐藤一郎", Dept: "内科"},
			}, nil
		},
		ListReviewsFn: func() ([]remote.ReviewRecord, error) {
			return []remote.ReviewRecord{
				{ID: "rv_r1", ClinicID: "clinic_r1", UserID: "u_remote2", Author: "匿名ユーザー", Av: "匿", Age: "非公開", Date: "2026-08-20", Rating: 4, Body: "良かったです", Helpful: 3},
			}, nil
		},
		ListBookingsFn: func() ([]remote.BookingRecord, error) {
			return []remote.BookingRecord{
				{ID: "bk_r1", UserID: "u_remote2", ClinicID: "clinic_r1", ClinicName: "リモート医院", Type: "visit", Date: "2026-08-25", Time: "09:00", Status: "確定"},
			}, nil
		},
	}
	env := newTestEnv(t, gw)
	sync := &SyncService{
		Clinics:  env.Clinics,
		Doctors:  env.Doctors,
		Reviews:  env.Reviews,
		Bookings: env.Bookings,
		Remote:   gw,
	}
	ctx := context.Background()

	if err := sync.FromRemote(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}

	c, err := env.Catalog.GetClinic(ctx, "clinic_r1")
	if err != nil {
		t.Fatalf("pulled clinic missing: %v", err)
	}
	if c.Name != "リモート医院" {
		t.Errorf("clinic name = %q", c.Name)
	}
	if c.ReviewCount != 1 || c.Rating != 4 {
		t.Errorf("aggregates over pulled review: count=%d rating=%v", c.ReviewCount, c.Rating)
	}

	ds, err := env.Doctors.ListByClinic(ctx, "clinic_r1")
	if err != nil || len(ds) != 1 || ds[0].Name != "佐藤一郎" {
		t.Errorf("pulled roster = %+v (err %v)", ds, err)
	}

	rv, err := env.Reviews.GetByID(ctx, "rv_r1")
	if err != nil {
		t.Fatalf("pulled review missing: %v", err)
	}
	if rv.Helpful != 3 {
		t.Errorf("helpful = %d, want 3", rv.Helpful)
	}

	bs, err := env.Bookings.ListByUser(ctx, "u_remote2")
	if err != nil || len(bs) != 1 {
		t.Fatalf("pulled booking = %+v (err %v)", bs, err)
	}

	// A second pull is idempotent.
	if err := sync.FromRemote(ctx); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if bs, _ := env.Bookings.ListByUser(ctx, "u_remote2"); len(bs) != 1 {
		t.Errorf("booking duplicated on repeat pull: %d rows", len(bs))
	}
	if rvs, _ := env.Reviews.ListByClinic(ctx, "clinic_r1"); len(rvs) != 1 {
		t.Errorf("review duplicated on repeat pull: %d rows", len(rvs))
	}
}

func TestSyncWithoutGatewayIsNoOp(t *testing.T) {
	var sync *SyncService
	if err := sync.FromRemote(context.Background()); err != nil {
		t.Fatalf("nil service: %v", err)
	}
}
