package service

import (
	"context"
	"log"

	"github.com/iliyamo/clinic-review-platform/internal/model"
	"github.com/iliyamo/clinic-review-platform/internal/remote"
	"github.com/iliyamo/clinic-review-platform/internal/repository"
)

// SyncService pulls the remote mirror back into the local store.
// It runs after a successful login so a fresh device, or a device
// whose database was wiped, reconverges with everything the account
// published elsewhere. Pulls are best-effort per table: one failing
// table is logged and skipped rather than aborting the rest.
type SyncService struct {
	Clinics  *repository.ClinicRepo
	Doctors  *repository.DoctorRepo
	Reviews  *repository.ReviewRepo
	Bookings *repository.BookingRepo
	Remote   remote.Gateway
}

// FromRemote merges the mirror's clinics, rosters, reviews and
// bookings into the local store. No-op without a configured gateway.
func (s *SyncService) FromRemote(ctx context.Context) error {
	if s == nil || s.Remote == nil {
		return nil
	}
	s.pullClinics(ctx)
	s.pullDoctors(ctx)
	s.pullReviews(ctx)
	s.pullBookings(ctx)
	return nil
}

func (s *SyncService) pullClinics(ctx context.Context) {
	recs, err := s.Remote.ListClinics(ctx)
	if err != nil {
		log.Printf("sync: clinic pull failed: %v", err)
		return
	}
	for _, rec := range recs {
		if rec.ID == "" || rec.OwnerUserID == "" {
			continue
		}
		p := model.ClinicProfile{
			ID:           rec.ID,
			OwnerUserID:  rec.OwnerUserID,
			Name:         rec.Name,
			Short:        rec.Short,
			Address:      rec.Address,
			Tel:          rec.Tel,
			Hours:        rec.Hours,
			Access:       rec.Access,
			Desc:         rec.Description,
			Lat:          rec.Lat,
			Lng:          rec.Lng,
			Beds:         rec.Beds,
			Founded:      rec.Founded,
			Depts:        rec.Depts,
			Parking:      rec.Parking,
			NightService: rec.NightService,
			FemaleDoctor: rec.Female,
			Online:       rec.Online,
			LogoURL:      rec.LogoURL,
		}
		if err := s.Clinics.Upsert(ctx, p); err != nil {
			log.Printf("sync: clinic %s merge failed: %v", rec.ID, err)
		}
	}
}

func (s *SyncService) pullDoctors(ctx context.Context) {
	recs, err := s.Remote.ListDoctors(ctx)
	if err != nil {
		log.Printf("sync: doctor pull failed: %v", err)
		return
	}
	for _, rec := range recs {
		if rec.ID == "" || rec.ClinicID == "" {
			continue
		}
		photo := rec.Photo
		if photo == "" {
			photo = "DR"
		}
		d := model.Doctor{
			ID:          rec.ID,
			ClinicID:    rec.ClinicID,
			Name:        rec.Name,
			Title:       rec.Title,
			Dept:        rec.Dept,
			Exp:         rec.Exp,
			Specialties: rec.Specialties,
			Bio:         rec.Bio,
			Photo:       photo,
			Female:      rec.Female,
		}
		if err := s.Doctors.Merge(ctx, d); err != nil {
			log.Printf("sync: doctor %s merge failed: %v", rec.ID, err)
		}
	}
}

func (s *SyncService) pullReviews(ctx context.Context) {
	recs, err := s.Remote.ListReviews(ctx)
	if err != nil {
		log.Printf("sync: review pull failed: %v", err)
		return
	}
	for _, rec := range recs {
		if rec.ID == "" {
			continue
		}
		rv := model.Review{
			ID:        rec.ID,
			ClinicID:  rec.ClinicID,
			UserID:    rec.UserID,
			Author:    rec.Author,
			Avatar:    rec.Av,
			Age:       rec.Age,
			Date:      rec.Date,
			Rating:    rec.Rating,
			Dept:      rec.Dept,
			DoctorID:  rec.Did,
			Title:     rec.Title,
			Body:      rec.Body,
			Tags:      rec.Tags,
			Helpful:   rec.Helpful,
			DrRating:  rec.Dr,
			FacRating: rec.Fr,
			WaitRate:  rec.Wr,
			Reply:     rec.Reply,
		}
		if err := s.Reviews.Merge(ctx, rv); err != nil {
			log.Printf("sync: review %s merge failed: %v", rec.ID, err)
		}
	}
}

func (s *SyncService) pullBookings(ctx context.Context) {
	recs, err := s.Remote.ListBookings(ctx)
	if err != nil {
		log.Printf("sync: booking pull failed: %v", err)
		return
	}
	for _, rec := range recs {
		if rec.ID == "" {
			continue
		}
		b := model.Booking{
			ID:         rec.ID,
			UserID:     rec.UserID,
			ClinicID:   rec.ClinicID,
			ClinicName: rec.ClinicName,
			Type:       rec.Type,
			Date:       rec.Date,
			Time:       rec.Time,
			Dept:       rec.Dept,
			Status:     rec.Status,
			Concern:    rec.Concern,
		}
		if err := s.Bookings.Merge(ctx, b); err != nil {
			log.Printf("sync: booking %s merge failed: %v", rec.ID, err)
		}
	}
}
