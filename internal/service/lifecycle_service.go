package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/iliyamo/clinic-review-platform/internal/model"
	"github.com/iliyamo/clinic-review-platform/internal/remote"
	"github.com/iliyamo/clinic-review-platform/internal/repository"
	"github.com/iliyamo/clinic-review-platform/internal/seed"
	"github.com/iliyamo/clinic-review-platform/internal/utils"
)

// LifecycleService owns every state-changing patient and operator
// action: bookings, reviews, helpful votes, replies, reports,
// favorites, clinic profiles and rosters. Writes land in the local
// store first and are mirrored to the remote gateway best-effort.
// Review submission is the exception: it must reach the mirror or fail, so
// a review a patient believes published can never silently exist
// only on one device.
type LifecycleService struct {
	Users     *repository.UserRepo
	Clinics   *repository.ClinicRepo
	Doctors   *repository.DoctorRepo
	Reviews   *repository.ReviewRepo
	Reports   *repository.ReportRepo
	Bookings  *repository.BookingRepo
	Favorites *repository.FavoriteRepo
	Catalog   *CatalogService
	Audit     *Auditor
	Remote    remote.Gateway // nil runs local-only
}

// BookingInput is the booking form.
type BookingInput struct {
	ClinicID string
	Type     string // visit or online
	Date     string
	Time     string
	Dept     string
	Concern  string
}

// ConfirmBooking validates and persists an appointment. Bookings are
// confirmed synchronously or not at all; there is no pending state.
func (s *LifecycleService) ConfirmBooking(ctx context.Context, userID string, in BookingInput) (model.Booking, error) {
	if userID == "" {
		return model.Booking{}, ErrRequiresAuth
	}
	clinic, err := s.Catalog.GetClinic(ctx, in.ClinicID)
	if err != nil {
		return model.Booking{}, err
	}
	if in.Type != model.BookingOnline {
		in.Type = model.BookingVisit
	}
	if in.Time == "" {
		return model.Booking{}, invalid("時間帯を選択してください")
	}
	if in.Type == model.BookingOnline {
		if in.Date == "" {
			in.Date = time.Now().UTC().Format("2006-01-02")
		}
		if in.Dept == "" && len(clinic.Depts) > 0 {
			in.Dept = clinic.Depts[0]
		}
	} else if in.Date == "" {
		return model.Booking{}, invalid("ご希望の日付を選択してください")
	}

	b := model.Booking{
		ID:         utils.NewID("bk"),
		UserID:     userID,
		ClinicID:   clinic.ID,
		ClinicName: clinic.Name,
		Type:       in.Type,
		Date:       in.Date,
		Time:       in.Time,
		Dept:       in.Dept,
		Status:     model.BookingConfirmed,
		Concern:    in.Concern,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Bookings.Insert(ctx, b); err != nil {
		return model.Booking{}, err
	}
	if s.Remote != nil {
		if err := s.Remote.InsertBooking(ctx, remote.BookingRecord{
			ID: b.ID, UserID: b.UserID, ClinicID: b.ClinicID, ClinicName: b.ClinicName,
			Type: b.Type, Date: b.Date, Time: b.Time, Dept: b.Dept, Status: b.Status, Concern: b.Concern,
		}); err != nil {
			log.Printf("booking: remote mirror failed: %v", err)
		}
	}
	s.Audit.Record(ctx, userID, "booking_create", map[string]any{"hospitalId": b.ClinicID, "type": b.Type})
	return b, nil
}

// MyBookings returns the caller's appointments, newest first.
func (s *LifecycleService) MyBookings(ctx context.Context, userID string) ([]model.Booking, error) {
	if userID == "" {
		return nil, ErrRequiresAuth
	}
	return s.Bookings.ListByUser(ctx, userID)
}

// ReviewInput is the review form.
type ReviewInput struct {
	ClinicID  string
	Rating    int
	Dept      string
	DoctorID  string
	Title     string
	Body      string
	Tags      []string
	DrRating  int
	FacRating int
	WaitRate  int
	Anonymous bool
}

// SubmitReview publishes a review. When a remote mirror is
// configured the write is remote-first and fails closed: a mirror
// rejection aborts the submission entirely.
func (s *LifecycleService) SubmitReview(ctx context.Context, userID string, in ReviewInput) (model.Review, error) {
	if userID == "" {
		return model.Review{}, ErrRequiresAuth
	}
	if strings.TrimSpace(in.Dept) == "" {
		return model.Review{}, invalid("受診した診療科を選択してください")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return model.Review{}, invalid("総合評価を選択してください")
	}
	if strings.TrimSpace(in.Title) == "" {
		return model.Review{}, invalid("タイトルを入力してください")
	}
	if strings.TrimSpace(in.Body) == "" {
		return model.Review{}, invalid("口コミ本文を入力してください")
	}
	if _, err := s.Catalog.GetClinic(ctx, in.ClinicID); err != nil {
		return model.Review{}, err
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return model.Review{}, err
	}

	author, av := u.Name, firstRune(u.Name, "匿")
	if in.Anonymous {
		author, av = "匿名ユーザー", "匿"
	}
	rv := model.Review{
		ID:        utils.NewID("rv"),
		ClinicID:  in.ClinicID,
		UserID:    userID,
		Author:    author,
		Avatar:    av,
		Age:       "非公開",
		Date:      time.Now().UTC().Format("2006-01-02"),
		Rating:    in.Rating,
		Dept:      in.Dept,
		DoctorID:  in.DoctorID,
		Title:     strings.TrimSpace(in.Title),
		Body:      strings.TrimSpace(in.Body),
		Tags:      in.Tags,
		DrRating:  in.DrRating,
		FacRating: in.FacRating,
		WaitRate:  in.WaitRate,
		CreatedAt: time.Now().UTC(),
	}

	if s.Remote != nil {
		if err := s.Remote.InsertReview(ctx, remote.ReviewRecord{
			ID: rv.ID, ClinicID: rv.ClinicID, UserID: rv.UserID, Author: rv.Author, Av: rv.Avatar,
			Age: rv.Age, Date: rv.Date, Rating: rv.Rating, Dept: rv.Dept, Did: rv.DoctorID,
			Title: rv.Title, Body: rv.Body, Tags: rv.Tags, Helpful: 0,
			Dr: rv.DrRating, Fr: rv.FacRating, Wr: rv.WaitRate,
		}); err != nil {
			log.Printf("review: remote persist failed: %v", err)
			return model.Review{}, ErrRemoteRejected
		}
	}
	if err := s.Reviews.Insert(ctx, rv); err != nil {
		return model.Review{}, err
	}
	s.Audit.Record(ctx, userID, "review_create", map[string]any{"clinicId": rv.ClinicID, "rating": rv.Rating})
	return rv, nil
}

// VoteHelpful marks a review helpful on behalf of the caller and
// returns the updated counter. Repeat votes by the same account are
// absorbed without incrementing.
func (s *LifecycleService) VoteHelpful(ctx context.Context, userID, reviewID string) (int, error) {
	if userID == "" {
		return 0, ErrRequiresAuth
	}
	if _, err := s.Reviews.GetByID(ctx, reviewID); err != nil {
		return 0, err
	}
	helpful, err := s.Reviews.AddHelpfulVote(ctx, reviewID, userID)
	if err != nil {
		return 0, err
	}
	if s.Remote != nil {
		if err := s.Remote.UpdateReview(ctx, reviewID, map[string]any{"helpful": helpful}); err != nil {
			log.Printf("review: remote helpful mirror failed: %v", err)
		}
	}
	s.Audit.Record(ctx, userID, "review_helpful", map[string]any{"reviewId": reviewID, "helpful": helpful})
	return helpful, nil
}

// ReplyToReview publishes the clinic's single official answer to a
// review of its own facility. The caller must own the facility the
// review was written about, and a review already answered stays
// answered.
func (s *LifecycleService) ReplyToReview(ctx context.Context, ownerID, reviewID, text string) (model.Review, error) {
	if ownerID == "" {
		return model.Review{}, ErrRequiresAuth
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Review{}, invalid("返信内容を入力してください")
	}
	profile, err := s.Clinics.GetByOwner(ctx, ownerID)
	if err != nil {
		return model.Review{}, repository.ErrForbidden
	}
	rv, err := s.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		return model.Review{}, err
	}
	if rv.ClinicID != profile.ID {
		return model.Review{}, repository.ErrForbidden
	}
	if err := s.Reviews.SetReply(ctx, reviewID, text); err != nil {
		return model.Review{}, err
	}
	rv.Reply = text
	if s.Remote != nil {
		if err := s.Remote.UpdateReview(ctx, reviewID, map[string]any{"reply": text}); err != nil {
			log.Printf("review: remote reply mirror failed: %v", err)
		}
	}
	s.Audit.Record(ctx, ownerID, "review_reply", map[string]any{"reviewId": reviewID})
	return rv, nil
}

// ReportReview files a moderation flag against a review. Editorial
// catalog reviews can be reported too.
func (s *LifecycleService) ReportReview(ctx context.Context, userID, reviewID, reason string) (model.ReviewReport, error) {
	if userID == "" {
		return model.ReviewReport{}, ErrRequiresAuth
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return model.ReviewReport{}, invalid("通報理由を入力してください")
	}
	clinicID, err := s.clinicOfReview(ctx, reviewID)
	if err != nil {
		return model.ReviewReport{}, err
	}
	rp := model.ReviewReport{
		ID:             utils.NewID("rp"),
		ReviewID:       reviewID,
		ClinicID:       clinicID,
		ReporterUserID: userID,
		Reason:         reason,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Reports.Insert(ctx, rp); err != nil {
		return model.ReviewReport{}, err
	}
	if s.Remote != nil {
		if err := s.Remote.InsertReport(ctx, remote.ReportRecord{
			ReviewID: rp.ReviewID, ReporterUserID: rp.ReporterUserID, ClinicID: rp.ClinicID, Reason: rp.Reason,
		}); err != nil {
			log.Printf("report: remote mirror failed: %v", err)
		}
	}
	s.Audit.Record(ctx, userID, "review_report", map[string]any{"reviewId": rp.ReviewID, "clinicId": rp.ClinicID})
	return rp, nil
}

// ToggleFavorite flips a bookmark and reports the new state.
func (s *LifecycleService) ToggleFavorite(ctx context.Context, userID, clinicID string) (bool, error) {
	if userID == "" {
		return false, ErrRequiresAuth
	}
	if _, err := s.Catalog.GetClinic(ctx, clinicID); err != nil {
		return false, err
	}
	return s.Favorites.Toggle(ctx, userID, clinicID)
}

// FavoriteClinics returns the caller's bookmarked facilities with
// live aggregates.
func (s *LifecycleService) FavoriteClinics(ctx context.Context, userID string) ([]model.Clinic, error) {
	if userID == "" {
		return nil, ErrRequiresAuth
	}
	ids, err := s.Favorites.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []model.Clinic{}
	for _, id := range ids {
		c, err := s.Catalog.GetClinic(ctx, id)
		if err != nil {
			continue // bookmark of a facility that no longer exists
		}
		out = append(out, c)
	}
	return out, nil
}

// ProfileInput is the clinic profile form.
type ProfileInput struct {
	Name         string
	Short        string
	Address      string
	Lat          float64
	Lng          float64
	Tel          string
	Hours        string
	Access       string
	Desc         string
	Depts        []string
	Beds         int
	Founded      int
	Parking      bool
	NightService bool
	FemaleDoctor bool
	Online       bool
	LogoURL      string
}

// SaveClinicProfile creates or overwrites the caller's facility.
// Each clinic account owns exactly one facility: saving again keeps
// the facility id and replaces the content.
func (s *LifecycleService) SaveClinicProfile(ctx context.Context, ownerID string, in ProfileInput) (model.ClinicProfile, error) {
	if ownerID == "" {
		return model.ClinicProfile{}, ErrRequiresAuth
	}
	if err := s.requireClinicRole(ctx, ownerID); err != nil {
		return model.ClinicProfile{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.ClinicProfile{}, invalid("医療機関名を入力してください")
	}
	if strings.TrimSpace(in.Address) == "" {
		return model.ClinicProfile{}, invalid("住所を入力してください")
	}

	id := utils.NewID("clinic")
	if prev, err := s.Clinics.GetByOwner(ctx, ownerID); err == nil {
		id = prev.ID
	}
	p := model.ClinicProfile{
		ID:           id,
		OwnerUserID:  ownerID,
		Name:         strings.TrimSpace(in.Name),
		Short:        strings.TrimSpace(in.Short),
		Address:      in.Address,
		Lat:          in.Lat,
		Lng:          in.Lng,
		Tel:          in.Tel,
		Hours:        in.Hours,
		Access:       in.Access,
		Desc:         in.Desc,
		Depts:        in.Depts,
		Beds:         in.Beds,
		Founded:      in.Founded,
		Parking:      in.Parking,
		NightService: in.NightService,
		FemaleDoctor: in.FemaleDoctor,
		Online:       in.Online,
		LogoURL:      in.LogoURL,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.Clinics.Upsert(ctx, p); err != nil {
		return model.ClinicProfile{}, err
	}
	if s.Remote != nil {
		depts := p.Depts
		if len(depts) == 0 {
			depts = []string{"内科"}
		}
		founded := p.Founded
		if founded == 0 {
			founded = time.Now().Year()
		}
		if err := s.Remote.UpsertClinic(ctx, remote.ClinicRecord{
			ID: p.ID, OwnerUserID: p.OwnerUserID, Name: p.Name, Short: p.Short, Address: p.Address,
			Tel: p.Tel, Hours: p.Hours, Access: p.Access, Description: p.Desc, Lat: p.Lat, Lng: p.Lng,
			Beds: p.Beds, Founded: founded, Depts: depts, Parking: p.Parking,
			NightService: p.NightService, Female: p.FemaleDoctor, Online: p.Online, LogoURL: p.LogoURL,
		}); err != nil {
			log.Printf("clinic: remote mirror failed: %v", err)
		}
	}
	s.Audit.Record(ctx, ownerID, "clinic_profile_upsert", map[string]any{"clinicId": p.ID})
	return p, nil
}

// MyClinicProfile returns the caller's facility.
func (s *LifecycleService) MyClinicProfile(ctx context.Context, ownerID string) (model.ClinicProfile, error) {
	return s.Clinics.GetByOwner(ctx, ownerID)
}

// DoctorInput is the roster form.
type DoctorInput struct {
	Name        string
	Title       string
	Dept        string
	Exp         int
	Specialties []string
	Bio         string
	Photo       string
	Female      bool
}

// AddDoctor registers a physician on the caller's facility roster.
// The caller must have saved a clinic profile first.
func (s *LifecycleService) AddDoctor(ctx context.Context, ownerID string, in DoctorInput) (model.Doctor, error) {
	if ownerID == "" {
		return model.Doctor{}, ErrRequiresAuth
	}
	if err := s.requireClinicRole(ctx, ownerID); err != nil {
		return model.Doctor{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Doctor{}, invalid("医師名を入力してください")
	}
	if strings.TrimSpace(in.Title) == "" {
		return model.Doctor{}, invalid("役職を入力してください")
	}
	profile, err := s.Clinics.GetByOwner(ctx, ownerID)
	if err != nil {
		// roster entries hang off a saved facility
		return model.Doctor{}, repository.ErrConflict
	}
	photo := strings.TrimSpace(in.Photo)
	if photo == "" {
		photo = "DR"
	}
	d := model.Doctor{
		ID:          utils.NewID("doc"),
		ClinicID:    profile.ID,
		Name:        strings.TrimSpace(in.Name),
		Title:       strings.TrimSpace(in.Title),
		Dept:        strings.TrimSpace(in.Dept),
		Exp:         in.Exp,
		Specialties: in.Specialties,
		Bio:         in.Bio,
		Photo:       photo,
		Female:      in.Female,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Doctors.Add(ctx, d); err != nil {
		return model.Doctor{}, err
	}
	if s.Remote != nil {
		if err := s.Remote.UpsertDoctor(ctx, remote.DoctorRecord{
			ID: d.ID, ClinicID: d.ClinicID, OwnerUserID: ownerID, Name: d.Name, Title: d.Title,
			Dept: d.Dept, Exp: d.Exp, Specialties: d.Specialties, Bio: d.Bio, Photo: d.Photo, Female: d.Female,
		}); err != nil {
			log.Printf("doctor: remote mirror failed: %v", err)
		}
	}
	s.Audit.Record(ctx, ownerID, "clinic_doctor_upsert", map[string]any{"clinicId": d.ClinicID, "doctorName": d.Name})
	return d, nil
}

// MyDoctors returns the caller's facility roster, newest first.
func (s *LifecycleService) MyDoctors(ctx context.Context, ownerID string) ([]model.Doctor, error) {
	profile, err := s.Clinics.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, repository.ErrForbidden
	}
	return s.Doctors.ListByClinic(ctx, profile.ID)
}

// ClinicBookings returns the appointments made at the caller's
// facility for the dashboard.
func (s *LifecycleService) ClinicBookings(ctx context.Context, ownerID string) ([]model.Booking, error) {
	profile, err := s.Clinics.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, repository.ErrForbidden
	}
	return s.Bookings.ListByClinic(ctx, profile.ID)
}

// ClinicReports returns the moderation flags filed against the
// caller's facility reviews.
func (s *LifecycleService) ClinicReports(ctx context.Context, ownerID string) ([]model.ReviewReport, error) {
	profile, err := s.Clinics.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, repository.ErrForbidden
	}
	return s.Reports.ListByClinic(ctx, profile.ID)
}

// requireClinicRole rejects callers who have not upgraded to an
// operator account. Ownership checks apply on top of this.
func (s *LifecycleService) requireClinicRole(ctx context.Context, userID string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.Role != model.RoleClinic {
		return repository.ErrForbidden
	}
	return nil
}

// clinicOfReview resolves which facility a review, editorial or
// submitted, belongs to.
func (s *LifecycleService) clinicOfReview(ctx context.Context, reviewID string) (string, error) {
	if rv, err := s.Reviews.GetByID(ctx, reviewID); err == nil {
		return rv.ClinicID, nil
	}
	for _, c := range seed.Clinics() {
		for _, rv := range seed.ReviewsFor(c.ID) {
			if rv.ID == reviewID {
				return c.ID, nil
			}
		}
	}
	return "", invalid("対象の口コミが見つかりません")
}

func firstRune(s, fallback string) string {
	for _, r := range s {
		return string(r)
	}
	return fallback
}
