package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/iliyamo/clinic-review-platform/internal/model"
	"github.com/iliyamo/clinic-review-platform/internal/repository"
	"github.com/iliyamo/clinic-review-platform/internal/seed"
)

// CatalogService reconciles the built-in directory with
// operator-registered facilities and patient reviews into the single
// clinic view patients browse. Rating and review count are always
// recomputed here from the current review set, never read from a
// stored aggregate, so a freshly submitted review is visible in the
// very next listing.
type CatalogService struct {
	Clinics *repository.ClinicRepo
	Doctors *repository.DoctorRepo
	Reviews *repository.ReviewRepo
}

// SearchQuery narrows the clinic listing. Zero values mean "no
// constraint". Known filter keys are parking, nightService, female,
// online, verified and today; Sort is "rating" (default) or
// "reviews".
type SearchQuery struct {
	Text    string
	Dept    string
	Symptom string
	Filters []string
	Sort    string
}

// ListClinics returns every facility with live aggregates, catalog
// entries first, registered facilities in registration order after
// them.
func (s *CatalogService) ListClinics(ctx context.Context) ([]model.Clinic, error) {
	profiles, err := s.Clinics.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	submitted, err := s.Reviews.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byClinic := make(map[string][]model.Review)
	for _, r := range submitted {
		byClinic[r.ClinicID] = append(byClinic[r.ClinicID], r)
	}

	all := seed.Clinics()
	for _, p := range profiles {
		all = append(all, clinicFromProfile(p))
	}
	for i := range all {
		applyAggregates(&all[i], byClinic[all[i].ID])
	}
	return all, nil
}

// GetClinic returns one facility with live aggregates, or
// sql.ErrNoRows when the id is unknown.
func (s *CatalogService) GetClinic(ctx context.Context, id string) (model.Clinic, error) {
	c, ok := seed.Clinic(id)
	if !ok {
		p, err := s.Clinics.GetByID(ctx, id)
		if err != nil {
			return model.Clinic{}, err
		}
		c = clinicFromProfile(p)
	}
	submitted, err := s.Reviews.ListByClinic(ctx, id)
	if err != nil {
		return model.Clinic{}, err
	}
	applyAggregates(&c, submitted)
	return c, nil
}

// ClinicReviews returns the clinic's full review set: editorial
// reviews in catalog order followed by submissions, newest first.
func (s *CatalogService) ClinicReviews(ctx context.Context, clinicID string) ([]model.Review, error) {
	submitted, err := s.Reviews.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	return append(seed.ReviewsFor(clinicID), submitted...), nil
}

// ListDoctors returns every physician, catalog staff first, roster
// additions after them newest first.
func (s *CatalogService) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	roster, err := s.Doctors.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return append(seed.Doctors(), roster...), nil
}

// DoctorsByClinic groups the full physician directory by facility.
func (s *CatalogService) DoctorsByClinic(ctx context.Context) (map[string][]model.Doctor, error) {
	all, err := s.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]model.Doctor, len(all))
	for _, d := range all {
		grouped[d.ClinicID] = append(grouped[d.ClinicID], d)
	}
	return grouped, nil
}

// DoctorsFor returns the physicians working at one clinic.
func (s *CatalogService) DoctorsFor(ctx context.Context, clinicID string) ([]model.Doctor, error) {
	roster, err := s.Doctors.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	return append(seed.DoctorsFor(clinicID), roster...), nil
}

// Search filters and sorts the clinic listing.
func (s *CatalogService) Search(ctx context.Context, q SearchQuery) ([]model.Clinic, error) {
	all, err := s.ListClinics(ctx)
	if err != nil {
		return nil, err
	}

	symptomDept := ""
	if q.Symptom != "" {
		for _, sym := range seed.Symptoms() {
			if sym.Label == q.Symptom {
				symptomDept = sym.Dept
				break
			}
		}
	}

	out := all[:0]
	for _, c := range all {
		if q.Text != "" && !matchesText(c, q.Text) {
			continue
		}
		if q.Dept != "" && q.Dept != "すべて" && !containsString(c.Depts, q.Dept) {
			continue
		}
		if symptomDept != "" && !containsString(c.Depts, symptomDept) {
			continue
		}
		if !matchesFilters(c, q.Filters) {
			continue
		}
		out = append(out, c)
	}

	if q.Sort == "reviews" {
		sort.SliceStable(out, func(i, j int) bool { return out[i].ReviewCount > out[j].ReviewCount })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out, nil
}

// applyAggregates recomputes Rating and ReviewCount from the merged
// review set. With no reviews at all the stored fallback rating
// stands (0 for registered facilities), matching what an unreviewed
// listing should show.
func applyAggregates(c *model.Clinic, submitted []model.Review) {
	merged := len(seed.ReviewsFor(c.ID)) + len(submitted)
	c.ReviewCount = merged
	if merged == 0 {
		return
	}
	sum := 0
	for _, r := range seed.ReviewsFor(c.ID) {
		sum += r.Rating
	}
	for _, r := range submitted {
		sum += r.Rating
	}
	c.Rating = math.Round(float64(sum)/float64(merged)*10) / 10
}

// clinicFromProfile projects an operator profile into the unified
// clinic shape, substituting presentable defaults for fields the
// operator has not filled in yet. Registered facilities are never
// marked verified and always accept same-day visits.
func clinicFromProfile(p model.ClinicProfile) model.Clinic {
	c := model.Clinic{
		ID:           p.ID,
		Name:         p.Name,
		Short:        p.Short,
		Address:      p.Address,
		Lat:          p.Lat,
		Lng:          p.Lng,
		Tel:          p.Tel,
		Hours:        p.Hours,
		Depts:        p.Depts,
		Wait:         "予約制",
		Parking:      p.Parking,
		NightService: p.NightService,
		FemaleDoctor: p.FemaleDoctor,
		Online:       p.Online,
		Today:        true,
		LogoURL:      p.LogoURL,
		Desc:         p.Desc,
		Access:       p.Access,
		Beds:         p.Beds,
		Founded:      p.Founded,
	}
	if c.Short == "" {
		c.Short = truncateRunes(p.Name, 8)
	}
	if c.Lat == 0 {
		c.Lat = 35.6812
	}
	if c.Lng == 0 {
		c.Lng = 139.7671
	}
	if c.Tel == "" {
		c.Tel = "未設定"
	}
	if c.Hours == "" {
		c.Hours = "未設定"
	}
	if len(c.Depts) == 0 {
		c.Depts = []string{"内科"}
	}
	if c.Desc == "" {
		c.Desc = "施設情報を準備中です。"
	}
	if c.Access == "" {
		c.Access = "アクセス情報を準備中です。"
	}
	if c.Founded == 0 {
		c.Founded = time.Now().Year()
	}
	return c
}

func matchesText(c model.Clinic, text string) bool {
	if strings.Contains(c.Name, text) || strings.Contains(c.Address, text) {
		return true
	}
	for _, d := range c.Depts {
		if strings.Contains(d, text) {
			return true
		}
	}
	return false
}

func matchesFilters(c model.Clinic, filters []string) bool {
	for _, f := range filters {
		switch f {
		case "parking":
			if !c.Parking {
				return false
			}
		case "nightService":
			if !c.NightService {
				return false
			}
		case "female":
			if !c.FemaleDoctor {
				return false
			}
		case "online":
			if !c.Online {
				return false
			}
		case "verified":
			if !c.Verified {
				return false
			}
		case "today":
			if !c.Today {
				return false
			}
		}
	}
	return true
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
