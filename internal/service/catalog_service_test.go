package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/iliyamo/clinic-review-platform/internal/model"
	"github.com/iliyamo/clinic-review-platform/internal/seed"
)

// meanRating mirrors the presentation rule: mean rounded to one
// decimal.
func meanRating(reviews []model.Review) float64 {
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}

func TestClinicAggregatesFromEditorialReviews(t *testing.T) {
	env := newTestEnv(t, nil)

	c, err := env.Catalog.GetClinic(context.Background(), "1")
	if err != nil {
		t.Fatalf("get clinic: %v", err)
	}
	editorial := seed.ReviewsFor("1")
	if c.ReviewCount != len(editorial) {
		t.Errorf("review count = %d, want %d", c.ReviewCount, len(editorial))
	}
	if want := meanRating(editorial); c.Rating != want {
		t.Errorf("rating = %v, want %v", c.Rating, want)
	}
}

func TestClinicAggregatesIncludeSubmittedReviews(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	rv := model.Review{
		ID: "rv_test1", ClinicID: "1", UserID: "u_1", Author: "花子", Avatar: "花",
		Age: "非公開", Date: "2026-08-30", Rating: 5, Dept: "内科", Body: "良かったです",
	}
	if err := env.Reviews.Insert(ctx, rv); err != nil {
		t.Fatalf("insert review: %v", err)
	}

	c, err := env.Catalog.GetClinic(ctx, "1")
	if err != nil {
		t.Fatalf("get clinic: %v", err)
	}
	merged := append(seed.ReviewsFor("1"), rv)
	if c.ReviewCount != len(merged) {
		t.Errorf("review count = %d, want %d", c.ReviewCount, len(merged))
	}
	if want := meanRating(merged); c.Rating != want {
		t.Errorf("rating = %v, want %v", c.Rating, want)
	}

	// Recomputing on an unchanged review set must not drift.
	again, err := env.Catalog.GetClinic(ctx, "1")
	if err != nil {
		t.Fatalf("get clinic again: %v", err)
	}
	if again.Rating != c.Rating || again.ReviewCount != c.ReviewCount {
		t.Errorf("aggregates drifted: %v/%d -> %v/%d", c.Rating, c.ReviewCount, again.Rating, again.ReviewCount)
	}
}

func TestRegisteredClinicDefaults(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	p := model.ClinicProfile{ID: "clinic_x1", OwnerUserID: "u_owner", Name: "ながいなまえのクリニック品川"}
	if err := env.Clinics.Upsert(ctx, p); err != nil {
		t.Fatalf("upsert profile: %v", err)
	}

	c, err := env.Catalog.GetClinic(ctx, "clinic_x1")
	if err != nil {
		t.Fatalf("get clinic: %v", err)
	}
	if c.Wait != "予約制" {
		t.Errorf("wait = %q", c.Wait)
	}
	if c.Verified {
		t.Error("registered clinic must not be verified")
	}
	if !c.Today {
		t.Error("registered clinic must accept same-day visits")
	}
	if len(c.Depts) != 1 || c.Depts[0] != "内科" {
		t.Errorf("depts = %v", c.Depts)
	}
	if c.Tel != "未設定" || c.Hours != "未設定" {
		t.Errorf("tel=%q hours=%q", c.Tel, c.Hours)
	}
	if c.Desc != "施設情報を準備中です。" || c.Access != "アクセス情報を準備中です。" {
		t.Errorf("desc=%q access=%q", c.Desc, c.Access)
	}
	if c.Lat != 35.6812 || c.Lng != 139.7671 {
		t.Errorf("lat=%v lng=%v", c.Lat, c.Lng)
	}
	if c.Founded != time.Now().Year() {
		t.Errorf("founded = %d", c.Founded)
	}
	if got := []rune(c.Short); len(got) != 8 {
		t.Errorf("short = %q, want first 8 runes of the name", c.Short)
	}
	if c.Rating != 0 || c.ReviewCount != 0 {
		t.Errorf("unreviewed clinic: rating=%v count=%d", c.Rating, c.ReviewCount)
	}
}

func TestAggregatesOnClinicWithoutEditorialReviews(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	p := model.ClinicProfile{ID: "clinic_x2", OwnerUserID: "u_owner", Name: "新宿ひまわり内科"}
	if err := env.Clinics.Upsert(ctx, p); err != nil {
		t.Fatalf("upsert profile: %v", err)
	}
	for i, rating := range []int{4, 5} {
		rv := model.Review{
			ID: fmt.Sprintf("rv_x2_%d", i), ClinicID: "clinic_x2", UserID: "u_1",
			Author: "花子", Avatar: "花", Age: "非公開", Date: "2026-08-30",
			Rating: rating, Dept: "内科", Body: "受診しました",
		}
		if err := env.Reviews.Insert(ctx, rv); err != nil {
			t.Fatalf("insert review: %v", err)
		}
	}

	c, err := env.Catalog.GetClinic(ctx, "clinic_x2")
	if err != nil {
		t.Fatalf("get clinic: %v", err)
	}
	if c.Rating != 4.5 || c.ReviewCount != 2 {
		t.Errorf("rating=%v count=%d, want 4.5/2", c.Rating, c.ReviewCount)
	}
}

func TestDoctorsByClinicGroupsRosterWithCatalog(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	added := model.Doctor{ID: "doc_t1", ClinicID: "1", Name: "佐藤一", Title: "医師", Dept: "内科", Photo: "DR"}
	if err := env.Doctors.Add(ctx, added); err != nil {
		t.Fatalf("add doctor: %v", err)
	}

	grouped, err := env.Catalog.DoctorsByClinic(ctx)
	if err != nil {
		t.Fatalf("doctors by clinic: %v", err)
	}
	want := len(seed.DoctorsFor("1")) + 1
	if got := len(grouped["1"]); got != want {
		t.Errorf("clinic 1 roster = %d, want %d", got, want)
	}
	last := grouped["1"][len(grouped["1"])-1]
	if last.ID != "doc_t1" {
		t.Errorf("roster addition not appended after catalog staff: %+v", last)
	}
}

func TestGetClinicUnknown(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.Catalog.GetClinic(context.Background(), "no-such-id")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("got %v, want sql.ErrNoRows", err)
	}
}

func TestClinicReviewsOrder(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	older := model.Review{
		ID: "rv_old", ClinicID: "1", UserID: "u_1", Author: "一郎", Avatar: "一",
		Age: "非公開", Date: "2026-08-01", Rating: 4, Body: "普通でした",
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	newer := model.Review{
		ID: "rv_new", ClinicID: "1", UserID: "u_2", Author: "二郎", Avatar: "二",
		Age: "非公開", Date: "2026-08-30", Rating: 5, Body: "最高でした",
		CreatedAt: time.Now().UTC(),
	}
	for _, rv := range []model.Review{older, newer} {
		if err := env.Reviews.Insert(ctx, rv); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	got, err := env.Catalog.ClinicReviews(ctx, "1")
	if err != nil {
		t.Fatalf("clinic reviews: %v", err)
	}
	editorial := seed.ReviewsFor("1")
	if len(got) != len(editorial)+2 {
		t.Fatalf("len = %d, want %d", len(got), len(editorial)+2)
	}
	for i, want := range editorial {
		if got[i].ID != want.ID {
			t.Fatalf("position %d = %q, want editorial %q", i, got[i].ID, want.ID)
		}
	}
	if got[len(editorial)].ID != "rv_new" || got[len(editorial)+1].ID != "rv_old" {
		t.Errorf("submitted tail order = %q, %q", got[len(editorial)].ID, got[len(editorial)+1].ID)
	}
}

func TestSearchByText(t *testing.T) {
	env := newTestEnv(t, nil)

	got, err := env.Catalog.Search(context.Background(), SearchQuery{Text: "渋谷"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("no results for 渋谷")
	}
	for _, c := range got {
		if !matchesText(c, "渋谷") {
			t.Errorf("clinic %s does not match 渋谷", c.ID)
		}
	}
}

func TestSearchByDepartment(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	all, err := env.Catalog.Search(ctx, SearchQuery{Dept: "すべて"})
	if err != nil {
		t.Fatalf("search all: %v", err)
	}
	if len(all) != len(seed.Clinics()) {
		t.Errorf("すべて returned %d clinics, want %d", len(all), len(seed.Clinics()))
	}

	derm, err := env.Catalog.Search(ctx, SearchQuery{Dept: "皮膚科"})
	if err != nil {
		t.Fatalf("search dept: %v", err)
	}
	for _, c := range derm {
		if !containsString(c.Depts, "皮膚科") {
			t.Errorf("clinic %s lacks 皮膚科", c.ID)
		}
	}
	if len(derm) == len(all) {
		t.Error("department filter did not narrow the listing")
	}
}

func TestSearchBySymptom(t *testing.T) {
	env := newTestEnv(t, nil)

	// 腰痛・肩こり resolves to 整形外科.
	got, err := env.Catalog.Search(context.Background(), SearchQuery{Symptom: "腰痛・肩こり"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("no results")
	}
	for _, c := range got {
		if !containsString(c.Depts, "整形外科") {
			t.Errorf("clinic %s lacks 整形外科", c.ID)
		}
	}
}

func TestSearchFilters(t *testing.T) {
	env := newTestEnv(t, nil)

	got, err := env.Catalog.Search(context.Background(), SearchQuery{Filters: []string{"online", "parking"}})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, c := range got {
		if !c.Online || !c.Parking {
			t.Errorf("clinic %s fails filters: online=%v parking=%v", c.ID, c.Online, c.Parking)
		}
	}
}

func TestSearchSort(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	byRating, err := env.Catalog.Search(ctx, SearchQuery{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for i := 1; i < len(byRating); i++ {
		if byRating[i-1].Rating < byRating[i].Rating {
			t.Fatalf("not sorted by rating at %d: %v < %v", i, byRating[i-1].Rating, byRating[i].Rating)
		}
	}

	byReviews, err := env.Catalog.Search(ctx, SearchQuery{Sort: "reviews"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for i := 1; i < len(byReviews); i++ {
		if byReviews[i-1].ReviewCount < byReviews[i].ReviewCount {
			t.Fatalf("not sorted by review count at %d", i)
		}
	}
}
