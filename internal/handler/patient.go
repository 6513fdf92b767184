package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/clinic-review-platform/internal/service"
)

// PatientHandler exposes the signed-in patient surface: booking an
// appointment, publishing and reacting to reviews, and bookmarks.
// JWT middleware runs before every method, so getUserID is expected
// to succeed; the service re-checks anyway.
type PatientHandler struct {
	Lifecycle *service.LifecycleService
}

func NewPatientHandler(lc *service.LifecycleService) *PatientHandler {
	return &PatientHandler{Lifecycle: lc}
}

// CreateBooking handles POST /v1/bookings.
func (h *PatientHandler) CreateBooking(c echo.Context) error {
	var body struct {
		ClinicID string `json:"clinic_id"`
		Type     string `json:"type"`
		Date     string `json:"date"`
		Time     string `json:"time"`
		Dept     string `json:"dept"`
		Concern  string `json:"concern"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	b, err := h.Lifecycle.ConfirmBooking(ctx, getUserID(c), service.BookingInput{
		ClinicID: body.ClinicID, Type: body.Type, Date: body.Date,
		Time: body.Time, Dept: body.Dept, Concern: body.Concern,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// MyBookings handles GET /v1/bookings.
func (h *PatientHandler) MyBookings(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	bs, err := h.Lifecycle.MyBookings(ctx, getUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bs})
}

// SubmitReview handles POST /v1/clinics/:id/reviews.
func (h *PatientHandler) SubmitReview(c echo.Context) error {
	var body struct {
		Rating    int      `json:"rating"`
		Dept      string   `json:"dept"`
		DoctorID  string   `json:"doctor_id"`
		Title     string   `json:"title"`
		Body      string   `json:"body"`
		Tags      []string `json:"tags"`
		DrRating  int      `json:"dr_rating"`
		FacRating int      `json:"fac_rating"`
		WaitRate  int      `json:"wait_rating"`
		Anonymous bool     `json:"anonymous"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	rv, err := h.Lifecycle.SubmitReview(ctx, getUserID(c), service.ReviewInput{
		ClinicID: c.Param("id"), Rating: body.Rating, Dept: body.Dept, DoctorID: body.DoctorID,
		Title: body.Title, Body: body.Body, Tags: body.Tags,
		DrRating: body.DrRating, FacRating: body.FacRating, WaitRate: body.WaitRate,
		Anonymous: body.Anonymous,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, rv)
}

// VoteHelpful handles POST /v1/reviews/:id/helpful and returns the
// updated counter. Voting twice is a no-op, not an error.
func (h *PatientHandler) VoteHelpful(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	helpful, err := h.Lifecycle.VoteHelpful(ctx, getUserID(c), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"helpful": helpful})
}

// ReportReview handles POST /v1/reviews/:id/report.
func (h *PatientHandler) ReportReview(c echo.Context) error {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	rp, err := h.Lifecycle.ReportReview(ctx, getUserID(c), c.Param("id"), body.Reason)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, rp)
}

// ToggleFavorite handles POST /v1/clinics/:id/favorite and reports
// whether the clinic is now bookmarked.
func (h *PatientHandler) ToggleFavorite(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	on, err := h.Lifecycle.ToggleFavorite(ctx, getUserID(c), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"favorited": on})
}

// ListFavorites handles GET /v1/favorites.
func (h *PatientHandler) ListFavorites(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	clinics, err := h.Lifecycle.FavoriteClinics(ctx, getUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"clinics": clinics})
}
