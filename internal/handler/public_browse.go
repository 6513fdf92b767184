package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/clinic-review-platform/internal/seed"
	"github.com/iliyamo/clinic-review-platform/internal/service"
)

// PublicHandler serves the guest-facing catalog: facility search,
// facility detail, reviews, rosters and the reference data the search
// form is built from. No authentication is applied to these routes.
type PublicHandler struct {
	Catalog *service.CatalogService
}

func NewPublicHandler(catalog *service.CatalogService) *PublicHandler {
	return &PublicHandler{Catalog: catalog}
}

// SearchClinics handles GET /v1/clinics. With no query parameters it
// returns the full catalog; q, dept, symptom, filters and sort narrow
// and order the result.
func (h *PublicHandler) SearchClinics(c echo.Context) error {
	q := service.SearchQuery{
		Text:    c.QueryParam("q"),
		Dept:    c.QueryParam("dept"),
		Symptom: c.QueryParam("symptom"),
		Sort:    c.QueryParam("sort"),
	}
	if raw := c.QueryParam("filters"); raw != "" {
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				q.Filters = append(q.Filters, f)
			}
		}
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	clinics, err := h.Catalog.Search(ctx, q)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"clinics": clinics, "total": len(clinics)})
}

// GetClinic handles GET /v1/clinics/:id.
func (h *PublicHandler) GetClinic(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	clinic, err := h.Catalog.GetClinic(ctx, c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, clinic)
}

// GetClinicReviews handles GET /v1/clinics/:id/reviews. Editorial
// reviews come first in catalog order, then submitted ones newest
// first.
func (h *PublicHandler) GetClinicReviews(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if _, err := h.Catalog.GetClinic(ctx, c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	reviews, err := h.Catalog.ClinicReviews(ctx, c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": reviews})
}

// GetClinicDoctors handles GET /v1/clinics/:id/doctors.
func (h *PublicHandler) GetClinicDoctors(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if _, err := h.Catalog.GetClinic(ctx, c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	doctors, err := h.Catalog.DoctorsFor(ctx, c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"doctors": doctors})
}

// ListDoctors handles GET /v1/doctors. Returns the full physician
// directory grouped by facility id.
func (h *PublicHandler) ListDoctors(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	doctors, err := h.Catalog.DoctorsByClinic(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"doctors": doctors})
}

// Reference data. These responses never change while the process
// runs, which is why the Redis response cache fronts them.

func (h *PublicHandler) GetSymptoms(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"symptoms": seed.Symptoms()})
}

func (h *PublicHandler) GetDepartments(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"departments": seed.Departments()})
}

func (h *PublicHandler) GetReviewTags(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"tags": seed.ReviewTags()})
}

func (h *PublicHandler) GetTimeSlots(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"visit":  seed.VisitSlots(),
		"online": seed.OnlineSlots(),
	})
}
