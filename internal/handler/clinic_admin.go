package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/clinic-review-platform/internal/service"
)

// ClinicHandler exposes the operator console: the facility profile,
// the physician roster, the booking dashboard, review replies and
// moderation reports. Routes using it sit behind JWT auth plus the
// clinic role guard.
type ClinicHandler struct {
	Lifecycle *service.LifecycleService
}

func NewClinicHandler(lc *service.LifecycleService) *ClinicHandler {
	return &ClinicHandler{Lifecycle: lc}
}

type profileBody struct {
	Name         string   `json:"name"`
	Short        string   `json:"short"`
	Address      string   `json:"address"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Tel          string   `json:"tel"`
	Hours        string   `json:"hours"`
	Access       string   `json:"access"`
	Desc         string   `json:"desc"`
	Depts        []string `json:"depts"`
	Beds         int      `json:"beds"`
	Founded      int      `json:"founded"`
	Parking      bool     `json:"parking"`
	NightService bool     `json:"night_service"`
	FemaleDoctor bool     `json:"female_doctor"`
	Online       bool     `json:"online"`
	LogoURL      string   `json:"logo_url"`
}

// GetProfile handles GET /v1/clinic/profile. 404 means the operator
// has not saved a facility yet.
func (h *ClinicHandler) GetProfile(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Lifecycle.MyClinicProfile(ctx, getUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// SaveProfile handles PUT /v1/clinic/profile, creating the facility
// on first save and replacing it afterwards.
func (h *ClinicHandler) SaveProfile(c echo.Context) error {
	var body profileBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	p, err := h.Lifecycle.SaveClinicProfile(ctx, getUserID(c), service.ProfileInput{
		Name: body.Name, Short: body.Short, Address: body.Address, Lat: body.Lat, Lng: body.Lng,
		Tel: body.Tel, Hours: body.Hours, Access: body.Access, Desc: body.Desc, Depts: body.Depts,
		Beds: body.Beds, Founded: body.Founded, Parking: body.Parking,
		NightService: body.NightService, FemaleDoctor: body.FemaleDoctor,
		Online: body.Online, LogoURL: body.LogoURL,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// AddDoctor handles POST /v1/clinic/doctors.
func (h *ClinicHandler) AddDoctor(c echo.Context) error {
	var body struct {
		Name        string   `json:"name"`
		Title       string   `json:"title"`
		Dept        string   `json:"dept"`
		Exp         int      `json:"exp"`
		Specialties []string `json:"specialties"`
		Bio         string   `json:"bio"`
		Photo       string   `json:"photo"`
		Female      bool     `json:"female"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	d, err := h.Lifecycle.AddDoctor(ctx, getUserID(c), service.DoctorInput{
		Name: body.Name, Title: body.Title, Dept: body.Dept, Exp: body.Exp,
		Specialties: body.Specialties, Bio: body.Bio, Photo: body.Photo, Female: body.Female,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, d)
}

// ListDoctors handles GET /v1/clinic/doctors.
func (h *ClinicHandler) ListDoctors(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	ds, err := h.Lifecycle.MyDoctors(ctx, getUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"doctors": ds})
}

// ReplyReview handles POST /v1/clinic/reviews/:id/reply. A review
// carries a single official answer; a second attempt returns 409.
func (h *ClinicHandler) ReplyReview(c echo.Context) error {
	var body struct {
		Reply string `json:"reply"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	rv, err := h.Lifecycle.ReplyToReview(ctx, getUserID(c), c.Param("id"), body.Reply)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, rv)
}

// Bookings handles GET /v1/clinic/bookings, the appointment dashboard.
func (h *ClinicHandler) Bookings(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	bs, err := h.Lifecycle.ClinicBookings(ctx, getUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bs})
}

// Reports handles GET /v1/clinic/reports, the moderation inbox.
func (h *ClinicHandler) Reports(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	rps, err := h.Lifecycle.ClinicReports(ctx, getUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reports": rps})
}
