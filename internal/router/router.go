// Package router wires handlers to routes. Public browse endpoints
// carry no auth; patient endpoints require a valid access token;
// operator endpoints additionally require the clinic role.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/clinic-review-platform/internal/handler"
	"github.com/iliyamo/clinic-review-platform/internal/middleware"
	"github.com/iliyamo/clinic-review-platform/internal/model"
	"github.com/iliyamo/clinic-review-platform/internal/repository"
)

// RegisterRoutes registers routes that need no authentication beyond
// the health check used by monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account endpoints. Register, login and
// logout are open; /v1/me and the activity log sit behind JWT.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, sessions *repository.SessionRepo) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret, sessions))
	auth.GET("/me", a.Me)
	auth.POST("/me/upgrade", a.Upgrade)
	auth.GET("/audit-logs", a.AuditLogs)
}

// RegisterPublic registers the guest browse surface. The reference
// data group is fronted by the Redis response cache when one is
// configured; facility data is not cached because aggregates move
// with every submitted review.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/clinics", p.SearchClinics)
	e.GET("/v1/clinics/:id", p.GetClinic)
	e.GET("/v1/clinics/:id/reviews", p.GetClinicReviews)
	e.GET("/v1/clinics/:id/doctors", p.GetClinicDoctors)
	e.GET("/v1/doctors", p.ListDoctors)

	meta := e.Group("/v1/meta")
	if cache != nil {
		meta.Use(cache)
	}
	meta.GET("/symptoms", p.GetSymptoms)
	meta.GET("/departments", p.GetDepartments)
	meta.GET("/tags", p.GetReviewTags)
	meta.GET("/time-slots", p.GetTimeSlots)
}

// RegisterPatient registers the signed-in patient surface.
func RegisterPatient(e *echo.Echo, h *handler.PatientHandler, jwtSecret string, sessions *repository.SessionRepo) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret, sessions))
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings", h.MyBookings)
	g.POST("/clinics/:id/reviews", h.SubmitReview)
	g.POST("/clinics/:id/favorite", h.ToggleFavorite)
	g.GET("/favorites", h.ListFavorites)
	g.POST("/reviews/:id/helpful", h.VoteHelpful)
	g.POST("/reviews/:id/report", h.ReportReview)
}

// RegisterClinic registers the operator console behind the clinic
// role guard.
func RegisterClinic(e *echo.Echo, h *handler.ClinicHandler, jwtSecret string, sessions *repository.SessionRepo) {
	g := e.Group("/v1/clinic")
	g.Use(middleware.JWTAuth(jwtSecret, sessions))
	g.Use(middleware.RequireRole(model.RoleClinic))
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.SaveProfile)
	g.GET("/doctors", h.ListDoctors)
	g.POST("/doctors", h.AddDoctor)
	g.POST("/reviews/:id/reply", h.ReplyReview)
	g.GET("/bookings", h.Bookings)
	g.GET("/reports", h.Reports)
}
