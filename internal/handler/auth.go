package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/clinic-review-platform/internal/model"
	"github.com/iliyamo/clinic-review-platform/internal/service"
)

// AuthHandler exposes account lifecycle endpoints: registration,
// login, logout, session introspection, role upgrade and the activity
// log. All validation and remote mirroring live in the service; the
// handler binds the body and maps errors to HTTP.
type AuthHandler struct {
	Auth  *service.AuthService
	Audit *service.Auditor
}

func NewAuthHandler(auth *service.AuthService, audit *service.Auditor) *AuthHandler {
	return &AuthHandler{Auth: auth, Audit: audit}
}

type credentialsBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// userPart is the public account view. The stored model carries the
// password hash, which must never leave the server.
type userPart struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

func userView(u model.User) userPart {
	return userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Avatar: u.Avatar, CreatedAt: u.CreatedAt}
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var body credentialsBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Auth.Signup(ctx, service.SignupInput{
		Name: body.Name, Email: body.Email, Password: body.Password, Role: body.Role,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"user":         userView(res.User),
		"access_token": res.Token.Token,
		"expires_at":   res.Token.Exp,
	})
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var body credentialsBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Auth.Login(ctx, body.Email, body.Password)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":         userView(res.User),
		"access_token": res.Token.Token,
		"expires_at":   res.Token.Exp,
	})
}

// Logout handles POST /v1/auth/logout. Logging out when already
// signed out succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Auth.Logout(ctx); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /v1/me and returns the signed-in account.
func (h *AuthHandler) Me(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	u, err := h.Auth.CurrentUser(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, userView(u))
}

// Upgrade handles POST /v1/me/upgrade, switching a patient
// account to a clinic operator account.
func (h *AuthHandler) Upgrade(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	u, err := h.Auth.UpgradeRole(ctx, getUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, userView(u))
}

// AuditLogs handles GET /v1/audit-logs?limit=n, newest first.
func (h *AuthHandler) AuditLogs(c echo.Context) error {
	limit := 100
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	logs, err := h.Audit.Recent(ctx, limit)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": logs})
}
