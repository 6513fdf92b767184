package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/clinic-review-platform/internal/database"
	"github.com/iliyamo/clinic-review-platform/internal/repository"
	"github.com/iliyamo/clinic-review-platform/internal/service"
)

func newAuthTestHandler(t *testing.T) *AuthHandler {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Bootstrap(context.Background(), db); err != nil {
		t.Fatalf("bootstrap schema: %v", err)
	}
	audit := &service.Auditor{Repo: repository.NewAuditRepo(db, 1000)}
	auth := &service.AuthService{
		Users:        repository.NewUserRepo(db),
		Sessions:     repository.NewSessionRepo(db),
		Clinics:      repository.NewClinicRepo(db),
		Audit:        audit,
		JWTSecret:    "test-secret",
		AccessTTLMin: 15,
		BcryptCost:   4,
	}
	return NewAuthHandler(auth, audit)
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// The register and login payloads embed the account, and the stored
// model carries a bcrypt hash. The wire shape must be the sanitized
// view: snake_case fields only, never the hash.
func TestRegisterResponseOmitsPasswordHash(t *testing.T) {
	h := newAuthTestHandler(t)
	e := echo.New()

	c, rec := postJSON(e, "/v1/auth/register", `{"name":"花子","email":"hanako@example.com","password":"password1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d, want %d", rec.Code, http.StatusCreated)
	}
	body := rec.Body.String()
	for _, leak := range []string{"PasswordHash", "password_hash", "$2a$"} {
		if strings.Contains(body, leak) {
			t.Errorf("register response contains %q: %s", leak, body)
		}
	}

	var out struct {
		User        map[string]json.RawMessage `json:"user"`
		AccessToken string                     `json:"access_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.AccessToken == "" {
		t.Error("access_token missing from register response")
	}
	for _, key := range []string{"id", "name", "email", "role", "avatar", "created_at"} {
		if _, ok := out.User[key]; !ok {
			t.Errorf("user view missing %q: %s", key, body)
		}
	}
	if len(out.User) != 6 {
		t.Errorf("user view has %d fields, want 6: %s", len(out.User), body)
	}
}

func TestLoginAndMeResponsesOmitPasswordHash(t *testing.T) {
	h := newAuthTestHandler(t)
	e := echo.New()

	c, rec := postJSON(e, "/v1/auth/register", `{"name":"花子","email":"hanako@example.com","password":"password1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}

	c, rec = postJSON(e, "/v1/auth/login", `{"email":"hanako@example.com","password":"password1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("login status %d, want %d", rec.Code, http.StatusOK)
	}
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Errorf("login response contains bcrypt hash: %s", rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec = httptest.NewRecorder()
	if err := h.Me(e.NewContext(req, rec)); err != nil {
		t.Fatalf("me: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("me status %d, want %d", rec.Code, http.StatusOK)
	}
	if strings.Contains(rec.Body.String(), "$2a$") || strings.Contains(rec.Body.String(), "PasswordHash") {
		t.Errorf("me response leaks stored credentials: %s", rec.Body.String())
	}
}
