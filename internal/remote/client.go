package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Client talks to the hosted gateway over HTTP. Every request carries
// the project API key; after SignIn the user's access token replaces
// the key in the Authorization header so row-level policies see the
// real identity.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client

	mu    sync.Mutex
	token string // current user access token, empty when signed out
}

// NewClient builds a gateway client. Both values must be non-empty;
// callers that find them unset should not construct a client at all.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

var _ Gateway = (*Client)(nil)

type authResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID string `json:"id"`
	} `json:"user"`
}

// SignUp registers the account remotely. Depending on project
// settings the response may or may not include a live session; an
// empty AccessToken means email confirmation is pending.
func (c *Client) SignUp(ctx context.Context, email, password string) (Session, error) {
	var out authResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/v1/signup", map[string]string{
		"email": email, "password": password,
	}, &out)
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: out.User.ID, AccessToken: out.AccessToken}, nil
}

// SignIn exchanges credentials for a session. A 400 from the token
// endpoint maps to ErrInvalidLogin.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	var out authResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", map[string]string{
		"email": email, "password": password,
	}, &out)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusBadRequest {
			return Session{}, ErrInvalidLogin
		}
		return Session{}, err
	}
	c.mu.Lock()
	c.token = out.AccessToken
	c.mu.Unlock()
	return Session{UserID: out.User.ID, AccessToken: out.AccessToken}, nil
}

// SignOut revokes the remote session and drops the cached token.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/auth/v1/logout", nil, nil)
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	return err
}

func (c *Client) UpsertProfile(ctx context.Context, p Profile) error {
	return c.upsert(ctx, "profiles", p)
}

func (c *Client) GetProfile(ctx context.Context, id string) (Profile, error) {
	var rows []Profile
	if err := c.doJSON(ctx, http.MethodGet, "/rest/v1/profiles?id=eq."+url.QueryEscape(id), nil, &rows); err != nil {
		return Profile{}, err
	}
	if len(rows) == 0 {
		return Profile{}, fmt.Errorf("remote: profile %s not found", id)
	}
	return rows[0], nil
}

func (c *Client) UpsertClinic(ctx context.Context, rec ClinicRecord) error {
	return c.upsert(ctx, "clinics", rec)
}

func (c *Client) ListClinics(ctx context.Context) ([]ClinicRecord, error) {
	var rows []ClinicRecord
	err := c.doJSON(ctx, http.MethodGet, "/rest/v1/clinics?order=updated_at.desc", nil, &rows)
	return rows, err
}

func (c *Client) UpsertDoctor(ctx context.Context, rec DoctorRecord) error {
	return c.upsert(ctx, "clinic_doctors", rec)
}

func (c *Client) ListDoctors(ctx context.Context) ([]DoctorRecord, error) {
	var rows []DoctorRecord
	err := c.doJSON(ctx, http.MethodGet, "/rest/v1/clinic_doctors?order=created_at.desc", nil, &rows)
	return rows, err
}

func (c *Client) InsertBooking(ctx context.Context, rec BookingRecord) error {
	return c.insert(ctx, "bookings", rec)
}

func (c *Client) ListBookings(ctx context.Context) ([]BookingRecord, error) {
	var rows []BookingRecord
	err := c.doJSON(ctx, http.MethodGet, "/rest/v1/bookings?order=created_at.desc", nil, &rows)
	return rows, err
}

func (c *Client) InsertReview(ctx context.Context, rec ReviewRecord) error {
	return c.insert(ctx, "reviews", rec)
}

func (c *Client) UpdateReview(ctx context.Context, id string, patch map[string]any) error {
	return c.doJSON(ctx, http.MethodPatch, "/rest/v1/reviews?id=eq."+url.QueryEscape(id), patch, nil)
}

func (c *Client) ListReviews(ctx context.Context) ([]ReviewRecord, error) {
	var rows []ReviewRecord
	err := c.doJSON(ctx, http.MethodGet, "/rest/v1/reviews?order=created_at.desc", nil, &rows)
	return rows, err
}

func (c *Client) InsertReport(ctx context.Context, rec ReportRecord) error {
	return c.insert(ctx, "review_reports", rec)
}

func (c *Client) InsertAuditLog(ctx context.Context, rec AuditRecord) error {
	return c.insert(ctx, "audit_logs", rec)
}

func (c *Client) insert(ctx context.Context, table string, payload any) error {
	return c.doJSON(ctx, http.MethodPost, "/rest/v1/"+table, payload, nil)
}

func (c *Client) upsert(ctx context.Context, table string, payload any) error {
	return c.doJSONWith(ctx, http.MethodPost, "/rest/v1/"+table, payload, nil, map[string]string{
		"Prefer": "resolution=merge-duplicates",
	})
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	return c.doJSONWith(ctx, method, path, payload, out, nil)
}

func (c *Client) doJSONWith(ctx context.Context, method, path string, payload, out any, extra map[string]string) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	c.mu.Lock()
	bearer := c.token
	c.mu.Unlock()
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	for k, v := range extra {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{code: resp.StatusCode, body: string(msg)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// statusError carries the HTTP status of a failed gateway call.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("remote: http %d: %s", e.code, e.body)
}
