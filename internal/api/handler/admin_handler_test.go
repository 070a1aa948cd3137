package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mealops/kitchen-system/internal/core/domain"
	"github.com/mealops/kitchen-system/internal/core/ports"
)

type stubDirectoryService struct {
	users []domain.AppUser
}

func (s *stubDirectoryService) Create(_ context.Context, _ ports.CreateUserInput) (*domain.AppUser, error) {
	return nil, nil
}

func (s *stubDirectoryService) ListAll(_ context.Context) ([]domain.AppUser, error) {
	return s.users, nil
}

func (s *stubDirectoryService) Verify(_ context.Context, _, _ string) (*domain.AppUser, error) {
	return nil, nil
}

func adminContext(e *echo.Echo, method, target string, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("email", "admin@x.com")
	c.Set("role", "superadmin")
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func TestAdminHandler_ListRequests(t *testing.T) {
	e := newEcho()
	reg := &stubRegistrationService{
		listFn: func(ctx context.Context) ([]domain.RegistrationRequest, error) {
			return []domain.RegistrationRequest{
				{ID: "req-2", Email: "b@x.com", Role: domain.RoleRider, CreatedAt: time.Now()},
				{ID: "req-1", Email: "a@x.com", Role: domain.RoleCook, CreatedAt: time.Now()},
			}, nil
		},
	}
	handler := NewAdminHandler(reg, &stubDirectoryService{})

	c, rec := adminContext(e, http.MethodGet, "/api/admin/requests", "")
	if err := handler.ListRequests(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Items []domain.RegistrationRequest `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Items) != 2 || resp.Items[0].ID != "req-2" {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
}

func TestAdminHandler_ListRequests_EmptyIsList(t *testing.T) {
	e := newEcho()
	reg := &stubRegistrationService{
		listFn: func(ctx context.Context) ([]domain.RegistrationRequest, error) {
			return nil, nil
		},
	}
	handler := NewAdminHandler(reg, &stubDirectoryService{})

	c, rec := adminContext(e, http.MethodGet, "/api/admin/requests", "")
	if err := handler.ListRequests(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); !json.Valid([]byte(body)) || body == `{"items":null}`+"\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestAdminHandler_Approve(t *testing.T) {
	e := newEcho()
	reg := &stubRegistrationService{
		approveFn: func(ctx context.Context, id string) (*domain.AppUser, error) {
			if id != "req-7" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &domain.AppUser{Email: "new@x.com", Role: domain.RoleRefill}, nil
		},
	}
	handler := NewAdminHandler(reg, &stubDirectoryService{})

	c, rec := adminContext(e, http.MethodPost, "/api/admin/requests/req-7/approve", "req-7")
	if err := handler.ApproveRequest(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminHandler_Approve_NotFoundPropagates(t *testing.T) {
	e := newEcho()
	reg := &stubRegistrationService{
		approveFn: func(ctx context.Context, id string) (*domain.AppUser, error) {
			return nil, domain.ErrRequestNotFound
		},
	}
	handler := NewAdminHandler(reg, &stubDirectoryService{})

	c, _ := adminContext(e, http.MethodPost, "/api/admin/requests/x/approve", "x")
	if err := handler.ApproveRequest(c); err != domain.ErrRequestNotFound {
		t.Fatalf("expected ErrRequestNotFound to propagate, got %v", err)
	}
}

func TestAdminHandler_Decline(t *testing.T) {
	e := newEcho()
	declined := ""
	reg := &stubRegistrationService{
		declineFn: func(ctx context.Context, id string) error {
			declined = id
			return nil
		},
	}
	handler := NewAdminHandler(reg, &stubDirectoryService{})

	c, rec := adminContext(e, http.MethodPost, "/api/admin/requests/req-3/decline", "req-3")
	if err := handler.DeclineRequest(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || declined != "req-3" {
		t.Fatalf("decline not applied: code=%d id=%q", rec.Code, declined)
	}
}

func TestAdminHandler_ListUsers(t *testing.T) {
	e := newEcho()
	dir := &stubDirectoryService{users: []domain.AppUser{
		{Email: "a@x.com", Role: domain.RoleCook},
		{Email: "b@x.com", Role: domain.RoleRider},
	}}
	handler := NewAdminHandler(&stubRegistrationService{}, dir)

	c, rec := adminContext(e, http.MethodGet, "/api/admin/users", "")
	if err := handler.ListUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Items []domain.AppUser `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Items) != 2 || resp.Items[0].Email != "a@x.com" {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
}

func TestAdminHandler_MissingClaims(t *testing.T) {
	e := newEcho()
	handler := NewAdminHandler(&stubRegistrationService{}, &stubDirectoryService{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/requests", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.ListRequests(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}
