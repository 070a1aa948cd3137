package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mealops/kitchen-system/internal/auth"
	"github.com/mealops/kitchen-system/internal/core/domain"
)

func authFixture(t *testing.T, header string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	tokens := auth.NewTokenManager("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/requests", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	return rec, Auth(tokens)(next)(c)
}

func TestAuth_ValidTokenInjectsClaims(t *testing.T) {
	e := echo.New()
	tokens := auth.NewTokenManager("secret", time.Hour)

	token, err := tokens.Issue(&domain.AppUser{Email: "boss@x.com", Name: "Boss", Role: domain.RoleSuperadmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var email, role string
	next := func(c echo.Context) error {
		email, _ = c.Get("email").(string)
		role, _ = c.Get("role").(string)
		return c.String(http.StatusOK, "ok")
	}

	if err := Auth(tokens)(next)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if email != "boss@x.com" || role != "superadmin" {
		t.Fatalf("claims not injected: email=%q role=%q", email, role)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err := authFixture(t, "")

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, err := authFixture(t, "Token abc")

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_GarbageToken(t *testing.T) {
	_, err := authFixture(t, "Bearer not-a-jwt")

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
