package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mealops/kitchen-system/internal/core/domain"
	"github.com/mealops/kitchen-system/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	registration ports.RegistrationService
}

func NewAuthHandler(authService ports.AuthService, registration ports.RegistrationService) *AuthHandler {
	return &AuthHandler{authService: authService, registration: registration}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=superadmin rider cook supervisor refill"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  *domain.AppUser `json:"user"`
}

type signupResponse struct {
	Request *domain.RegistrationRequest `json:"request"`
}

// Login authenticates an operator and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout clears the current operator session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.authService.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{"status": "signed_out"})
}

// Signup files a registration request awaiting administrative approval.
// No account exists until a superadmin or supervisor approves it.
//
// @Summary      Submit a registration request
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      202   {object}  signupResponse
// @Failure      400   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.registration.Submit(c.Request().Context(), ports.SubmitRequestInput{
		Email:    req.Email,
		Name:     req.Name,
		Role:     domain.Role(req.Role),
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, signupResponse{Request: request})
}
