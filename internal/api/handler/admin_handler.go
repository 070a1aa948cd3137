package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mealops/kitchen-system/internal/core/domain"
	"github.com/mealops/kitchen-system/internal/core/ports"
)

// AdminHandler serves the registration-approval and user listing endpoints.
type AdminHandler struct {
	registration ports.RegistrationService
	directory    ports.DirectoryService
}

func NewAdminHandler(registration ports.RegistrationService, directory ports.DirectoryService) *AdminHandler {
	return &AdminHandler{registration: registration, directory: directory}
}

type requestListResponse struct {
	Items []domain.RegistrationRequest `json:"items"`
}

type userListResponse struct {
	Items []domain.AppUser `json:"items"`
}

type approveResponse struct {
	User *domain.AppUser `json:"user"`
}

// ListRequests returns all pending registration requests, newest first.
//
// @Summary      List pending registration requests
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  requestListResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/requests [get]
func (h *AdminHandler) ListRequests(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	items, err := h.registration.List(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.RegistrationRequest{}
	}
	return c.JSON(http.StatusOK, requestListResponse{Items: items})
}

// ApproveRequest materializes a pending request into a user account.
//
// @Summary      Approve a registration request
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  approveResponse
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/admin/requests/{id}/approve [post]
func (h *AdminHandler) ApproveRequest(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	user, err := h.registration.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, approveResponse{User: user})
}

// DeclineRequest discards a pending request without creating an account.
//
// @Summary      Decline a registration request
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/requests/{id}/decline [post]
func (h *AdminHandler) DeclineRequest(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	if err := h.registration.Decline(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "declined"})
}

// ListUsers returns every registered user in insertion order.
//
// @Summary      List registered users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	items, err := h.directory.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.AppUser{}
	}
	return c.JSON(http.StatusOK, userListResponse{Items: items})
}
