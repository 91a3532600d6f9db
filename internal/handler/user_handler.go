package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateProfileRequest represents a profile update. Only the display name is mutable.
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateProfile godoc
// @Summary Update the authenticated user's display name
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile data"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.svc.UpdateProfile(c.Request().Context(), user.ID, req.Name)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, updated)
}
