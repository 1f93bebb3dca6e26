package handler

import (
	"net/http"

	"taskhub/internal/delivery/http/middleware"
	"taskhub/internal/delivery/http/response"
	"taskhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// IntegrationHandler exposes provider-token capabilities to the frontend.
type IntegrationHandler struct {
	uc usecase.CalendarUsecase
}

// NewIntegrationHandler is the constructor for IntegrationHandler, injected by Fx.
func NewIntegrationHandler(uc usecase.CalendarUsecase) *IntegrationHandler {
	return &IntegrationHandler{uc: uc}
}

// GoogleAccessToken hands the frontend a short-lived Google access token
// minted from the stored refresh token, for calendar API calls.
func (h *IntegrationHandler) GoogleAccessToken(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "missing authenticated user")
	}

	accessToken, err := h.uc.GoogleAccessToken(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"accessToken": accessToken}, "Google access token issued")
}
