// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strings"
	"time"

	"taskhub/config"
	"taskhub/internal/delivery/http/middleware"
	"taskhub/internal/delivery/http/response"
	"taskhub/internal/domain/entity"
	"taskhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	accessTokenCookie  = "access-token"
	refreshTokenCookie = "refresh-token"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc  usecase.AuthUsecase
	cfg *config.Config
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{uc: uc, cfg: cfg}
}

type registerRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	Name            string `json:"name" validate:"required"`
	ProfileImageURL string `json:"profileImageUrl"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userResponse strips sensitive fields before the account leaves the API.
type userResponse struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

type tokenResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         *userResponse `json:"user,omitempty"`
}

func toUserResponse(user *entity.User, baseURL string) *userResponse {
	if user == nil {
		return nil
	}

	return &userResponse{
		ID:              user.ID.String(),
		Email:           user.Email,
		Name:            user.Name,
		ProfileImageURL: resolveImageURL(baseURL, user.ProfileImageURL),
	}
}

// resolveImageURL turns a stored relative profile-image path into an absolute
// URL on this API's public origin. Provider-hosted pictures arrive absolute
// and pass through unchanged.
func resolveImageURL(baseURL, path string) string {
	if path == "" || baseURL == "" || strings.Contains(path, "://") {
		return path
	}

	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		Name:            req.Name,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(output.User, h.cfg.HTTP.BaseURL), "User registered successfully")
}

// Login handles the credential login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         toUserResponse(output.User, h.cfg.HTTP.BaseURL),
	}, "Login successful")
}

// Refresh rotates the refresh token presented as a Bearer credential.
func (h *AuthHandler) Refresh(c echo.Context) error {
	tokenString, err := middleware.BearerToken(c)
	if err != nil {
		return response.Unauthorized(c, "INVALID_TOKEN", err.Error())
	}

	output, err := h.uc.Refresh(c.Request().Context(), tokenString)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	}, "Token refreshed successfully")
}

// Logout ends the authenticated user's session.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "missing authenticated user")
	}

	if err := h.uc.Logout(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// GoogleLogin redirects the browser to the Google consent screen.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	oauthURL, err := h.uc.GoogleAuthURL(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusTemporaryRedirect, oauthURL)
}

// GoogleCallback completes the provider round trip. Tokens travel back to the
// frontend as cookies on a 302 so they never appear in a URL.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	output, err := h.uc.GoogleCallback(c.Request().Context(), usecase.GoogleCallbackInput{
		Code:  c.QueryParam("code"),
		State: c.QueryParam("state"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setTokenCookie(c, accessTokenCookie, output.AccessToken, h.cfg.Auth.AccessTokenTTL)
	h.setTokenCookie(c, refreshTokenCookie, output.RefreshToken, h.cfg.Auth.RefreshTokenTTL)

	return c.Redirect(http.StatusFound, h.cfg.HTTP.FrontendURL)
}

func (h *AuthHandler) setTokenCookie(c echo.Context, name, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   h.cfg.Env.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})
}
