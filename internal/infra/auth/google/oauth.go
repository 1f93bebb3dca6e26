// Package google implements the outbound OAuth operations against Google's
// authorization and token endpoints.
package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskhub/config"
	"taskhub/internal/domain/entity"
	"taskhub/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultTokenURL = "https://oauth2.googleapis.com/token"

	// Calendar scope is requested up front so the stored refresh token can
	// later drive the calendar sync capability.
	oauthScopes = "openid email profile https://www.googleapis.com/auth/calendar"

	defaultHTTPTimeout = 10 * time.Second
)

// OAuthService handles the Google OAuth code flow and refresh-grant exchange.
type OAuthService struct {
	clientID     string
	clientSecret string
	redirectURI  string
	responseType string

	authURL  string
	tokenURL string
	client   *http.Client
}

// NewOAuthService creates a new Google OAuth service.
func NewOAuthService(cfg *config.Config) (service.OAuthService, error) {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" || cfg.GoogleOAuth.ClientSecret == "" {
		return nil, errors.New("google oauth client credentials must be provided")
	}

	return &OAuthService{
		clientID:     cfg.GoogleOAuth.ClientID,
		clientSecret: cfg.GoogleOAuth.ClientSecret,
		redirectURI:  cfg.GoogleOAuth.RedirectURI,
		responseType: cfg.GoogleOAuth.ResponseType,
		authURL:      defaultAuthURL,
		tokenURL:     defaultTokenURL,
		client:       &http.Client{Timeout: defaultHTTPTimeout},
	}, nil
}

// BuildAuthorizationURL constructs the Google OAuth authorization URL with the
// state parameter for CSRF protection. access_type=offline plus prompt=consent
// makes Google return a refresh token on every completed consent.
func (s *OAuthService) BuildAuthorizationURL(state string) string {
	params := url.Values{}
	params.Set("client_id", s.clientID)
	params.Set("redirect_uri", s.redirectURI)
	params.Set("response_type", s.responseType)
	params.Set("scope", oauthScopes)
	params.Set("state", state)
	params.Set("access_type", "offline")
	params.Set("prompt", "consent")

	return s.authURL + "?" + params.Encode()
}

// ExchangeCode exchanges an authorization code for provider tokens.
func (s *OAuthService) ExchangeCode(ctx context.Context, code string) (*service.ProviderTokens, error) {
	data := url.Values{}
	data.Set("code", code)
	data.Set("client_id", s.clientID)
	data.Set("client_secret", s.clientSecret)
	data.Set("redirect_uri", s.redirectURI)
	data.Set("grant_type", "authorization_code")

	var tokenResponse struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		IDToken      string `json:"id_token"`
		ExpiresIn    int    `json:"expires_in"`
		TokenType    string `json:"token_type"`
	}

	if err := s.postForm(ctx, data, &tokenResponse); err != nil {
		return nil, errors.Wrap(err, "failed to exchange code for tokens")
	}

	return &service.ProviderTokens{
		AccessToken:  tokenResponse.AccessToken,
		RefreshToken: tokenResponse.RefreshToken,
		IDToken:      tokenResponse.IDToken,
		ExpiresIn:    tokenResponse.ExpiresIn,
	}, nil
}

// AccessTokenFromRefresh exchanges a stored provider refresh token for a fresh
// provider access token.
func (s *OAuthService) AccessTokenFromRefresh(ctx context.Context, refreshToken string) (string, error) {
	data := url.Values{}
	data.Set("client_id", s.clientID)
	data.Set("client_secret", s.clientSecret)
	data.Set("refresh_token", refreshToken)
	data.Set("grant_type", "refresh_token")

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}

	if err := s.postForm(ctx, data, &tokenResponse); err != nil {
		return "", errors.Wrap(err, "failed to exchange refresh token")
	}

	return tokenResponse.AccessToken, nil
}

// Provider returns the OAuth provider type.
func (s *OAuthService) Provider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// postForm sends an urlencoded POST to the token endpoint and decodes the JSON response.
func (s *OAuthService) postForm(ctx context.Context, data url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return errors.Wrap(err, "failed to create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "token endpoint request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return errors.Errorf("token endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode token response")
	}

	return nil
}
