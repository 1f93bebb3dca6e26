package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"taskhub/config"
	"taskhub/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOAuthService(tokenURL string) *OAuthService {
	return &OAuthService{
		clientID:     "client-id",
		clientSecret: "client-secret",
		redirectURI:  "http://localhost:8080/auth/google/callback",
		responseType: "code",
		authURL:      defaultAuthURL,
		tokenURL:     tokenURL,
		client:       http.DefaultClient,
	}
}

func TestBuildAuthorizationURL(t *testing.T) {
	svc := newOAuthService(defaultTokenURL)

	rawURL := svc.BuildAuthorizationURL("state-nonce")
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)

	assert.Equal(t, "accounts.google.com", parsed.Host)
	query := parsed.Query()
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "state-nonce", query.Get("state"))
	assert.Equal(t, "offline", query.Get("access_type"))
	assert.Equal(t, "consent", query.Get("prompt"))
	assert.Contains(t, query.Get("scope"), "https://www.googleapis.com/auth/calendar")
	assert.NotContains(t, rawURL, "client-secret")
}

func TestExchangeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"access_token": "provider-access",
			"refresh_token": "provider-refresh",
			"id_token": "provider-id-token",
			"expires_in": 3599,
			"token_type": "Bearer"
		}`))
	}))
	defer server.Close()

	svc := newOAuthService(server.URL)

	tokens, err := svc.ExchangeCode(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "provider-access", tokens.AccessToken)
	assert.Equal(t, "provider-refresh", tokens.RefreshToken)
	assert.Equal(t, "provider-id-token", tokens.IDToken)
	assert.Equal(t, 3599, tokens.ExpiresIn)
}

func TestExchangeCode_ProviderRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "invalid_grant"}`))
	}))
	defer server.Close()

	svc := newOAuthService(server.URL)

	_, err := svc.ExchangeCode(context.Background(), "stale-code")
	assert.Error(t, err)
}

func TestAccessTokenFromRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "stored-refresh", r.PostForm.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "fresh-access", "expires_in": 3599}`))
	}))
	defer server.Close()

	svc := newOAuthService(server.URL)

	accessToken, err := svc.AccessTokenFromRefresh(context.Background(), "stored-refresh")
	require.NoError(t, err)
	assert.Equal(t, "fresh-access", accessToken)
}

func TestNewOAuthService_RequiresCredentials(t *testing.T) {
	_, err := NewOAuthService(&config.Config{})
	assert.Error(t, err)

	_, err = NewOAuthService(&config.Config{GoogleOAuth: &config.GoogleOAuthConfig{ClientID: "id"}})
	assert.Error(t, err)
}

func TestProvider(t *testing.T) {
	svc := newOAuthService(defaultTokenURL)
	assert.Equal(t, entity.ProviderTypeGoogle, svc.Provider())
}
