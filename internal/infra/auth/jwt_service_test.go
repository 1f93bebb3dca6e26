package auth

import (
	"testing"
	"time"

	"taskhub/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
	cfg.SecretKey.Access = "access-secret-for-tests"
	cfg.SecretKey.Refresh = "refresh-secret-for-tests"

	return cfg
}

func TestJWTService_IssueAndVerifyTokenPair(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	userID := uuid.New()
	pair, err := svc.IssueTokenPair(userID)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	gotID, err := svc.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)

	claims, err := svc.VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt, time.Minute)
}

func TestJWTService_SecretsAreNotInterchangeable(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	pair, err := svc.IssueTokenPair(uuid.New())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = svc.VerifyRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	cfg := newTestConfig()
	cfg.Auth.AccessTokenTTL = -time.Minute

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	pair, err := svc.IssueTokenPair(uuid.New())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_GarbageTokenRejected(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken("not-a-token")
	assert.Error(t, err)

	_, err = svc.VerifyRefreshToken("")
	assert.Error(t, err)
}

func TestJWTService_MissingSecretsRejected(t *testing.T) {
	cfg := newTestConfig()
	cfg.SecretKey.Refresh = ""

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_HashToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	pair, err := svc.IssueTokenPair(uuid.New())
	require.NoError(t, err)
	require.Greater(t, len(pair.RefreshToken), 72)

	digest := svc.HashToken(pair.RefreshToken)
	// Deterministic, hex-encoded, and short enough for bcrypt.
	assert.Equal(t, digest, svc.HashToken(pair.RefreshToken))
	assert.Len(t, digest, 64)
	assert.NotEqual(t, digest, svc.HashToken(pair.AccessToken))
}

func TestJWTService_DecodeIDToken(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	// The provider signs with its own key; only the payload is read.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     "google-subject-1",
		"email":   "person@example.com",
		"name":    "Person Example",
		"picture": "https://example.com/avatar.png",
	})
	signed, err := token.SignedString([]byte("some-provider-key"))
	require.NoError(t, err)

	claims, err := svc.DecodeIDToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "google-subject-1", claims.Subject)
	assert.Equal(t, "person@example.com", claims.Email)
	assert.Equal(t, "Person Example", claims.Name)
	assert.Equal(t, "https://example.com/avatar.png", claims.Picture)
}

func TestJWTService_DecodeIDToken_MissingSubject(t *testing.T) {
	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "nobody@example.com"})
	signed, err := token.SignedString([]byte("some-provider-key"))
	require.NoError(t, err)

	_, err = svc.DecodeIDToken(signed)
	assert.Error(t, err)

	_, err = svc.DecodeIDToken("garbage")
	assert.Error(t, err)
}
