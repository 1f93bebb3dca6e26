// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"taskhub/config"
	domainerrors "taskhub/internal/domain/errors"
	"taskhub/internal/domain/service"
	"taskhub/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  []byte        // Secret key for signing access tokens.
	refreshSecret []byte        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
}

// NewJWTService is the constructor for jwtService.
// The two secrets are independent so a leaked access secret cannot mint refresh tokens.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     cfg.Auth.AccessTokenTTL,
		refreshTTL:    cfg.Auth.RefreshTokenTTL,
	}, nil
}

// IssueTokenPair creates a new access token and refresh token for a given user.
func (s *jwtService) IssueTokenPair(userID uuid.UUID) (*service.TokenPair, error) {
	accessToken, err := s.signToken(userID, s.accessTTL, s.accessSecret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign access token")
	}

	refreshToken, err := s.signToken(userID, s.refreshTTL, s.refreshSecret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign refresh token")
	}

	return &service.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// VerifyAccessToken checks the validity of an access token and returns the subject user id.
func (s *jwtService) VerifyAccessToken(token string) (uuid.UUID, error) {
	claims, err := s.parseToken(token, s.accessSecret)
	if err != nil {
		return uuid.Nil, err
	}

	return claims.UserID, nil
}

// VerifyRefreshToken checks the validity of a refresh token and returns its claims.
// The caller derives the storage expiry from ExpiresAt.
func (s *jwtService) VerifyRefreshToken(token string) (*service.RefreshTokenClaims, error) {
	return s.parseToken(token, s.refreshSecret)
}

// DecodeIDToken reads the payload of a provider-issued identity token without
// verifying its signature. The token arrives straight from the provider's
// token endpoint over TLS; only the profile claims are needed.
func (s *jwtService) DecodeIDToken(token string) (*service.IdentityClaims, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("failed to parse identity token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("identity token has no subject")
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)

	return &service.IdentityClaims{
		Subject: sub,
		Email:   email,
		Name:    name,
		Picture: picture,
	}, nil
}

// HashToken produces a fixed-length hex digest of a token, used as the input
// for at-rest hashing.
func (s *jwtService) HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))

	return hex.EncodeToString(digest[:])
}

// signToken is a private helper to create a JWT with the standard claims.
func (s *jwtService) signToken(userID uuid.UUID, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),     // Subject (who the token is for)
		"iat": now.Unix(),          // Issued At
		"exp": now.Add(ttl).Unix(), // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secret)
}

// parseToken validates signature and expiry against a secret and extracts the claims.
func (s *jwtService) parseToken(tokenString string, secret []byte) (*service.RefreshTokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrTokenExpired.WrapMessage("token verification failed")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domainerrors.ErrTokenExpired.WrapMessage("unexpected claims type")
	}

	subject, err := mapClaims.GetSubject()
	if err != nil {
		return nil, domainerrors.ErrTokenExpired.WrapMessage("token has no subject")
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, domainerrors.ErrTokenExpired.WrapMessage("token subject is not a valid user id")
	}

	expiresAt, err := mapClaims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return nil, domainerrors.ErrTokenExpired.WrapMessage("token has no expiry")
	}

	return &service.RefreshTokenClaims{
		UserID:    userID,
		ExpiresAt: expiresAt.Time,
	}, nil
}
