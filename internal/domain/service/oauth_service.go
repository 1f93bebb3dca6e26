package service

import (
	"context"

	"taskhub/internal/domain/entity"
)

// ProviderTokens is the result of exchanging an authorization code with the
// identity provider.
type ProviderTokens struct {
	AccessToken  string // Short-lived provider API token.
	RefreshToken string // Long-lived grant; stored encrypted. May be empty on silent re-consent.
	IDToken      string // Signed identity token carrying the user's profile claims.
	ExpiresIn    int    // Lifetime of the grant in seconds, as reported by the provider.
}

// OAuthService defines the outbound operations against an identity provider.
type OAuthService interface {
	// BuildAuthorizationURL constructs the provider authorization URL
	// embedding the anti-CSRF state nonce and the requested scopes.
	BuildAuthorizationURL(state string) string

	// ExchangeCode trades an authorization code for provider tokens.
	ExchangeCode(ctx context.Context, code string) (*ProviderTokens, error)

	// AccessTokenFromRefresh trades a stored provider refresh token for a
	// fresh provider access token (used by the calendar capability).
	AccessTokenFromRefresh(ctx context.Context, refreshToken string) (string, error)

	// Provider returns the identity provider this service talks to.
	Provider() entity.ProviderType
}
