// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "taskhub/internal/delivery/context"
	"taskhub/internal/domain/entity"
	domainerrors "taskhub/internal/domain/errors"
	"taskhub/internal/domain/repository"
	"taskhub/internal/domain/service"
	"taskhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	oauthLinkRepo    repository.OAuthLinkRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	encryptor        service.TokenEncryptor
	oauthService     service.OAuthService
	stateStore       service.StateStore
	logger           *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	OAuthLinkRepo    repository.OAuthLinkRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Encryptor        service.TokenEncryptor
	OAuthService     service.OAuthService
	StateStore       service.StateStore
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		oauthLinkRepo:    params.OAuthLinkRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		encryptor:        params.Encryptor,
		oauthService:     params.OAuthService,
		stateStore:       params.StateStore,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a local account with a hashed password.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	if _, err := srv.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email availability")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:           input.Email,
		Name:            input.Name,
		PasswordHash:    &hashedPassword,
		ProfileImageURL: input.ProfileImageURL,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, newUser); err != nil {
			// The pre-check races with concurrent registrations; the unique
			// constraint is the authority.
			if errors.Is(err, repository.ErrEmailTaken) {
				return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered")
			}

			return err
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login verifies credentials and opens the user's single live session.
// Absent account, password-less account, and wrong password all collapse into
// ErrInvalidCredentials so responses cannot be used for account enumeration.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		return nil, errors.Wrap(err, "failed to look up user for login")
	}

	if !user.HasPassword() || !srv.hasher.Check(input.Password, *user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	pair, err := srv.issuePersistPair(ctx, user.ID, srv.refreshTokenRepo)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// Refresh rotates a valid refresh token into a fresh pair. Signature, session
// row, hash comparison, and stored expiry are checked in order; every failure
// surfaces as ErrTokenExpired so a caller learns nothing about which layer
// rejected the token.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	stored, err := srv.refreshTokenRepo.FindByUserID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil, domainerrors.ErrTokenExpired.WrapMessage("no live session for user")
		}

		return nil, errors.Wrap(err, "failed to load session row")
	}

	if !srv.hasher.Check(srv.tokenService.HashToken(refreshToken), stored.TokenHash) {
		// A signed but superseded token: a newer login or refresh replaced it.
		return nil, domainerrors.ErrTokenExpired.WrapMessage("token superseded")
	}

	if time.Now().After(stored.ExpiresAt) {
		return nil, domainerrors.ErrTokenExpired.WrapMessage("session row expired")
	}

	pair, err := srv.issuePersistPair(ctx, claims.UserID, srv.refreshTokenRepo)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Session rotated", slog.Any("userID", claims.UserID))

	return &usecase.AuthOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout deletes the user's session row. Logging out twice is not an error.
func (srv *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := srv.refreshTokenRepo.DeleteByUserID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to delete session row")
	}

	return nil
}

// GoogleAuthURL issues a state nonce and builds the provider authorization URL.
func (srv *authService) GoogleAuthURL(ctx context.Context) (string, error) {
	state, err := srv.stateStore.Issue(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to issue oauth state")
	}

	return srv.oauthService.BuildAuthorizationURL(state), nil
}

// GoogleCallback completes the provider code flow and signs the user in,
// creating the local account on first contact.
func (srv *authService) GoogleCallback(ctx context.Context, input usecase.GoogleCallbackInput) (*usecase.AuthOutput, error) {
	if err := srv.stateStore.Verify(ctx, input.State); err != nil {
		if errors.Is(err, service.ErrStateNotFound) {
			return nil, domainerrors.ErrInvalidState.WrapMessage("state nonce unknown or already consumed")
		}

		return nil, errors.Wrap(err, "failed to verify oauth state")
	}

	providerTokens, err := srv.oauthService.ExchangeCode(ctx, input.Code)
	if err != nil {
		srv.log(ctx).Warn("Code exchange failed", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthExchangeFailed.WrapMessage("code exchange rejected")
	}

	claims, err := srv.tokenService.DecodeIDToken(providerTokens.IDToken)
	if err != nil {
		return nil, err
	}

	// Google omits the refresh token when the user granted consent before.
	// An empty exchange result keeps the previously stored ciphertext.
	encryptedRefresh := ""
	if providerTokens.RefreshToken != "" {
		encryptedRefresh, err = srv.encryptor.Encrypt(providerTokens.RefreshToken)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encrypt provider refresh token")
		}
	}
	expirationAt := time.Now().Add(time.Duration(providerTokens.ExpiresIn) * time.Second)

	var (
		user *entity.User
		pair *service.TokenPair
	)
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err = srv.resolveProviderIdentity(ctx, repoFactory, claims, encryptedRefresh, expirationAt)
		if err != nil {
			return err
		}

		pair, err = srv.issuePersistPair(ctx, user.ID, repoFactory.RefreshTokenRepo())

		return err
	})
	if err != nil {
		srv.log(ctx).Warn("OAuth callback failed", slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("OAuth sign-in completed", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// resolveProviderIdentity finds or creates the local account for a provider
// identity. Matching order: existing link by (provider, subject), then
// existing user by verified email, then a fresh password-less account.
func (srv *authService) resolveProviderIdentity(
	ctx context.Context,
	repoFactory repository.RepositoryFactory,
	claims *service.IdentityClaims,
	encryptedRefresh string,
	expirationAt time.Time,
) (*entity.User, error) {
	userRepo := repoFactory.UserRepo()
	linkRepo := repoFactory.OAuthLinkRepo()
	provider := srv.oauthService.Provider()

	link, err := linkRepo.FindByProviderID(ctx, provider, claims.Subject)
	switch {
	case err == nil:
		if encryptedRefresh != "" {
			link.EncryptedRefreshToken = encryptedRefresh
			link.ExpirationAt = expirationAt
			if err := linkRepo.Update(ctx, link); err != nil {
				return nil, errors.Wrap(err, "failed to update oauth link")
			}
		}

		user, err := userRepo.FindByID(ctx, link.UserID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load linked user")
		}

		return user, nil
	case errors.Is(err, repository.ErrOAuthLinkNotFound):
		// First contact from this provider identity; fall through.
	default:
		return nil, errors.Wrap(err, "failed to look up oauth link")
	}

	user, err := userRepo.FindByEmail(ctx, claims.Email)
	switch {
	case err == nil:
		// Existing local account with the same email adopts the identity.
	case errors.Is(err, repository.ErrUserNotFound):
		user = &entity.User{
			Email:           claims.Email,
			Name:            claims.Name,
			ProfileImageURL: claims.Picture,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return nil, errors.Wrap(err, "failed to create user from provider identity")
		}
	default:
		return nil, errors.Wrap(err, "failed to look up user by email")
	}

	// Unlike the update branch above there is no prior ciphertext to keep;
	// a first consent without a refresh token leaves the link credential-less
	// and the calendar capability reports it missing.
	newLink := &entity.OAuthLink{
		UserID:                user.ID,
		Provider:              provider,
		ProviderID:            claims.Subject,
		EncryptedRefreshToken: encryptedRefresh,
		ExpirationAt:          expirationAt,
	}
	if err := linkRepo.Create(ctx, newLink); err != nil {
		return nil, errors.Wrap(err, "failed to create oauth link")
	}

	return user, nil
}

// issuePersistPair signs a fresh token pair and upserts the refresh token hash
// as the user's single session row. The token is digested before bcrypt since
// a signed token exceeds bcrypt's 72-byte input limit. The row expiry is read
// back from the signed token's own exp claim rather than recomputed from
// configuration.
func (srv *authService) issuePersistPair(ctx context.Context, userID uuid.UUID, tokenRepo repository.RefreshTokenRepository) (*service.TokenPair, error) {
	pair, err := srv.tokenService.IssueTokenPair(userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token pair")
	}

	claims, err := srv.tokenService.VerifyRefreshToken(pair.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read back refresh token expiry")
	}

	tokenHash, err := srv.hasher.Hash(srv.tokenService.HashToken(pair.RefreshToken))
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash refresh token")
	}

	if err := tokenRepo.Upsert(ctx, &entity.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: claims.ExpiresAt,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to persist session row")
	}

	return pair, nil
}
