package impl

import (
	"context"
	"log/slog"

	deliverycontext "taskhub/internal/delivery/context"
	domainerrors "taskhub/internal/domain/errors"
	"taskhub/internal/domain/repository"
	"taskhub/internal/domain/service"
	"taskhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// calendarService implements the CalendarUsecase interface.
type calendarService struct {
	oauthLinkRepo repository.OAuthLinkRepository
	encryptor     service.TokenEncryptor
	oauthService  service.OAuthService
	logger        *slog.Logger
}

// CalendarServiceParams holds dependencies for calendarService, injected by Fx.
type CalendarServiceParams struct {
	fx.In

	OAuthLinkRepo repository.OAuthLinkRepository
	Encryptor     service.TokenEncryptor
	OAuthService  service.OAuthService
	Logger        *slog.Logger
}

// NewCalendarService is the constructor for calendarService.
func NewCalendarService(params CalendarServiceParams) usecase.CalendarUsecase {
	return &calendarService{
		oauthLinkRepo: params.OAuthLinkRepo,
		encryptor:     params.Encryptor,
		oauthService:  params.OAuthService,
		logger:        params.Logger,
	}
}

// GoogleAccessToken recovers the stored Google refresh token and exchanges it
// for a short-lived Google access token for calendar calls.
func (srv *calendarService) GoogleAccessToken(ctx context.Context, userID uuid.UUID) (string, error) {
	link, err := srv.oauthLinkRepo.FindByUserIDAndProvider(ctx, userID, srv.oauthService.Provider())
	if err != nil {
		if errors.Is(err, repository.ErrOAuthLinkNotFound) {
			return "", domainerrors.ErrOAuthLinkNotFound.WrapMessage("no google account linked")
		}

		return "", errors.Wrap(err, "failed to load oauth link")
	}

	if link.EncryptedRefreshToken == "" {
		return "", domainerrors.ErrOAuthLinkNotFound.WrapMessage("no stored provider credential")
	}

	refreshToken, err := srv.encryptor.Decrypt(link.EncryptedRefreshToken)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).
			Error("Stored provider credential failed to decrypt", slog.Any("userID", userID), slog.Any("error", err))

		return "", domainerrors.ErrDecryptionFailed.WrapMessage("stored ciphertext rejected")
	}

	accessToken, err := srv.oauthService.AccessTokenFromRefresh(ctx, refreshToken)
	if err != nil {
		return "", domainerrors.ErrOAuthExchangeFailed.WrapMessage("refresh grant rejected")
	}

	return accessToken, nil
}
