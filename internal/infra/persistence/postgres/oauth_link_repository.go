// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"taskhub/internal/domain/entity"
	domainerrors "taskhub/internal/domain/errors"
	"taskhub/internal/domain/repository"
	"taskhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// oauthLinkRepository implements the domain.OAuthLinkRepository interface.
type oauthLinkRepository struct {
	db *gorm.DB
}

// NewOAuthLinkRepository is the constructor for oauthLinkRepository.
func NewOAuthLinkRepository(db *gorm.DB) repository.OAuthLinkRepository {
	return &oauthLinkRepository{db: db}
}

// FindByProviderID retrieves a link by its unique (provider, provider_id) pair.
func (repo *oauthLinkRepository) FindByProviderID(ctx context.Context, provider entity.ProviderType, providerID string) (*entity.OAuthLink, error) {
	var linkM model.OAuthLinkModel
	err := repo.db.WithContext(ctx).
		First(&linkM, "provider = ? AND provider_id = ?", provider.String(), providerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOAuthLinkNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toOAuthLinkDomain(&linkM), nil
}

// FindByUserIDAndProvider retrieves a user's link for a specific provider.
func (repo *oauthLinkRepository) FindByUserIDAndProvider(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) (*entity.OAuthLink, error) {
	var linkM model.OAuthLinkModel
	err := repo.db.WithContext(ctx).
		First(&linkM, "user_id = ? AND provider = ?", userID, provider.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOAuthLinkNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toOAuthLinkDomain(&linkM), nil
}

// Create persists a new provider link.
func (repo *oauthLinkRepository) Create(ctx context.Context, link *entity.OAuthLink) error {
	linkM := fromOAuthLinkDomain(link)

	if err := repo.db.WithContext(ctx).Create(linkM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "provider identity already linked")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create oauth link")
	}

	link.ID = linkM.ID
	link.CreatedAt = linkM.CreatedAt
	link.UpdatedAt = linkM.UpdatedAt

	return nil
}

// Update refreshes the stored ciphertext and expiry of an existing link.
func (repo *oauthLinkRepository) Update(ctx context.Context, link *entity.OAuthLink) error {
	result := repo.db.WithContext(ctx).Model(&model.OAuthLinkModel{}).
		Where("id = ?", link.ID).
		Updates(map[string]any{
			"encrypted_refresh_token": link.EncryptedRefreshToken,
			"expiration_at":           link.ExpirationAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update oauth link")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOAuthLinkNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toOAuthLinkDomain converts a GORM OAuthLinkModel to a domain OAuthLink entity.
func toOAuthLinkDomain(data *model.OAuthLinkModel) *entity.OAuthLink {
	if data == nil {
		return nil
	}

	return &entity.OAuthLink{
		ID:                    data.ID,
		UserID:                data.UserID,
		Provider:              entity.ProviderType(data.Provider),
		ProviderID:            data.ProviderID,
		EncryptedRefreshToken: data.EncryptedRefreshToken,
		ExpirationAt:          data.ExpirationAt,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}
}

// fromOAuthLinkDomain converts a domain OAuthLink entity to a GORM OAuthLinkModel.
func fromOAuthLinkDomain(data *entity.OAuthLink) *model.OAuthLinkModel {
	if data == nil {
		return nil
	}

	return &model.OAuthLinkModel{
		ID:                    data.ID,
		UserID:                data.UserID,
		Provider:              data.Provider.String(),
		ProviderID:            data.ProviderID,
		EncryptedRefreshToken: data.EncryptedRefreshToken,
		ExpirationAt:          data.ExpirationAt,
		CreatedAt:             data.CreatedAt,
		UpdatedAt:             data.UpdatedAt,
	}
}
