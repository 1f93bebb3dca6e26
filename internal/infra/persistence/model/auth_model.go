package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshTokenModel mirrors the 'refresh_tokens' table. The unique constraint
// on user_id holds the system to one live session row per user.
type RefreshTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;unique;not null"`
	TokenHash string    `gorm:"type:varchar(255);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// BeforeCreate assigns the primary key when the caller did not.
func (m *RefreshTokenModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// OAuthLinkModel mirrors the 'oauth_links' table. A provider identity can only
// belong to one local account, enforced by the composite unique index.
type OAuthLinkModel struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_oauth_links_user_provider"`
	Provider              string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_oauth_links_user_provider;uniqueIndex:idx_oauth_links_provider_subject"`
	ProviderID            string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_oauth_links_provider_subject"`
	EncryptedRefreshToken string    `gorm:"type:text"`
	ExpirationAt          time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName explicitly sets the table name for GORM.
func (OAuthLinkModel) TableName() string {
	return "oauth_links"
}

// BeforeCreate assigns the primary key when the caller did not.
func (m *OAuthLinkModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
