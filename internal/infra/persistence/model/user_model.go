// Package model contains the GORM models mirroring the PostgreSQL schema.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	Email           string    `gorm:"type:varchar(255);unique;not null"`
	Name            string    `gorm:"type:varchar(100);not null"`
	PasswordHash    *string   `gorm:"type:varchar(255)"`
	ProfileImageURL string    `gorm:"type:varchar(512)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	RefreshToken *RefreshTokenModel `gorm:"foreignKey:UserID"`
	OAuthLinks   []OAuthLinkModel   `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns the primary key when the caller did not.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
