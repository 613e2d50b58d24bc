package types

import (
	"time"

	"github.com/google/uuid"
)

type UserToken struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"index;not null" json:"userId"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	RefreshToken string    `gorm:"uniqueIndex;not null;column:refresh_token" json:"refreshToken"`
	ExpiresAt    time.Time `gorm:"column:expires_at" json:"expiresAt"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}

func (UserToken) TableName() string {
	return "user_token"
}
