package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Username  string    `gorm:"not null;column:username" json:"username"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	Role      string    `gorm:"not null;default:'member';column:role" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string {
	return "user"
}
