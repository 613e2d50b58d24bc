package types

import (
	"time"

	"github.com/google/uuid"
)

// Like records one user's like on one idea. The composite unique index keeps
// the toggle idempotent at the database level. IdeaID is a weak reference to
// the in-memory idea store.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_like_user_idea;not null" json:"userId"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	IdeaID    int       `gorm:"uniqueIndex:idx_like_user_idea;not null;column:idea_id" json:"ideaId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Like) TableName() string {
	return "like"
}
