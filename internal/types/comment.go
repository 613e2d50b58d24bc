package types

import (
	"time"
)

// Comment hangs off an Idea by id only. The link is weak: no existence check
// on insert, no cleanup when the idea is deleted.
type Comment struct {
	ID        int       `json:"id"`
	IdeaID    int       `json:"ideaId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
