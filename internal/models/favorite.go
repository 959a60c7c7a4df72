package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links a user to a saved paper. The composite unique index is the
// backstop against duplicate saves racing past the lookup-before-insert check.
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_paper" json:"user_id"`
	PaperID   uint      `gorm:"not null;uniqueIndex:idx_user_paper" json:"paper_id"`
	CreatedAt time.Time `json:"created_at"`

	Paper Paper `json:"-"`
}
