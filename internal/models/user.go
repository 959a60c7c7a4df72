package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	EmailDigestEnabled bool      `gorm:"default:false" json:"email_digest_enabled"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"-"`

	Favorites []Favorite `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate assigns the UUID in application code so the model also works
// on databases without gen_random_uuid().
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
