package models

import "time"

type Keyword struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Papers []Paper `gorm:"many2many:paper_keywords" json:"-"`
}
