package models

import "time"

// Paper is a canonical record for a publication gathered from any source.
// Rows are written once at first ingestion and never updated afterwards;
// only the keyword association may grow.
type Paper struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ExternalID  string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"external_id"`
	Source      string    `gorm:"type:varchar(50);not null;index" json:"source"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Authors     string    `gorm:"type:text;not null" json:"authors"`
	Abstract    string    `gorm:"type:text" json:"abstract"`
	Categories  string    `gorm:"type:varchar(200)" json:"categories"`
	PublishedAt time.Time `gorm:"index" json:"published_at"`
	URL         string    `gorm:"type:varchar(500)" json:"url"`
	DOI         string    `gorm:"type:varchar(100);index" json:"doi,omitempty"`
	Journal     string    `gorm:"type:varchar(200)" json:"journal,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	Keywords  []Keyword  `gorm:"many2many:paper_keywords" json:"keywords"`
	Favorites []Favorite `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
