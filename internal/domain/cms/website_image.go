package cms

import (
	"time"

	"gorm.io/datatypes"
)

// WebsiteImage is one named slot in the site's image registry. The slot
// id is stable (referenced by the frontend); only the current URL and
// the editable metadata change. DefaultURL is fixed at seed time so a
// slot can always be reset.
type WebsiteImage struct {
	ID              string         `gorm:"primaryKey;column:id" json:"id"`
	Name            string         `gorm:"not null;column:name" json:"name"`
	Description     string         `gorm:"column:description" json:"description"`
	Category        string         `gorm:"not null;index;column:category" json:"category"`
	CurrentURL      string         `gorm:"not null;column:current_url" json:"current_url"`
	DefaultURL      string         `gorm:"not null;column:default_url" json:"default_url"`
	Locations       datatypes.JSON `gorm:"column:locations" json:"locations"`
	RecommendedSize string         `gorm:"column:recommended_size" json:"recommended_size"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (WebsiteImage) TableName() string { return "website_images" }
