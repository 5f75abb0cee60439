package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Category struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Icon         string    `gorm:"type:varchar(50)" json:"icon"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Title       string    `gorm:"type:varchar(300);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:varchar(50);not null;index" json:"category"`
	Published   bool      `gorm:"not null;default:false;index" json:"published"`

	Client    string     `gorm:"type:varchar(200)" json:"client"`
	Location  string     `gorm:"type:varchar(200)" json:"location"`
	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	Duration  string     `gorm:"type:varchar(50)" json:"duration"`

	// Ordered lists, duplicates allowed. Stored as JSON so the same model
	// works on Postgres and the SQLite test database.
	Tags       datatypes.JSONSlice[string] `json:"tags"`
	Highlights datatypes.JSONSlice[string] `json:"highlights"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CategoryRel *Category      `gorm:"foreignKey:Category;references:ID" json:"-"`
	Images      []ProjectImage `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"images"`
	Videos      []ProjectVideo `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"videos"`
}

type ProjectImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`

	URL          string `gorm:"type:varchar(500);not null" json:"url"`
	AltText      string `gorm:"type:varchar(255)" json:"alt_text"`
	Caption      string `gorm:"type:text" json:"caption"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
}

type ProjectVideo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`

	VideoURL     string `gorm:"type:varchar(500);not null" json:"video_url"`
	ThumbnailURL string `gorm:"type:varchar(500)" json:"thumbnail_url"`
	Title        string `gorm:"type:varchar(200)" json:"title"`
	Duration     *int   `json:"duration,omitempty"` // seconds
	DisplayOrder int    `gorm:"default:0" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
}
