package library

import (
	"time"

	"redacao-app/internal/domain/access"
	"redacao-app/internal/domain/publish"
)

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex:idx_library_categories_name" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "library_categories"
}

// Material is a downloadable study resource (PDF, slide deck), grouped by
// category, cohort-restricted and schedulable like any other content.
type Material struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `json:"category,omitempty"`

	FilePath string `gorm:"not null" json:"file_path"`

	access.Visibility
	publish.Publication

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Material) TableName() string {
	return "library_materials"
}
