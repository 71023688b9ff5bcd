package themes

import (
	"time"

	"redacao-app/internal/domain/access"
	"redacao-app/internal/domain/publish"
)

// Theme is an essay prompt: a headline, supporting text and an optional
// reference sheet, published on a schedule and restricted per cohort.
type Theme struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Headline string `gorm:"not null" json:"headline"`
	Prompt   string `gorm:"type:text" json:"prompt"`

	// storage path of the supporting PDF, if any
	SheetPath *string `json:"sheet_path,omitempty"`

	access.Visibility
	publish.Publication

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
