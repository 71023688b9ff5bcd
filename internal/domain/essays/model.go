package essays

import (
	"time"

	"redacao-app/internal/domain/themes"
	"redacao-app/internal/domain/users"
)

const (
	StatusSubmitted = "submitted"
	StatusInReview  = "in_review"
	StatusCorrected = "corrected"
)

// Essay is a student submission against a theme. Submitting consumes one
// credit; a corrector later claims it and files the correction in place.
type Essay struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// one submission per student per theme
	ThemeID uint          `gorm:"not null;uniqueIndex:idx_essays_theme_student,priority:1" json:"theme_id"`
	Theme   *themes.Theme `json:"theme,omitempty"`

	StudentID uint       `gorm:"not null;uniqueIndex:idx_essays_theme_student,priority:2" json:"student_id"`
	Student   users.User `gorm:"foreignKey:StudentID" json:"-"`

	// storage path of the scanned/typed submission
	FilePath string `gorm:"not null" json:"file_path"`

	Status      string    `gorm:"not null;default:'submitted';index" json:"status"`
	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`

	CorrectorID *uint       `gorm:"index" json:"corrector_id,omitempty"`
	Corrector   *users.User `gorm:"foreignKey:CorrectorID" json:"-"`

	// Correction: five competency scores (0-200 each), derived total and
	// free-text feedback. All nil until the essay is corrected.
	Comp1       *int       `json:"comp1,omitempty"`
	Comp2       *int       `json:"comp2,omitempty"`
	Comp3       *int       `json:"comp3,omitempty"`
	Comp4       *int       `json:"comp4,omitempty"`
	Comp5       *int       `json:"comp5,omitempty"`
	Total       *int       `json:"total,omitempty"`
	Feedback    *string    `gorm:"type:text" json:"feedback,omitempty"`
	CorrectedAt *time.Time `json:"corrected_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
