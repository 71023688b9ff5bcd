package exams

import (
	"time"

	"redacao-app/internal/domain/access"
	"redacao-app/internal/domain/publish"
	"redacao-app/internal/domain/schedule"
)

// Exam is a simulated exam ("simulado"): published content that is only
// answerable inside its availability window. Visibility uses the
// exam-specific rule (access.CanAccessExam), not the general one.
type Exam struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// storage path of the exam booklet
	FilePath string `json:"file_path,omitempty"`

	DurationMinutes int `json:"duration_minutes,omitempty"`

	schedule.Window
	access.Visibility
	publish.Publication

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
