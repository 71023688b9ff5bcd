package activities

import (
	"time"

	"redacao-app/internal/domain/access"
	"redacao-app/internal/domain/publish"
	"redacao-app/internal/domain/schedule"
)

// Exercise is a practice task open during its availability window. Like
// themes and exams it is drafted, optionally scheduled and then
// published; the window only matters once the exercise is live.
type Exercise struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Title        string `gorm:"not null" json:"title"`
	Instructions string `gorm:"type:text" json:"instructions,omitempty"`

	// storage path of the exercise sheet, if any
	FilePath string `json:"file_path,omitempty"`

	schedule.Window
	access.Visibility
	publish.Publication

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BoardSession is a live interactive-board ("lousa") session students can
// join while its window is open.
type BoardSession struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Title      string `gorm:"not null" json:"title"`
	MeetingURL string `gorm:"not null" json:"meeting_url"`

	schedule.Window
	access.Visibility

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
