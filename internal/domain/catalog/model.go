package catalog

import (
	"time"

	"redacao-app/internal/domain/access"
	"redacao-app/internal/domain/publish"
)

// Video is a catalog entry pointing at an embedded player URL.
type Video struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	EmbedURL    string `gorm:"not null" json:"embed_url"`
	Subject     string `gorm:"index" json:"subject,omitempty"`

	access.Visibility
	publish.Publication

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Lesson is a recorded class tied to a calendar date, shown in the student
// portal's schedule view.
type Lesson struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Subject  string `gorm:"index" json:"subject,omitempty"`
	VideoURL string `json:"video_url,omitempty"`

	LessonDate time.Time `gorm:"not null;index" json:"lesson_date"`

	access.Visibility
	publish.Publication

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	KindVideo  = "video"
	KindLesson = "lesson"
)

// WatchedFlag marks a video or lesson as watched by a student. One row per
// (student, content) pair.
type WatchedFlag struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_watched_user_content,priority:1" json:"user_id"`

	ContentKind string `gorm:"not null;uniqueIndex:idx_watched_user_content,priority:2" json:"content_kind"`
	ContentID   uint   `gorm:"not null;uniqueIndex:idx_watched_user_content,priority:3" json:"content_id"`

	WatchedAt time.Time `gorm:"not null" json:"watched_at"`
}
