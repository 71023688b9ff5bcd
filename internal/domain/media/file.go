package media

import (
	"strings"
	"time"

	"redacao-app/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File references an uploaded object (PDF, image) by its storage path.
// Upload byte handling happens on the storage side; the API only stores
// paths and hands out public URLs.
type File struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Path string `gorm:"not null" json:"path"`

	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// PublicURL builds the retrieval URL for a stored path.
func PublicURL(path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimRight(config.STORAGE_PUBLIC_URL, "/") + "/" + strings.TrimLeft(path, "/")
}
