package users

import "time"

const (
	TokenTypeVerify        = "verify"
	TokenTypePasswordReset = "password_reset"
)

type VerificationToken struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;index"`
	Token  string `gorm:"not null;uniqueIndex"`
	Type   string `gorm:"not null;default:'verify'"`

	ExpiresAt time.Time
	CreatedAt time.Time
}
