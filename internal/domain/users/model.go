package users

import (
	"time"

	"redacao-app/internal/domain/cohorts"
	"redacao-app/internal/domain/identity"
)

const (
	RoleStudent   = "student"
	RoleCorrector = "corrector"
	RoleAdmin     = "admin"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Lastname     string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string  `gorm:"not null;default:'student'"`
	IsVerified   bool

	// Students without a cohort browse as visitors.
	CohortID *uint           `gorm:"index"`
	Cohort   *cohorts.Cohort `gorm:"foreignKey:CohortID"`

	// Essay credit balance. Every change is mirrored by a credits.Entry
	// audit row; the check keeps a failed bulk write from going negative.
	Credits int `gorm:"not null;default:0;check:credits >= 0"`

	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity classifies the user for visibility checks. Requires Cohort to
// be preloaded; a student row without one is treated as a visitor.
func (u User) Identity() identity.Identity {
	if u.Cohort != nil {
		return identity.Classify(&u.Cohort.Name)
	}
	return identity.Visitor()
}
