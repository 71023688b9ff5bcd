package subscriptions

import (
	"time"

	"redacao-app/internal/domain/plans"
	"redacao-app/internal/domain/users"
)

// Subscription grants a student time-bounded access, independent of
// credits. Rows are created by staff or by a completed checkout; status is
// never stored; it is always derived from ExpiryDate (see status.go).
type Subscription struct {
	ID     uint       `gorm:"primaryKey" json:"id"`
	UserID uint       `gorm:"not null;index" json:"user_id"`
	User   users.User `json:"-"`

	PlanID uint        `gorm:"not null" json:"plan_id"`
	Plan   *plans.Plan `json:"plan,omitempty"`

	StartDate  time.Time `gorm:"not null" json:"start_date"`
	ExpiryDate time.Time `gorm:"not null;index" json:"expiry_date"`

	StripeSubscriptionID *string `gorm:"uniqueIndex:idx_subscriptions_stripe_sub_id" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Change is the append-only audit trail of subscription edits: free-text
// description plus who did it and when. Rows are never updated or deleted.
type Change struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	SubscriptionID uint   `gorm:"not null;index" json:"subscription_id"`
	Description    string `gorm:"not null" json:"description"`
	ChangedBy      string `gorm:"not null" json:"changed_by"`

	CreatedAt time.Time `json:"created_at"`
}

func (Change) TableName() string {
	return "subscription_changes"
}
