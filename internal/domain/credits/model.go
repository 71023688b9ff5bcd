package credits

import (
	"time"

	"redacao-app/internal/domain/users"
)

const (
	ReasonEssaySubmission = "essay_submission"
	ReasonStaffAdjustment = "staff_adjustment"
	ReasonPlanGrant       = "plan_grant"
)

// Entry is one row of the append-only credit audit log. The student's
// balance lives on the user row; entries record every delta, who caused it
// and why.
type Entry struct {
	ID     uint       `gorm:"primaryKey" json:"id"`
	UserID uint       `gorm:"not null;index" json:"user_id"`
	User   users.User `json:"-"`

	Delta  int    `gorm:"not null" json:"delta"`
	Reason string `gorm:"not null" json:"reason"`

	// Email of the admin for staff adjustments, "system" otherwise.
	AdjustedBy string `gorm:"not null" json:"adjusted_by"`

	CreatedAt time.Time `json:"created_at"`
}

func (Entry) TableName() string {
	return "credit_entries"
}
