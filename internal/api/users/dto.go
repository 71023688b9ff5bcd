package users

import (
	"time"

	"redacao-app/internal/domain/identity"
)

type UserDTO struct {
	ID         uint    `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Lastname   string  `json:"lastname"`
	Role       string  `json:"role"`
	IsVerified bool    `json:"is_verified"`
	Cohort     *string `json:"cohort,omitempty"`
}

type SubscriptionDTO struct {
	Status       string     `json:"status"` // "active" | "expired" | "none"
	PlanName     *string    `json:"plan_name,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	ExpiringSoon bool       `json:"expiring_soon"`
}

type MeResponse struct {
	User         UserDTO           `json:"user"`
	Identity     identity.Identity `json:"identity"`
	Subscription SubscriptionDTO   `json:"subscription"`
	Credits      int               `json:"credits"`
	UnreadInbox  int64             `json:"unread_inbox"`
}
