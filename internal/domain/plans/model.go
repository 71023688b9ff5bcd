package plans

import "time"

type Plan struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	Tier     string  `gorm:"column:tier" json:"tier"` // "basico" | "intensivo" | "completo"
	PriceBRL float64 `json:"price_brl"`

	// Days of access granted by one purchase/assignment of this plan.
	DurationDays int `gorm:"not null;default:30" json:"duration_days"`

	// Monthly essay credits granted alongside the plan, if any.
	MonthlyCredits int `gorm:"not null;default:0" json:"monthly_credits"`

	StripePriceID *string `gorm:"column:stripe_price_id;uniqueIndex:idx_plans_stripe_price_id" json:"-"`
	Interval      string  `json:"interval,omitempty"`

	Active bool `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
