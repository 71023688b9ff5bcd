package cohorts

import "time"

// Cohort is a named group of students ("turma"), the unit every content
// restriction refers to. Names are what content rows store, so they are
// unique.
type Cohort struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex:idx_cohorts_name" json:"name"`
	Year int    `json:"year,omitempty"`

	Active bool `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
