package access

import (
	"gorm.io/datatypes"
)

// Visibility is embedded by every content model that is restricted per
// cohort. An empty cohort list means the item is unrestricted.
type Visibility struct {
	AuthorizedCohorts datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"authorized_cohorts"`
	AllowVisitor      bool                        `gorm:"not null;default:false" json:"allow_visitor"`
}

func (v Visibility) CohortList() []string {
	return v.AuthorizedCohorts
}

func (v Visibility) VisitorAllowed() bool {
	return v.AllowVisitor
}

// Restricted is anything carrying cohort/visitor visibility settings.
type Restricted interface {
	CohortList() []string
	VisitorAllowed() bool
}
