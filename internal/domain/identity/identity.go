package identity

import "strings"

type Kind string

const (
	KindStudent Kind = "student"
	KindVisitor Kind = "visitor"
)

// Identity is the per-request classification of the logged-in profile:
// either a student enrolled in a cohort, or a visitor. It is resolved from
// the session on every request and passed down explicitly.
type Identity struct {
	Kind   Kind   `json:"kind"`
	Cohort string `json:"cohort,omitempty"`
}

func Student(cohort string) Identity {
	return Identity{Kind: KindStudent, Cohort: cohort}
}

func Visitor() Identity {
	return Identity{Kind: KindVisitor}
}

// Classify maps a profile's cohort (if any) to an identity. Anything
// without a recognized cohort is a visitor.
func Classify(cohort *string) Identity {
	if cohort != nil {
		if name := strings.TrimSpace(*cohort); name != "" {
			return Student(name)
		}
	}
	return Visitor()
}

func (i Identity) IsStudent() bool {
	return i.Kind == KindStudent
}
