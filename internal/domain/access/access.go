package access

import (
	"redacao-app/internal/domain/identity"
)

// CanAccess decides whether an identity may see a restricted resource.
// Rule used by library materials, lessons, videos and themes:
//   - visitors see only visitor-flagged resources
//   - cohort members see resources listing their cohort, and also
//     unrestricted resources that are visitor-flagged
func CanAccess(r Restricted, id identity.Identity) bool {
	if !id.IsStudent() {
		return r.VisitorAllowed()
	}

	cohorts := r.CohortList()
	for _, name := range cohorts {
		if name == id.Cohort {
			return true
		}
	}

	// unrestricted-but-visitor-flagged resources are open to any cohort
	return len(cohorts) == 0 && r.VisitorAllowed()
}

// CanAccessExam is the rule applied to simulated exams only. It matches
// CanAccess except that an exam with no authorized cohorts and the visitor
// flag on is visible ONLY to visitors; cohort members get no fallback.
// The two rules diverge on purpose: exam listings have always behaved this
// way in production, and unifying them is a product decision, not ours.
func CanAccessExam(r Restricted, id identity.Identity) bool {
	if !id.IsStudent() {
		return r.VisitorAllowed()
	}

	for _, name := range r.CohortList() {
		if name == id.Cohort {
			return true
		}
	}
	return false
}
