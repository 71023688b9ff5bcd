package schedule

import (
	"errors"
	"time"
)

type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusOpen     Status = "open"
	StatusClosed   Status = "closed"
)

var ErrInvertedWindow = errors.New("window ends before it starts")

// Window is the availability range of exams, exercises and board sessions.
// Both ends are inclusive and interpreted in the platform timezone.
type Window struct {
	StartAt time.Time `gorm:"not null;index" json:"start_at"`
	EndAt   time.Time `gorm:"not null;index" json:"end_at"`
}

func (w Window) Validate() error {
	if w.EndAt.Before(w.StartAt) {
		return ErrInvertedWindow
	}
	return nil
}

func (w Window) Eval(now time.Time) Status {
	if now.Before(w.StartAt) {
		return StatusUpcoming
	}
	if now.After(w.EndAt) {
		return StatusClosed
	}
	return StatusOpen
}

func (w Window) Open(now time.Time) bool {
	return w.Eval(now) == StatusOpen
}

// rank orders statuses for list display: open, then upcoming, then closed.
func rank(s Status) int {
	switch s {
	case StatusOpen:
		return 0
	case StatusUpcoming:
		return 1
	default:
		return 2
	}
}

// Compare implements the listing order used across exam and activity
// views: open windows first (earliest start first), then upcoming
// (earliest start first), then closed (latest end first). Negative means
// a sorts before b.
func Compare(a, b Window, now time.Time) int {
	sa, sb := a.Eval(now), b.Eval(now)
	if ra, rb := rank(sa), rank(sb); ra != rb {
		return ra - rb
	}

	switch sa {
	case StatusClosed:
		// most recently closed first
		if a.EndAt.After(b.EndAt) {
			return -1
		}
		if b.EndAt.After(a.EndAt) {
			return 1
		}
	default:
		if a.StartAt.Before(b.StartAt) {
			return -1
		}
		if b.StartAt.Before(a.StartAt) {
			return 1
		}
	}
	return 0
}
