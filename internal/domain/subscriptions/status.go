package subscriptions

import "time"

type StatusValue string

const (
	StatusActive  StatusValue = "active"
	StatusExpired StatusValue = "expired"
)

// Status derives a subscription's state at a given instant: active iff the
// expiry date has not passed. Recomputed on every read, never cached.
func Status(s Subscription, now time.Time) StatusValue {
	if s.ExpiryDate.Before(now) {
		return StatusExpired
	}
	return StatusActive
}

func Active(s Subscription, now time.Time) bool {
	return Status(s, now) == StatusActive
}

// ExpiringSoon drives the renewal warning shown in the student portal.
func ExpiringSoon(s Subscription, now time.Time, within time.Duration) bool {
	return Active(s, now) && s.ExpiryDate.Sub(now) <= within
}
