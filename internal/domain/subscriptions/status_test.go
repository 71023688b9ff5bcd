package subscriptions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_ExpiryBoundary(t *testing.T) {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	sub := Subscription{StartDate: now.AddDate(0, -1, 0), ExpiryDate: now}

	// expiry_date >= now counts as active, including the exact instant
	assert.Equal(t, StatusActive, Status(sub, now))
	assert.Equal(t, StatusActive, Status(sub, now.Add(-time.Second)))
	assert.Equal(t, StatusExpired, Status(sub, now.Add(time.Second)))
}

func TestStatus_FlipsOnExpiryEditOnly(t *testing.T) {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	sub := Subscription{StartDate: now.AddDate(0, -1, 0), ExpiryDate: now.AddDate(0, 1, 0)}

	assert.True(t, Active(sub, now))

	// moving expiry into the past transitions active -> expired with no
	// other field involved
	sub.ExpiryDate = now.AddDate(0, 0, -1)
	assert.False(t, Active(sub, now))
}

func TestExpiringSoon(t *testing.T) {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	warn := Subscription{ExpiryDate: now.AddDate(0, 0, 3)}
	comfortable := Subscription{ExpiryDate: now.AddDate(0, 2, 0)}
	expired := Subscription{ExpiryDate: now.AddDate(0, 0, -1)}

	week := 7 * 24 * time.Hour
	assert.True(t, ExpiringSoon(warn, now, week))
	assert.False(t, ExpiringSoon(comfortable, now, week))
	assert.False(t, ExpiringSoon(expired, now, week))
}
