package schedule

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func win(startOffset, endOffset time.Duration) Window {
	return Window{StartAt: base.Add(startOffset), EndAt: base.Add(endOffset)}
}

func TestEval(t *testing.T) {
	w := win(-time.Hour, time.Hour)

	assert.Equal(t, StatusUpcoming, w.Eval(base.Add(-2*time.Hour)))
	assert.Equal(t, StatusOpen, w.Eval(base))
	assert.Equal(t, StatusClosed, w.Eval(base.Add(2*time.Hour)))

	// both ends inclusive
	assert.Equal(t, StatusOpen, w.Eval(w.StartAt))
	assert.Equal(t, StatusOpen, w.Eval(w.EndAt))
}

func TestValidate(t *testing.T) {
	require.NoError(t, win(0, time.Hour).Validate())
	assert.ErrorIs(t, win(time.Hour, 0).Validate(), ErrInvertedWindow)
}

func TestCompare_ListOrdering(t *testing.T) {
	openLate := win(-time.Hour, time.Hour)
	openEarly := win(-2*time.Hour, time.Hour)
	upcomingSoon := win(time.Hour, 3*time.Hour)
	upcomingLater := win(2*time.Hour, 4*time.Hour)
	closedRecent := win(-3*time.Hour, -time.Hour)
	closedOld := win(-5*time.Hour, -4*time.Hour)

	mixed := []Window{upcomingLater, closedOld, openLate, closedRecent, upcomingSoon, openEarly}
	sort.SliceStable(mixed, func(i, j int) bool {
		return Compare(mixed[i], mixed[j], base) < 0
	})

	want := []Window{
		openEarly, openLate, // open, ascending start
		upcomingSoon, upcomingLater, // upcoming, ascending start
		closedRecent, closedOld, // closed, descending end
	}
	assert.Equal(t, want, mixed)
}
