package publish

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval_DraftWithoutSchedule(t *testing.T) {
	var p Publication
	p.Status = StatusDraft

	assert.Equal(t, StateDraft, p.Eval(time.Now()))
	assert.False(t, p.Live(time.Now()))
}

func TestEval_ScheduledFlipsAtTimestamp(t *testing.T) {
	at := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	p := Publication{Status: StatusDraft, ScheduledPublishAt: &at}

	// one second before: still scheduled
	assert.Equal(t, StateScheduled, p.Eval(at.Add(-time.Second)))
	// one second after: published, with no write having happened
	assert.Equal(t, StatePublished, p.Eval(at.Add(time.Second)))
	// exactly at the timestamp counts as published
	assert.Equal(t, StatePublished, p.Eval(at))
}

func TestEval_StoredPublishedWins(t *testing.T) {
	future := time.Now().Add(time.Hour)
	p := Publication{Status: StatusPublished, ScheduledPublishAt: &future}

	assert.Equal(t, StatePublished, p.Eval(time.Now()))
}

func TestSchedule_RejectsPastTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	var p Publication
	assert.ErrorIs(t, p.Schedule(now, now.Add(-time.Minute)), ErrScheduleInPast)
	assert.ErrorIs(t, p.Schedule(now, now), ErrScheduleInPast)
	assert.Nil(t, p.ScheduledPublishAt)

	require.NoError(t, p.Schedule(now, now.Add(time.Minute)))
	require.NotNil(t, p.ScheduledPublishAt)
	assert.Equal(t, StateScheduled, p.Eval(now))
}

func TestPublish_PreservesFirstPublishedAt(t *testing.T) {
	first := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	later := first.AddDate(0, 2, 0)

	var p Publication
	p.Publish(first)
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, first, *p.PublishedAt)

	// edit + re-publish must not reset publish recency
	p.Unpublish()
	p.Publish(later)
	assert.Equal(t, first, *p.PublishedAt)
	assert.Equal(t, StatePublished, p.Eval(later))
}

func TestUnpublish_ClearsSchedule(t *testing.T) {
	at := time.Now().Add(-time.Hour)
	p := Publication{Status: StatusDraft, ScheduledPublishAt: &at}
	require.Equal(t, StatePublished, p.Eval(time.Now()))

	p.Unpublish()
	assert.Equal(t, StateDraft, p.Eval(time.Now()))
}
