package publish

import (
	"errors"
	"time"
)

type State string

const (
	StateDraft     State = "draft"
	StateScheduled State = "scheduled"
	StatePublished State = "published"
)

// Stored status values. Scheduled is never stored; it is always derived
// from the scheduled timestamp at read time, so a scheduled item becomes
// visible the moment its time elapses without any write.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

var ErrScheduleInPast = errors.New("scheduled publish time must be in the future")

// Publication is embedded by every schedulable content model.
// PublishedAt is set once on first publish and preserved across edits.
type Publication struct {
	Status             string     `gorm:"not null;default:'draft';index" json:"status"`
	ScheduledPublishAt *time.Time `json:"scheduled_publish_at,omitempty"`
	PublishedAt        *time.Time `json:"published_at,omitempty"`
}

// Eval derives the effective publication state at a given instant.
func (p Publication) Eval(now time.Time) State {
	if p.Status == StatusPublished {
		return StatePublished
	}
	if p.ScheduledPublishAt != nil {
		if now.Before(*p.ScheduledPublishAt) {
			return StateScheduled
		}
		return StatePublished
	}
	return StateDraft
}

// Live reports whether the item should be shown to readers at now.
func (p Publication) Live(now time.Time) bool {
	return p.Eval(now) == StatePublished
}

// ValidateSchedule rejects schedule timestamps that are not strictly in
// the future at submission time.
func ValidateSchedule(now, at time.Time) error {
	if !at.After(now) {
		return ErrScheduleInPast
	}
	return nil
}

// Schedule moves a draft to the scheduled state.
func (p *Publication) Schedule(now, at time.Time) error {
	if err := ValidateSchedule(now, at); err != nil {
		return err
	}
	p.Status = StatusDraft
	p.ScheduledPublishAt = &at
	return nil
}

// Publish flips the stored status and stamps PublishedAt only if it was
// never set, so re-publishing an edited item keeps its original publish
// recency.
func (p *Publication) Publish(now time.Time) {
	p.Status = StatusPublished
	if p.PublishedAt == nil {
		t := now
		p.PublishedAt = &t
	}
}

// Unpublish returns the item to draft. The schedule is cleared so the item
// does not silently re-promote itself; PublishedAt is kept.
func (p *Publication) Unpublish() {
	p.Status = StatusDraft
	p.ScheduledPublishAt = nil
}
