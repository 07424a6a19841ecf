// Package travel holds the date rules behind creator travel schedules: when a
// trip shows up in search, when it counts as "travelling now" and when it is
// old enough to be swept.
package travel

import (
	"time"

	"github.com/adhub/adhub/backend/internal/models"
)

// State is the display state of a schedule on a given day.
type State string

const (
	StateUpcoming State = "upcoming"
	StateVisible  State = "visible"
	StateActive   State = "active"
	StateExpired  State = "expired"
)

// VisibilityLeadDays is how long before departure a trip starts boosting search.
const VisibilityLeadDays = 30

// SweepGraceDays is how long a finished trip is kept before it may be deleted.
const SweepGraceDays = 1

// Classify places today on the schedule's timeline. The four states partition
// the calendar: each day maps to exactly one of them.
func Classify(today, start, end models.Date) State {
	switch {
	case today.After(end):
		return StateExpired
	case !today.Before(start):
		return StateActive
	case !today.Before(start.AddDays(-VisibilityLeadDays)):
		return StateVisible
	default:
		return StateUpcoming
	}
}

// IsTraveling reports whether the state puts the creator in the travel boost.
func (s State) IsTraveling() bool {
	return s == StateVisible || s == StateActive
}

// Label is the badge text shown next to a schedule.
func (s State) Label() string {
	switch s {
	case StateUpcoming:
		return "Upcoming"
	case StateVisible:
		return "Traveling soon"
	case StateActive:
		return "Traveling now"
	case StateExpired:
		return "Past trip"
	default:
		return ""
	}
}

// SweepCutoff returns the first end date that survives a sweep on today.
// Schedules ending strictly before it are deleted.
func SweepCutoff(today models.Date) models.Date {
	return today.AddDays(-SweepGraceDays)
}

// IsSweepable reports whether a schedule ending on end would be removed on today.
func IsSweepable(today, end models.Date) bool {
	return end.Before(SweepCutoff(today))
}

// WindowBounds returns the range of start dates (inclusive) and end dates
// (inclusive lower bound) that put a schedule in the visible or active state on today.
// A schedule is in the window when start <= maxStart and end >= minEnd.
func WindowBounds(today models.Date) (maxStart, minEnd models.Date) {
	return today.AddDays(VisibilityLeadDays), today
}

// Clock supplies the current instant; tests replace it.
type Clock func() time.Time

// Today returns the current calendar day in UTC.
func (c Clock) Today() models.Date {
	if c == nil {
		return models.DateOf(time.Now().UTC())
	}
	return models.DateOf(c().UTC())
}

// Now returns the current instant.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
