package domain

import "time"

// CourseRecord is one normalized row of the schedule workbook.
// Dates are date-only: midnight UTC, no time-of-day component.
type CourseRecord struct {
	Name        string
	Program     string
	Start       time.Time
	End         time.Time
	HasEnd      bool
	Sheet       string
	Description string
}

// ReminderEvent is the decision output of the reminder engine: a single
// reminder that is due for a record on a given day. It is recomputed fresh
// on every run and never persisted; at-most-once behavior comes from the
// sent log, keyed by the record identity, the label and the trigger date.
type ReminderEvent struct {
	Record  CourseRecord
	Offset  int
	Trigger time.Time
	Label   string
}

// Date normalizes t to a date-only value (midnight UTC).
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of calendar days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)).Hours() / 24)
}
