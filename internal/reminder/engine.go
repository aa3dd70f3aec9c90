// Package reminder decides, for a course record and a calendar day, which
// reminder is due and what the notification should say.
package reminder

import (
	"fmt"
	"sort"
	"time"

	"github.com/campusops/coursebell/internal/domain"
)

// DefaultOffsets mirrors the stock configuration: 2 weeks, 1 week, 2 days
// and 1 day before the start date, and 2 weeks after the end date.
var DefaultOffsets = []int{14, 7, 2, 1, -14}

// Label derives the reminder type tag from the offset value, so configured
// offsets and firing logic can never disagree.
func Label(offset int) string {
	if offset < 0 {
		return fmt.Sprintf("%d_days_after", -offset)
	}
	return fmt.Sprintf("%d_days_before", offset)
}

// Due returns the single reminder event due for rec on today, or nil.
//
// A positive offset d fires when today is exactly d days before the start
// date; a negative offset fires when today is exactly |d| days after the
// end date (and only when an end date exists). Before-start offsets are
// evaluated in ascending order, then after-end offsets; the first match
// wins and no further offsets are evaluated, so a record yields at most
// one event per day.
func Due(rec domain.CourseRecord, today time.Time, offsets []int) *domain.ReminderEvent {
	today = domain.Date(today)

	for _, d := range ordered(offsets) {
		switch {
		case d > 0:
			if domain.DaysBetween(today, rec.Start) == d {
				return &domain.ReminderEvent{
					Record:  rec,
					Offset:  d,
					Trigger: today,
					Label:   Label(d),
				}
			}
		case d < 0:
			if rec.HasEnd && domain.DaysBetween(rec.End, today) == -d {
				return &domain.ReminderEvent{
					Record:  rec,
					Offset:  d,
					Trigger: today,
					Label:   Label(d),
				}
			}
		}
	}
	return nil
}

// UpcomingDates enumerates every candidate trigger date for rec that falls
// on or after today, sorted ascending. This is the "list all upcoming
// reminder dates" query; the daily firing decision in Due uses exact
// day-difference equality instead.
func UpcomingDates(rec domain.CourseRecord, today time.Time, offsets []int) []time.Time {
	today = domain.Date(today)

	var dates []time.Time
	for _, d := range offsets {
		switch {
		case d > 0:
			candidate := domain.Date(rec.Start).AddDate(0, 0, -d)
			if !candidate.Before(today) {
				dates = append(dates, candidate)
			}
		case d < 0:
			if !rec.HasEnd {
				continue
			}
			candidate := domain.Date(rec.End).AddDate(0, 0, -d)
			if !candidate.Before(today) {
				dates = append(dates, candidate)
			}
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// ordered returns the offsets in evaluation order: positives ascending,
// then negatives by increasing days-after. A zero offset never fires.
func ordered(offsets []int) []int {
	out := make([]int, 0, len(offsets))
	for _, d := range offsets {
		if d > 0 {
			out = append(out, d)
		}
	}
	sort.Ints(out)

	var after []int
	for _, d := range offsets {
		if d < 0 {
			after = append(after, d)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(after)))
	return append(out, after...)
}
