package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/campusops/coursebell/internal/domain"
)

// Content builds the (subject, body) pair for a reminder event. The
// phrasing is a function of the offset value, so any configured offset
// produces consistent wording.
func Content(ev domain.ReminderEvent) (subject, body string) {
	rec := ev.Record
	subject = fmt.Sprintf("Course Reminder: %s", rec.Name)

	endDate := "N/A"
	if rec.HasEnd {
		endDate = rec.End.Format(time.DateOnly)
	}

	var b strings.Builder
	b.WriteString("Dear Team,\n\n")
	if ev.Offset > 0 {
		b.WriteString(fmt.Sprintf("This is a reminder that %s %s.\n", rec.Name, startPhrase(ev.Offset)))
	} else {
		b.WriteString(fmt.Sprintf("This is a follow-up reminder for %s which ended %s ago.\n", rec.Name, spanPhrase(-ev.Offset)))
	}
	b.WriteString("\nCourse Details:\n")
	b.WriteString(fmt.Sprintf("- Course: %s\n", rec.Name))
	b.WriteString(fmt.Sprintf("- Program: %s\n", rec.Program))
	b.WriteString(fmt.Sprintf("- Start Date: %s\n", rec.Start.Format(time.DateOnly)))
	b.WriteString(fmt.Sprintf("- End Date: %s\n", endDate))

	return subject, b.String()
}

func startPhrase(days int) string {
	if days == 1 {
		return "is starting tomorrow"
	}
	if days < 7 {
		return fmt.Sprintf("is starting in %s", spanPhrase(days))
	}
	return fmt.Sprintf("is scheduled to start in %s", spanPhrase(days))
}

// spanPhrase renders a day count in the most natural unit: whole weeks
// when the count divides evenly, days otherwise.
func spanPhrase(days int) string {
	if days%7 == 0 {
		weeks := days / 7
		if weeks == 1 {
			return "1 week"
		}
		return fmt.Sprintf("%d weeks", weeks)
	}
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
