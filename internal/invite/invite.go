// Package invite renders course records as all-day calendar invites and
// writes them out as .ics files.
package invite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusops/coursebell/internal/domain"
)

const (
	productID = "-//coursebell//Course Schedule//EN"
	uidDomain = "coursebell"

	icsDate     = "20060102"
	icsDateTime = "20060102T150405Z"
)

// Generator produces calendar invites for course records.
type Generator struct {
	location string

	// Injection points so tests can pin the two non-deterministic fields.
	now    func() time.Time
	newUID func() string
}

// New returns a Generator that stamps every event with the given location.
func New(location string) *Generator {
	return &Generator{
		location: location,
		now:      time.Now,
		newUID:   uuid.NewString,
	}
}

// Generate renders rec as a single-event VCALENDAR string. The event is an
// all-day range; DTEND is the day after the course's last day, per the
// exclusive end convention of RFC 5545, so inclusive-display clients show
// the final day too. Output is deterministic except for UID and DTSTAMP.
func (g *Generator) Generate(rec domain.CourseRecord) (string, error) {
	if !rec.HasEnd {
		return "", fmt.Errorf("course %q has no end date", rec.Name)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	ev := ical.NewEvent()
	ev.Props.SetText(ical.PropUID, fmt.Sprintf("%s@%s", g.newUID(), uidDomain))
	ev.Props.SetText(ical.PropSummary, rec.Name)
	ev.Props.SetText(ical.PropDescription, g.description(rec))
	ev.Props.SetText(ical.PropLocation, g.location)
	ev.Props.SetText(ical.PropStatus, "CONFIRMED")
	ev.Props.SetText(ical.PropTransparency, "OPAQUE")

	stamp := ical.NewProp(ical.PropDateTimeStamp)
	stamp.Value = g.now().UTC().Truncate(time.Second).Format(icsDateTime)
	ev.Props.Set(stamp)

	ev.Props.Set(dateProp(ical.PropDateTimeStart, rec.Start))
	ev.Props.Set(dateProp(ical.PropDateTimeEnd, rec.End.AddDate(0, 0, 1)))

	cal.Children = append(cal.Children, ev.Component)

	var buf strings.Builder
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("encode invite for %q: %w", rec.Name, err)
	}
	return buf.String(), nil
}

func (g *Generator) description(rec domain.CourseRecord) string {
	if rec.Description != "" {
		return rec.Description
	}
	return fmt.Sprintf("Course: %s\nProgram: %s\nStart: %s\nEnd: %s",
		rec.Name, rec.Program,
		rec.Start.Format(time.DateOnly), rec.End.Format(time.DateOnly))
}

func dateProp(name string, day time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.Params.Set(ical.ParamValue, "DATE")
	p.Value = day.Format(icsDate)
	return p
}

// Filename maps a course name to a safe invite file name: spaces and path
// separators become underscores.
func Filename(courseName string) string {
	r := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return r.Replace(courseName) + ".ics"
}

// WriteAll writes one invite file per record into dir, creating it if
// needed. Records missing a start or end date are skipped with a warning;
// a single failed record does not stop the rest. The written paths are
// returned.
func (g *Generator) WriteAll(records []domain.CourseRecord, dir string, log zerolog.Logger) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create invite directory %s: %w", dir, err)
	}

	var written []string
	for _, rec := range records {
		if !rec.HasEnd {
			log.Warn().Str("course", rec.Name).Msg("no end date, invite skipped")
			continue
		}

		content, err := g.Generate(rec)
		if err != nil {
			log.Error().Str("course", rec.Name).Err(err).Msg("invite generation failed")
			continue
		}

		path := filepath.Join(dir, Filename(rec.Name))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			log.Error().Str("course", rec.Name).Err(err).Msg("invite write failed")
			continue
		}

		log.Info().Str("course", rec.Name).Str("path", path).Msg("invite written")
		written = append(written, path)
	}

	log.Info().Int("written", len(written)).Int("records", len(records)).Msg("invite generation complete")
	return written, nil
}
