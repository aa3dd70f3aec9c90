// Package runner wires the schedule loader, reminder engine, sent log,
// invite generator and mailer into the command-level flows.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusops/coursebell/internal/config"
	"github.com/campusops/coursebell/internal/domain"
	"github.com/campusops/coursebell/internal/gitsource"
	"github.com/campusops/coursebell/internal/identity"
	"github.com/campusops/coursebell/internal/invite"
	"github.com/campusops/coursebell/internal/mailer"
	"github.com/campusops/coursebell/internal/reminder"
	"github.com/campusops/coursebell/internal/schedule"
	"github.com/campusops/coursebell/internal/sentlog"
)

// scheduleCheckoutDir is where a git-hosted schedule repo is kept locally.
const scheduleCheckoutDir = "schedule-repo"

// Runner executes one flow at a time; it holds no state between runs and
// reloads the workbook fresh on every call.
type Runner struct {
	cfg  *config.Config
	log  zerolog.Logger
	mail *mailer.Mailer
}

func New(cfg *config.Config, log zerolog.Logger) *Runner {
	return &Runner{
		cfg: cfg,
		log: log,
		mail: mailer.New(mailer.Settings{
			Host:     cfg.SMTPServer,
			Port:     cfg.SMTPPort,
			From:     cfg.SenderEmail,
			Password: cfg.SenderPassword,
		}),
	}
}

// loadRecords syncs the schedule repo when one is configured, then loads
// and normalizes the workbook.
func (r *Runner) loadRecords(ctx context.Context) ([]domain.CourseRecord, error) {
	path := r.cfg.ExcelFile
	if r.cfg.ScheduleRepo != "" {
		if err := gitsource.Sync(ctx, r.cfg.ScheduleRepo, scheduleCheckoutDir, r.log); err != nil {
			return nil, err
		}
		path = filepath.Join(scheduleCheckoutDir, r.cfg.ExcelFile)
	}

	cols := schedule.Columns{
		Name:  r.cfg.DateColumns.Name,
		Start: r.cfg.DateColumns.Start,
		End:   r.cfg.DateColumns.End,
	}
	return schedule.Load(path, cols, r.log)
}

// CheckOnce runs one reminder check for the given day: every record gets
// at most one due reminder, already-sent reminders are skipped via the
// sent log, and each failure is isolated to its record. It returns the
// number of reminders sent.
func (r *Runner) CheckOnce(ctx context.Context, today time.Time, force bool) (int, error) {
	records, err := r.loadRecords(ctx)
	if err != nil {
		return 0, err
	}

	db, err := sentlog.Open(r.cfg.SentLog)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	sent := 0
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		ev := reminder.Due(rec, today, r.cfg.ReminderDays)
		if ev == nil {
			continue
		}

		key := identity.Key(rec)
		if !force {
			was, err := db.WasSent(key, ev.Label, ev.Trigger)
			if err != nil {
				r.log.Error().Str("course", rec.Name).Err(err).Msg("sent log lookup failed, record skipped")
				continue
			}
			if was {
				r.log.Debug().Str("course", rec.Name).Str("type", ev.Label).Msg("reminder already sent today")
				continue
			}
		}

		subject, body := reminder.Content(*ev)
		err = r.mail.Send(ctx, mailer.Message{
			To:      r.cfg.Recipients,
			Subject: subject,
			Body:    body,
		})
		if err != nil {
			r.log.Error().Str("course", rec.Name).Str("type", ev.Label).Err(err).Msg("reminder send failed")
			continue
		}

		if err := db.Record(key, ev.Label, rec.Name, ev.Trigger); err != nil {
			r.log.Warn().Str("course", rec.Name).Err(err).Msg("sent reminder could not be recorded")
		}
		r.log.Info().Str("course", rec.Name).Str("type", ev.Label).Int("recipients", len(r.cfg.Recipients)).Msg("reminder sent")
		sent++
	}

	r.log.Info().Int("sent", sent).Int("records", len(records)).Msg("reminder check complete")
	return sent, nil
}

// GenerateInvites writes one .ics file per course with an end date into
// the configured invite directory and returns the written paths.
func (r *Runner) GenerateInvites(ctx context.Context) ([]string, error) {
	records, err := r.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	return invite.New(r.cfg.Location).WriteAll(records, r.cfg.InviteDir, r.log)
}

// EmailInvites generates the invite files and mails each one to every
// recipient individually, with the invite attached. Send failures are
// logged and do not abort the remaining sends. It returns the number of
// messages delivered.
func (r *Runner) EmailInvites(ctx context.Context) (int, error) {
	paths, err := r.GenerateInvites(ctx)
	if err != nil {
		return 0, err
	}
	if len(paths) == 0 {
		return 0, fmt.Errorf("no invite files were generated")
	}

	delivered := 0
	for _, path := range paths {
		courseName := strings.ReplaceAll(strings.TrimSuffix(filepath.Base(path), ".ics"), "_", " ")
		for _, recipient := range r.cfg.Recipients {
			if err := ctx.Err(); err != nil {
				return delivered, err
			}

			err := r.mail.Send(ctx, mailer.Message{
				To:         []string{recipient},
				Subject:    fmt.Sprintf("Calendar Invitation: %s", courseName),
				Body:       inviteBody(courseName),
				Attachment: path,
			})
			if err != nil {
				r.log.Error().Str("course", courseName).Str("recipient", recipient).Err(err).Msg("invite send failed")
				continue
			}
			delivered++
		}
	}

	r.log.Info().Int("delivered", delivered).Int("attempted", len(paths)*len(r.cfg.Recipients)).Msg("invite mailing complete")
	return delivered, nil
}

func inviteBody(courseName string) string {
	return fmt.Sprintf(`Dear Team Member,

You are invited to add this course to your calendar:

Course: %s

Please find the calendar invitation attached to this email. You can:
1. Open the .ics file to add it to your calendar
2. Import it into Google Calendar, Outlook, or Apple Calendar

Best regards,
Course Reminder System
`, courseName)
}
