package cli

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/campusops/coursebell/internal/logging"
	"github.com/campusops/coursebell/internal/runner"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run continuously, checking reminders daily at the configured time",
	RunE:  runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, log, closer, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closer.Close()

	hour, minute, err := cfg.CheckClock()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	dlog := logging.Component(log, "daemon")
	run := runner.New(cfg, dlog)

	check := func() {
		if _, err := run.CheckOnce(ctx, time.Now(), false); err != nil {
			dlog.Error().Err(err).Msg("reminder check failed")
		}
	}

	// One immediate check on startup, then the daily trigger. The sent log
	// keeps the startup check from double-sending after a restart.
	check()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(fmt.Sprintf("%d %d * * *", minute, hour), check); err != nil {
		return fmt.Errorf("schedule daily check: %w", err)
	}
	scheduler.Start()
	dlog.Info().Str("at", cfg.CheckTime).Msg("daemon started, checking daily")

	<-ctx.Done()
	dlog.Info().Msg("shutting down")
	<-scheduler.Stop().Done()
	return nil
}
