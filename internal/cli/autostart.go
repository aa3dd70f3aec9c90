package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/emersion/go-autostart"
	"github.com/spf13/cobra"

	"github.com/campusops/coursebell/internal/logging"
)

var autostartDisable bool

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Register the daemon to start at login",
	Long: `Registers "coursebell daemon" as a login item so the daily check runs
without a terminal. If registration fails, manual scheduler instructions
for the current platform are printed instead.`,
	RunE: runAutostart,
}

func init() {
	autostartCmd.Flags().BoolVar(&autostartDisable, "disable", false, "remove the login item instead")
}

func runAutostart(cmd *cobra.Command, args []string) error {
	_, log, closer, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closer.Close()
	alog := logging.Component(log, "autostart")

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}

	app := &autostart.App{
		Name:        "coursebell",
		DisplayName: "Course Reminder Daemon",
		Exec:        []string{execPath, "daemon", "--config", cfgPath},
	}

	if autostartDisable {
		if !app.IsEnabled() {
			alog.Info().Msg("autostart was not enabled")
			return nil
		}
		if err := app.Disable(); err != nil {
			return fmt.Errorf("disable autostart: %w", err)
		}
		alog.Info().Msg("autostart disabled")
		return nil
	}

	if app.IsEnabled() {
		alog.Info().Msg("autostart already enabled")
		return nil
	}
	if err := app.Enable(); err != nil {
		// Registration is best effort; leave the operator with something
		// actionable rather than a bare failure.
		alog.Error().Err(err).Msg("autostart registration failed, set up the scheduler manually")
		fmt.Print(manualInstructions(execPath))
		return nil
	}
	alog.Info().Msg("autostart enabled, daemon will start at login")
	return nil
}

func manualInstructions(execPath string) string {
	switch runtime.GOOS {
	case "windows":
		return fmt.Sprintf(`Manual setup (Task Scheduler):
  1. Open Task Scheduler and create a Basic Task "Course Reminder Daily"
  2. Trigger: Daily at the configured check time
  3. Action: Start a program
       Program:   %s
       Arguments: check --config %s
`, execPath, cfgPath)
	case "darwin":
		return fmt.Sprintf(`Manual setup (cron):
  1. Run: crontab -e
  2. Add: 0 9 * * * %s check --config %s
  3. Save and exit
`, execPath, cfgPath)
	default:
		return fmt.Sprintf(`Manual setup (cron):
  1. Run: crontab -e
  2. Add: 0 9 * * * %s check --config %s >> coursebell.log 2>&1
  3. Save and exit
`, execPath, cfgPath)
	}
}
