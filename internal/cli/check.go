package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/campusops/coursebell/internal/logging"
	"github.com/campusops/coursebell/internal/runner"
)

var (
	checkDate  string
	checkForce bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one reminder check and exit",
	Long: `Loads the schedule workbook, determines which reminders are due today
(or on --date), and emails the ones not yet recorded in the sent log.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkDate, "date", "", "check as if today were this date (YYYY-MM-DD)")
	checkCmd.Flags().BoolVar(&checkForce, "force", false, "send even if the sent log already has an entry")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, log, closer, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closer.Close()

	today := time.Now()
	if checkDate != "" {
		today, err = time.Parse(time.DateOnly, checkDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", checkDate, err)
		}
	}

	sent, err := runner.New(cfg, logging.Component(log, "check")).CheckOnce(cmd.Context(), today, checkForce)
	if err != nil {
		return err
	}
	log.Info().Int("sent", sent).Msg("check finished")
	return nil
}
