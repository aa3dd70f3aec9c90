// Package cli defines the coursebell command tree.
package cli

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/campusops/coursebell/internal/config"
	"github.com/campusops/coursebell/internal/logging"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "coursebell",
	Short:         "Course schedule reminder and calendar-invite mailer",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "email_config.json", "configuration file")
	// Flag names match config keys so they can override the file directly.
	rootCmd.PersistentFlags().String("excel_file", "", "schedule workbook path")
	rootCmd.PersistentFlags().String("invite_dir", "", "invite output directory")
	rootCmd.PersistentFlags().String("sent_log", "", "sent-reminder database path")
	rootCmd.PersistentFlags().String("check_time", "", "daily check time (HH:MM)")

	rootCmd.AddCommand(checkCmd, daemonCmd, invitesCmd, autostartCmd)
}

// ExecuteContext runs the CLI; ctx cancellation stops the daemon and any
// in-flight flow between units of work.
func ExecuteContext(ctx context.Context) error { return rootCmd.ExecuteContext(ctx) }

// setup loads the configuration (with flag overrides) and builds the root
// logger. The returned closer owns the optional log file.
func setup(cmd *cobra.Command) (*config.Config, zerolog.Logger, io.Closer, error) {
	cfg, err := config.Load(cfgPath, cmd.Flags())
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	log, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	return cfg, log, closer, nil
}
