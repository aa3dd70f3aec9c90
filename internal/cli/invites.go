package cli

import (
	"github.com/spf13/cobra"

	"github.com/campusops/coursebell/internal/logging"
	"github.com/campusops/coursebell/internal/runner"
)

var invitesCmd = &cobra.Command{
	Use:   "invites",
	Short: "Generate or email calendar-invite files",
}

var invitesGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write one .ics file per course into the invite directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, closer, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()

		paths, err := runner.New(cfg, logging.Component(log, "invites")).GenerateInvites(cmd.Context())
		if err != nil {
			return err
		}
		log.Info().Int("files", len(paths)).Str("dir", cfg.InviteDir).Msg("invites generated")
		return nil
	},
}

var invitesSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Generate invite files and email each to every recipient",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, closer, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()

		delivered, err := runner.New(cfg, logging.Component(log, "invites")).EmailInvites(cmd.Context())
		if err != nil {
			return err
		}
		log.Info().Int("delivered", delivered).Msg("invites emailed")
		return nil
	},
}

func init() {
	invitesCmd.AddCommand(invitesGenerateCmd, invitesSendCmd)
}
