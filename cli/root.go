package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
	outputJSON  = "json"
)

// New returns the root command of the intake CLI.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intake <command> <subcommand> [flags]",
		Short: "Request intake and approval tracking",
		Long: heredoc.Doc(`
			Track requests stored in the CMS through their approval workflow.

			Requests move from Pending to Approved, In Process and Completed, and can be
			cancelled while still active.
		`),
		Example: heredoc.Doc(`
			$ intake request list --view upcoming
			$ intake request approve abc123 --responsible ana --start "2024-01-08 09:00" --end "2024-01-08 12:00"
			$ intake calendar --week 2024-01-08
		`),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringP("config", "c", "./config.yaml", "Config file path")
	cmd.MarkPersistentFlagFilename("config")
	cmd.PersistentFlags().String("locale", "", "Output language (en, es); overrides the config")
	cmd.PersistentFlags().String("actor", "", "Who is running the command, recorded in the audit trail")
	cmd.PersistentFlags().StringP("output", "o", outputTable, "Output format: table, yaml or json")

	cmd.AddCommand(
		RequestCmd(),
		CalendarCmd(),
		FormCmd(),
		JobCmd(),
		MigrateCmd(),
	)

	return cmd
}
