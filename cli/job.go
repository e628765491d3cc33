package cli

import (
	"fmt"
	"sort"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/goto/intake/jobs"
)

func JobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "job",
		Aliases: []string{"jobs"},
		Short:   "Manage jobs",
		Example: heredoc.Doc(`
			$ intake job run deadline_digest
		`),
	}

	cmd.AddCommand(
		runJobCmd(),
	)

	return cmd
}

func runJobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fire a specific job",
		Example: heredoc.Doc(`
			$ intake job run deadline_digest
			$ intake job run pending_requests_reminder
		`),
		Args: cobra.ExactValidArgs(1),
		ValidArgs: []string{
			string(jobs.TypeDeadlineDigest),
			string(jobs.TypePendingRequestsReminder),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				handler := jobs.NewHandler(a.logger, a.services.RequestService)
				jobsMap := handler.Jobs()

				jobName := jobs.Type(args[0])
				job := jobsMap[jobName]
				if job == nil {
					names := make([]string, 0, len(jobsMap))
					for name := range jobsMap {
						names = append(names, string(name))
					}
					sort.Strings(names)
					return fmt.Errorf("invalid job name: %s, expected one of %v", jobName, names)
				}
				jobConfig := a.config.Jobs[jobName].Config
				if err := job(a.ctx, jobConfig); err != nil {
					return fmt.Errorf(`failed to run job "%s": %w`, jobName, err)
				}

				return nil
			})
		},
	}

	return cmd
}
