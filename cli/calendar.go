package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/goto/intake/core/projection"
	"github.com/goto/intake/domain"
)

func CalendarCmd() *cobra.Command {
	var week, from, to string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show scheduled work and deadlines",
		Long: heredoc.Doc(`
			Show scheduled work and deadlines for a week, or for an explicit range.

			Scheduled entries span from the start date to the estimated end date, or one
			hour when there is none. Deadline markers sit on the limit date.
		`),
		Example: heredoc.Doc(`
			$ intake calendar
			$ intake calendar --week 2024-01-08
			$ intake calendar --from 2024-01-01 --to 2024-02-01
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				loc := a.config.Workflow.Location()
				rangeFrom, rangeTo, err := calendarRange(week, from, to, time.Now().In(loc), loc)
				if err != nil {
					return err
				}

				if err := a.run(func(ctx context.Context) error {
					_, err := a.services.RequestService.Load(ctx)
					return err
				}); err != nil {
					return err
				}

				entries := projection.Calendar(a.services.RequestService.Views(time.Now()), rangeFrom, rangeTo)
				if a.printer.structured() {
					return a.printer.print(entries)
				}

				hours := a.config.Workflow.WorkingHours
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					start, end := e.Start, e.End
					rows = append(rows, []string{
						string(e.Kind),
						formatTime(&start, loc),
						formatTime(&end, loc),
						e.Title,
						a.printer.status(a.ctx, e.View.Status),
						a.printer.bucket(a.ctx, e.Bucket),
						a.printer.yesNo(a.ctx, e.Kind == domain.CalendarEntryScheduled && hours.Highlight(e.Start)),
					})
				}
				a.printer.table(a.printer.headers(a.ctx, "kind", "start", "end", "title", "status", "bucket", "working_hours"), rows)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any day of the week to show (default today)")
	cmd.Flags().StringVar(&from, "from", "", "Range start, used with --to")
	cmd.Flags().StringVar(&to, "to", "", "Range end (exclusive)")

	return cmd
}

func calendarRange(week, from, to string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	if from != "" || to != "" {
		if from == "" || to == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("--from and --to must be used together")
		}
		f, err := parseFlagTime("from", from, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		t, err := parseFlagTime("to", to, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if !t.After(f) {
			return time.Time{}, time.Time{}, fmt.Errorf("--to must be after --from")
		}
		return f, t, nil
	}

	day := now
	if week != "" {
		var err error
		if day, err = parseFlagTime("week", week, loc); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	f, t := projection.Week(day)
	return f, t, nil
}
