package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"

	"github.com/goto/intake/core/projection"
	"github.com/goto/intake/domain"
	"github.com/goto/intake/pkg/diff"
	"github.com/goto/intake/pkg/slices"
)

const (
	viewAll       = "all"
	viewActive    = "active"
	viewUpcoming  = "upcoming"
	viewQueue     = "queue"
	viewCancelled = "cancelled"
)

var listViews = []string{viewAll, viewActive, viewUpcoming, viewQueue, viewCancelled}

func RequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "request",
		Aliases: []string{"requests"},
		Short:   "Manage requests and move them through the workflow",
		Example: heredoc.Doc(`
			$ intake request list --status pending
			$ intake request view abc123
			$ intake request advance abc123
		`),
	}

	cmd.AddCommand(
		listRequestsCmd(),
		summaryRequestsCmd(),
		viewRequestCmd(),
		createRequestCmd(),
		approveRequestCmd(),
		advanceRequestCmd(),
		cancelRequestCmd(),
		updateRequestCmd(),
		historyRequestCmd(),
	)

	return cmd
}

func listRequestsCmd() *cobra.Command {
	var view, filter, sortBy string
	var statuses []string
	var desc bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List requests",
		Example: heredoc.Doc(`
			$ intake request list
			$ intake request list --view upcoming --limit 10
			$ intake request list --status pending --status approved --sort start_date
			$ intake request list --filter 'DaysRemaining != nil && DaysRemaining < 3'
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.GenericsSliceContainsOne(listViews, view) {
				return fmt.Errorf("unknown view %q, expected one of %s", view, strings.Join(listViews, ", "))
			}
			return withApp(cmd, func(a *app) error {
				if err := a.run(func(ctx context.Context) error {
					_, err := a.services.RequestService.Load(ctx)
					return err
				}); err != nil {
					return err
				}

				if !cmd.Flags().Changed("limit") {
					limit = a.config.Dashboard.ListingLimit
				}
				views, err := selectViews(a.services.RequestService.Views(time.Now()), view, statuses, filter, limit)
				if err != nil {
					return err
				}
				if sortBy != "" {
					if err := projection.Sort(views, sortBy, desc); err != nil {
						return err
					}
				}

				if a.printer.structured() {
					return a.printer.print(views)
				}
				if len(views) == 0 {
					a.printer.message(a.ctx, "message.no_requests", nil)
					return nil
				}
				printViews(a, views)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&view, "view", viewAll, "Listing: "+strings.Join(listViews, ", "))
	cmd.Flags().StringSliceVarP(&statuses, "status", "s", nil, "Only requests in these statuses")
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Expression over Status, DaysRemaining, TimeConflict, Department, Responsible, Bucket, Name")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort by: "+strings.Join(projection.SortKeys, ", "))
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows for the upcoming and queue views (default from dashboard.listing_limit)")

	return cmd
}

// selectViews narrows the projected views to one listing.
func selectViews(views []*domain.RequestView, view string, statuses []string, filter string, limit int) ([]*domain.RequestView, error) {
	switch view {
	case viewActive:
		views = projection.Active(views)
	case viewUpcoming:
		views = projection.UpcomingDeadlines(views, limit)
	case viewQueue:
		views = projection.WorkQueue(views, limit)
	case viewCancelled:
		views = projection.Cancelled(views)
	}

	if len(statuses) > 0 {
		var wanted []domain.RequestStatus
		for _, raw := range slices.GenericsStandardizeSlice(statuses) {
			s, err := domain.ParseRequestStatus(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", err, raw)
			}
			wanted = append(wanted, s)
		}
		views = projection.ByStatus(views, wanted...)
	}

	if filter != "" {
		f, err := projection.CompileFilter(filter)
		if err != nil {
			return nil, err
		}
		return f.Apply(views)
	}
	return views, nil
}

func printViews(a *app, views []*domain.RequestView) {
	loc := a.config.Workflow.Location()
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{
			v.DocumentID,
			v.Name,
			orDash(v.Department),
			a.printer.status(a.ctx, v.Status),
			formatTime(v.Start, loc),
			formatTime(v.Limit, loc),
			a.printer.days(a.ctx, v.DaysRemaining),
			a.printer.bucket(a.ctx, v.Bucket),
			orDash(v.Responsible),
		})
	}
	a.printer.table(a.printer.headers(a.ctx,
		"document_id", "name", "department", "status", "start", "limit", "days_remaining", "bucket", "responsible",
	), rows)
}

func summaryRequestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Count requests per status and urgency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				if err := a.run(func(ctx context.Context) error {
					_, err := a.services.RequestService.Load(ctx)
					return err
				}); err != nil {
					return err
				}

				summary := projection.Summary(a.services.RequestService.Views(time.Now()))
				if a.printer.structured() {
					return a.printer.print(summary)
				}

				var rows [][]string
				for _, s := range domain.AllRequestStatuses {
					rows = append(rows, []string{a.printer.status(a.ctx, s), fmt.Sprint(summary.ByStatus[s])})
				}
				for _, b := range domain.AllColorBuckets {
					rows = append(rows, []string{a.printer.bucket(a.ctx, b), fmt.Sprint(summary.ByBucket[b])})
				}
				a.printer.table(a.printer.headers(a.ctx, "field", "value"), rows)
				return nil
			})
		},
	}
}

func viewRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <document-id>",
		Short: "Show a request with its details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				var schema domain.FieldSchema
				var r *domain.Request
				if err := a.run(func(ctx context.Context) error {
					var err error
					if schema, err = a.services.Preload(ctx); err != nil {
						return err
					}
					r, err = a.services.RequestService.Get(ctx, args[0])
					return err
				}); err != nil {
					return err
				}

				v := a.services.RequestService.Projector().ProjectOne(r, time.Now())
				if a.printer.structured() {
					return a.printer.print(v)
				}
				printView(a, v, schema)
				return nil
			})
		},
	}
}

func printView(a *app, v *domain.RequestView, schema domain.FieldSchema) {
	loc := a.config.Workflow.Location()
	p := a.printer
	rows := [][]string{
		{p.t.T(a.ctx, "header.document_id"), v.DocumentID},
		{p.t.T(a.ctx, "header.name"), v.Name},
		{p.t.T(a.ctx, "header.email"), v.Email},
		{p.t.T(a.ctx, "header.department"), orDash(v.Department)},
		{p.t.T(a.ctx, "header.status"), p.status(a.ctx, v.Status)},
		{p.t.T(a.ctx, "header.responsible"), orDash(v.Responsible)},
		{p.t.T(a.ctx, "header.progress"), orDash(v.Progress)},
		{p.t.T(a.ctx, "header.start"), formatTime(v.Start, loc)},
		{p.t.T(a.ctx, "header.estimated_end"), formatTime(v.EstimatedEnd, loc) + " (" + formatHours(v.EstimatedHours) + ")"},
		{p.t.T(a.ctx, "header.limit"), formatTime(v.Limit, loc)},
		{p.t.T(a.ctx, "header.days_remaining"), p.days(a.ctx, v.DaysRemaining)},
		{p.t.T(a.ctx, "header.bucket"), p.bucket(a.ctx, v.Bucket)},
		{p.t.T(a.ctx, "header.conflict"), p.yesNo(a.ctx, v.TimeConflict)},
	}
	if v.Status == domain.RequestStatusCancelled {
		rows = append(rows, []string{p.t.T(a.ctx, "status.cancelled"), orDash(v.CancelInfo)})
	}

	if len(schema) > 0 {
		for _, d := range schema.Details(v.Details) {
			rows = append(rows, []string{d.Label, d.Value})
		}
	} else {
		keys := make([]string, 0, len(v.Details))
		for k := range v.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rows = append(rows, []string{k, fmt.Sprint(v.Details[k])})
		}
	}

	p.table(p.headers(a.ctx, "field", "value"), rows)
}

func createRequestCmd() *cobra.Command {
	var sub domain.RequestSubmission
	var limitDate, formID string
	var details []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a new request",
		Example: heredoc.Doc(`
			$ intake request create --name "Ana Perez" --email ana@example.com --department IT \
				--limit-date 2024-02-01 --detail description="New laptop, 16GB" --detail priority=high
			$ intake request create --name "Ana Perez" --email ana@example.com \
				--detail tags=hardware --detail tags=urgent --detail "sites=HQ|Lab"
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				if limitDate != "" {
					t, err := parseFlagTime("limit-date", limitDate, a.config.Workflow.Location())
					if err != nil {
						return err
					}
					sub.LimitDate = &t
				}
				var created *domain.Request
				if err := a.run(func(ctx context.Context) error {
					var schema domain.FieldSchema
					if formID != "" {
						f, err := a.services.FormService.GetForm(ctx, formID)
						if err != nil {
							return err
						}
						schema = f.Fields
					} else {
						var err error
						if schema, err = a.services.FormService.GetSchema(ctx); err != nil {
							return err
						}
					}

					var err error
					if sub.Details, err = parseDetails(details, schema); err != nil {
						return err
					}
					created, err = a.services.RequestService.Create(ctx, sub, schema)
					return err
				}); err != nil {
					return err
				}

				if a.printer.structured() {
					return a.printer.print(created)
				}
				a.printer.message(a.ctx, "message.request_created", map[string]interface{}{"ID": created.DocumentID})
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sub.Name, "name", "", "Requester name")
	cmd.Flags().StringVar(&sub.Email, "email", "", "Requester email")
	cmd.Flags().StringVar(&sub.GlobalID, "global-id", "", "Requester global id")
	cmd.Flags().StringVar(&sub.Department, "department", "", "Requester department")
	cmd.Flags().StringVar(&limitDate, "limit-date", "", "Deadline, e.g. 2024-02-01")
	cmd.Flags().StringArrayVar(&details, "detail", nil, "Form field value as name=value, repeatable; multiselect fields collect repeated names or a|b values")
	cmd.Flags().StringVar(&formID, "form", "", "Validate against a named request form instead of the default one")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")

	return cmd
}

func approveRequestCmd() *cobra.Command {
	var responsible, start, end string

	cmd := &cobra.Command{
		Use:   "approve <document-id>",
		Short: "Approve a pending request, assigning it and scheduling the work",
		Example: heredoc.Doc(`
			$ intake request approve abc123 --responsible ana --start "2024-01-08 09:00" --end "2024-01-08 12:00"
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				schedule, err := parseSchedule(start, end, a.config.Workflow.Location())
				if err != nil {
					return err
				}
				return transition(a, func(ctx context.Context) (*domain.Request, error) {
					return a.services.RequestService.Approve(ctx, args[0], responsible, *schedule)
				})
			})
		},
	}

	cmd.Flags().StringVar(&responsible, "responsible", "", "Who will handle the request")
	cmd.Flags().StringVar(&start, "start", "", "Scheduled start, within working hours")
	cmd.Flags().StringVar(&end, "end", "", "Estimated end, within working hours")
	cmd.MarkFlagRequired("responsible")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}

func advanceRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance <document-id>",
		Short: "Move an approved or in-process request to its next status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return transition(a, func(ctx context.Context) (*domain.Request, error) {
					return a.services.RequestService.Advance(ctx, args[0])
				})
			})
		},
	}
}

func cancelRequestCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel <document-id>",
		Short: "Cancel an active request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return transition(a, func(ctx context.Context) (*domain.Request, error) {
					return a.services.RequestService.Cancel(ctx, args[0], reason)
				})
			})
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why the request is cancelled")
	cmd.MarkFlagRequired("reason")

	return cmd
}

func updateRequestCmd() *cobra.Command {
	var responsible, progress, start, end string

	cmd := &cobra.Command{
		Use:   "update <document-id>",
		Short: "Update the assignee, progress or schedule of an active request",
		Example: heredoc.Doc(`
			$ intake request update abc123 --progress "waiting for parts"
			$ intake request update abc123 --start "2024-01-09 08:00" --end "2024-01-09 10:00"
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				var update domain.RequestUpdate
				if cmd.Flags().Changed("responsible") {
					update.Responsible = &responsible
				}
				if cmd.Flags().Changed("progress") {
					update.Progress = &progress
				}
				if start != "" || end != "" {
					schedule, err := parseSchedule(start, end, a.config.Workflow.Location())
					if err != nil {
						return err
					}
					update.Schedule = schedule
				}

				var updated *domain.Request
				if err := a.run(func(ctx context.Context) error {
					var err error
					updated, err = a.services.RequestService.UpdateProgress(ctx, args[0], update)
					return err
				}); err != nil {
					return err
				}

				if a.printer.structured() {
					return a.printer.print(updated)
				}
				a.printer.message(a.ctx, "message.request_updated", map[string]interface{}{"ID": updated.DocumentID})
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&responsible, "responsible", "", "New assignee")
	cmd.Flags().StringVar(&progress, "progress", "", "Progress note")
	cmd.Flags().StringVar(&start, "start", "", "New scheduled start")
	cmd.Flags().StringVar(&end, "end", "", "New estimated end")

	return cmd
}

func historyRequestCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <document-id>",
		Short: "Show the audit trail of a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				if a.services.AuditLogRepository == nil {
					return fmt.Errorf("%s", a.translator.T(a.ctx, "message.history_unavailable"))
				}

				logs, err := a.services.AuditLogRepository.List(a.ctx, &domain.ListAuditLogFilter{
					DocumentID: args[0],
					Limit:      limit,
				})
				if err != nil {
					return err
				}

				if a.printer.structured() {
					return a.printer.print(logs)
				}
				loc := a.config.Workflow.Location()
				rows := make([][]string, 0, len(logs))
				for _, l := range logs {
					ts := l.Timestamp
					rows = append(rows, []string{
						formatTime(&ts, loc), l.Action, orDash(l.Actor), fmt.Sprint(l.Data["status"]), orDash(changedFields(l.Data)),
					})
				}
				a.printer.table(a.printer.headers(a.ctx, "timestamp", "action", "actor", "status", "changes"), rows)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries")

	return cmd
}

// parseDetails turns name=value flags into submission details. Values are taken
// verbatim, commas included. Multiselect fields gather every value given for their
// name, split on "|".
func parseDetails(raw []string, schema domain.FieldSchema) (map[string]interface{}, error) {
	details := make(map[string]interface{}, len(raw))
	for _, entry := range raw {
		name, value, ok := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --detail %q, expected name=value", entry)
		}

		if f, known := schema.Get(name); known && f.Type == domain.FieldTypeMultiselect {
			values, _ := details[name].([]string)
			for _, v := range strings.Split(value, "|") {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
			details[name] = values
			continue
		}

		if _, dup := details[name]; dup {
			return nil, fmt.Errorf("--detail %q given more than once", name)
		}
		details[name] = value
	}
	return details, nil
}

// changedFields lists the fields touched by a stored changelog.
func changedFields(data map[string]interface{}) string {
	raw, ok := data["changelog"]
	if !ok {
		return ""
	}
	var changelog diff.Changelog
	if err := mapstructure.Decode(raw, &changelog); err != nil {
		return ""
	}
	return changelog.String()
}

// transition runs a status change and reports the new status.
func transition(a *app, fn func(ctx context.Context) (*domain.Request, error)) error {
	var r *domain.Request
	if err := a.run(func(ctx context.Context) error {
		var err error
		r, err = fn(ctx)
		return err
	}); err != nil {
		return err
	}

	if a.printer.structured() {
		return a.printer.print(r)
	}
	a.printer.message(a.ctx, "message.request_transitioned", map[string]interface{}{
		"ID":     r.DocumentID,
		"Status": a.printer.status(a.ctx, r.Status),
	})
	return nil
}

func parseFlagTime(name, raw string, loc *time.Location) (time.Time, error) {
	t, ok := domain.ParseTimestamp(raw, loc)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid --%s %q, expected a date like 2024-01-08 09:00", name, raw)
	}
	return t, nil
}

func parseSchedule(start, end string, loc *time.Location) (*domain.Schedule, error) {
	if start == "" || end == "" {
		return nil, fmt.Errorf("both --start and --end are required for a schedule")
	}
	s, err := parseFlagTime("start", start, loc)
	if err != nil {
		return nil, err
	}
	e, err := parseFlagTime("end", end, loc)
	if err != nil {
		return nil, err
	}
	return &domain.Schedule{Start: s, End: e}, nil
}
