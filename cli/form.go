package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goto/intake/domain"
)

func FormCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "form",
		Aliases: []string{"forms"},
		Short:   "Manage the request form and named request forms",
		Example: heredoc.Doc(`
			$ intake form body
			$ intake form list
			$ intake form update f1 --fields-file fields.yaml
		`),
	}

	cmd.AddCommand(
		listFormsCmd(),
		viewFormCmd(),
		createFormCmd(),
		updateFormCmd(),
		deleteFormCmd(),
		requestBodyCmd(),
	)

	return cmd
}

func listFormsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List request forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				var forms []*domain.RequestForm
				if err := a.run(func(ctx context.Context) error {
					var err error
					forms, err = a.services.FormService.ListForms(ctx)
					return err
				}); err != nil {
					return err
				}

				if a.printer.structured() {
					return a.printer.print(forms)
				}
				rows := make([][]string, 0, len(forms))
				for _, f := range forms {
					rows = append(rows, []string{f.DocumentID, f.Title, fmt.Sprint(len(f.Fields))})
				}
				a.printer.table(a.printer.headers(a.ctx, "document_id", "title", "field"), rows)
				return nil
			})
		},
	}
}

func viewFormCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <document-id>",
		Short: "Show a request form and its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				var f *domain.RequestForm
				if err := a.run(func(ctx context.Context) error {
					var err error
					f, err = a.services.FormService.GetForm(ctx, args[0])
					return err
				}); err != nil {
					return err
				}

				if a.printer.structured() {
					return a.printer.print(f)
				}
				printFields(a, f.Title, f.Info, f.Fields)
				return nil
			})
		},
	}
}

func createFormCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a request form with no fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				var f *domain.RequestForm
				if err := a.run(func(ctx context.Context) error {
					var err error
					f, err = a.services.FormService.CreateForm(ctx, title)
					return err
				}); err != nil {
					return err
				}

				if a.printer.structured() {
					return a.printer.print(f)
				}
				a.printer.message(a.ctx, "message.form_created", map[string]interface{}{"ID": f.DocumentID})
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Form title")
	cmd.MarkFlagRequired("title")

	return cmd
}

func updateFormCmd() *cobra.Command {
	var title, info, fieldsFile string

	cmd := &cobra.Command{
		Use:   "update <document-id>",
		Short: "Change the title, info or fields of a request form",
		Long: heredoc.Doc(`
			Change the title, info or fields of a request form. The fields file is a YAML
			list of fields:

				- name: description
				  label: Description
				  type: textarea
				- name: priority
				  type: select
				  options: [low, high]
				  required: false
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				var updated *domain.RequestForm
				if err := a.run(func(ctx context.Context) error {
					f, err := a.services.FormService.GetForm(ctx, args[0])
					if err != nil {
						return err
					}
					if cmd.Flags().Changed("title") {
						f.Title = title
					}
					if cmd.Flags().Changed("info") {
						f.Info = info
					}
					if fieldsFile != "" {
						if f.Fields, err = readFields(fieldsFile); err != nil {
							return err
						}
					}

					updated, err = a.services.FormService.UpdateForm(ctx, f)
					return err
				}); err != nil {
					return err
				}

				if a.printer.structured() {
					return a.printer.print(updated)
				}
				a.printer.message(a.ctx, "message.form_updated", map[string]interface{}{"ID": updated.DocumentID})
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&info, "info", "", "New info text")
	cmd.Flags().StringVar(&fieldsFile, "fields-file", "", "YAML file with the new field list")
	cmd.MarkFlagFilename("fields-file", "yaml", "yml")

	return cmd
}

func deleteFormCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <document-id>",
		Short: "Delete a request form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				if err := a.run(func(ctx context.Context) error {
					return a.services.FormService.DeleteForm(ctx, args[0])
				}); err != nil {
					return err
				}
				a.printer.message(a.ctx, "message.form_deleted", map[string]interface{}{"ID": args[0]})
				return nil
			})
		},
	}
}

func requestBodyCmd() *cobra.Command {
	var title, info string

	cmd := &cobra.Command{
		Use:   "body",
		Short: "Show the general request form, or change its title and info",
		Example: heredoc.Doc(`
			$ intake form body
			$ intake form body --title "IT requests" --info "Fill every field"
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				update := cmd.Flags().Changed("title") || cmd.Flags().Changed("info")

				var body *domain.RequestBody
				if err := a.run(func(ctx context.Context) error {
					var err error
					body, err = a.services.FormService.GetRequestBody(ctx)
					if err != nil || !update {
						return err
					}
					if !cmd.Flags().Changed("title") {
						title = body.Title
					}
					if !cmd.Flags().Changed("info") {
						info = body.Info
					}
					body, err = a.services.FormService.UpdateRequestBody(ctx, title, info)
					return err
				}); err != nil {
					return err
				}

				if a.printer.structured() {
					return a.printer.print(body)
				}
				if update {
					a.printer.message(a.ctx, "message.request_body_updated", nil)
					return nil
				}
				printFields(a, body.Title, body.Info, body.Fields)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&info, "info", "", "New info text")

	return cmd
}

func printFields(a *app, title, info string, fields domain.FieldSchema) {
	fmt.Fprintln(a.printer.out, title)
	if info != "" {
		fmt.Fprintln(a.printer.out, info)
	}
	fmt.Fprintln(a.printer.out)

	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []string{
			f.Name,
			orDash(f.Label),
			string(f.Type),
			strings.Join(f.Options, ", "),
			a.printer.yesNo(a.ctx, f.IsRequired()),
		})
	}
	a.printer.table(a.printer.headers(a.ctx, "field", "label", "type", "options", "required"), rows)
}

func readFields(path string) (domain.FieldSchema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fields file: %w", err)
	}
	var fields domain.FieldSchema
	if err := yaml.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("parsing fields file: %w", err)
	}
	return fields, nil
}
