package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/goto/intake/domain"
	"github.com/goto/intake/pkg/i18n"
)

const displayTimeLayout = "2006-01-02 15:04"

type printer struct {
	out    io.Writer
	errOut io.Writer
	format string
	t      *i18n.Translator
}

func newPrinter(out, errOut io.Writer, format string, t *i18n.Translator) *printer {
	return &printer{out: out, errOut: errOut, format: format, t: t}
}

func (p *printer) structured() bool {
	return p.format == outputYAML || p.format == outputJSON
}

// print writes v as yaml or json. It is a no-op for table output.
func (p *printer) print(v interface{}) error {
	switch p.format {
	case outputYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case outputJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return nil
}

func (p *printer) table(header []string, rows [][]string) {
	table := tablewriter.NewWriter(p.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}

func (p *printer) message(ctx context.Context, id string, data map[string]interface{}) {
	fmt.Fprintln(p.out, p.t.T(ctx, id, data))
}

func (p *printer) headers(ctx context.Context, ids ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, p.t.T(ctx, "header."+id))
	}
	return out
}

func (p *printer) status(ctx context.Context, s domain.RequestStatus) string {
	if !s.IsKnown() {
		return p.t.T(ctx, "status.unknown")
	}
	return p.t.T(ctx, "status."+string(s))
}

func (p *printer) bucket(ctx context.Context, b domain.ColorBucket) string {
	return p.t.T(ctx, "bucket."+string(b))
}

func (p *printer) days(ctx context.Context, d *int) string {
	if d == nil {
		return "-"
	}
	return p.t.Plural(ctx, "days_remaining", *d)
}

func (p *printer) yesNo(ctx context.Context, b bool) string {
	if b {
		return p.t.T(ctx, "yes")
	}
	return p.t.T(ctx, "no")
}

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format(displayTimeLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatHours(h *int) string {
	if h == nil {
		return "-"
	}
	return strconv.Itoa(*h) + "h"
}

// spin shows a spinner on a terminal and returns the function that stops it.
func (p *printer) spin(label string) func() {
	f, ok := p.errOut.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[11], 120*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = " " + label
	s.Start()
	return s.Stop
}
