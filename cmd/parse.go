package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/nothing/pkg/recurrence"
	"github.com/mattsolo1/nothing/pkg/taskname"
)

// parsedName is the output of nothing parse.
type parsedName struct {
	taskname.Name `yaml:",inline"`

	ResolvedDate string `json:"resolved_date,omitempty" yaml:"resolved_date,omitempty"`
	Canonical    string `json:"canonical" yaml:"canonical"`
	Recurrence   string `json:"recurrence,omitempty" yaml:"recurrence,omitempty"`
}

func describeName(n *taskname.Name, today string) (*parsedName, error) {
	d, err := parseToday(today)
	if err != nil {
		return nil, err
	}
	out := &parsedName{Name: *n}

	canonical, err := n.Canonical(d)
	if err != nil {
		return nil, err
	}
	out.Canonical = canonical.String()

	if n.HasDate() {
		date, err := n.Date(d)
		if err != nil {
			return nil, err
		}
		out.ResolvedDate = date.String()
	}
	if n.Rule != "" {
		rule, err := n.Recurrence()
		if err != nil {
			return nil, err
		}
		out.Recurrence = recurrence.Describe(rule)
	}
	return out, nil
}

func NewParseCmd() *cobra.Command {
	var (
		output   string
		today    string
		dateless bool
	)

	cmd := &cobra.Command{
		Use:   "parse <name>",
		Short: "Show the fields of a task name",
		Long: `Parse a task name and print its segments.

Examples:
  nothing parse '■2024-01-01+1800+.■my task.1w-mo-we.txt'
  nothing parse 'friday.review.md' --today 2024-12-20 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []taskname.ParseOption
			if dateless {
				opts = append(opts, taskname.Dateless())
			}
			n, err := taskname.Parse(args[0], opts...)
			if err != nil {
				return err
			}
			p, err := describeName(n, today)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, p, p.writeText)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().StringVar(&today, "today", "", "Resolve relative dates against this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&dateless, "dateless", false, "Treat an unparseable date segment as part of the title")

	return cmd
}

func (p *parsedName) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(k string, v any) { fmt.Fprintf(tw, "%s\t%v\n", k, v) }

	row("title", p.Title)
	if p.HasDate() {
		row("date", p.DateExpression)
		row("resolved", p.ResolvedDate)
	}
	if p.Time != "" {
		row("time", p.Time)
	}
	row("notify", p.Notify)
	if len(p.DateDecorators) > 0 {
		row("date decorators", p.DateDecorators)
	}
	if len(p.NameDecorators) > 0 {
		row("name decorators", p.NameDecorators)
	}
	if p.Rule != "" {
		row("rule", p.Rule)
		row("strict", p.Strict)
		row("recurrence", p.Recurrence)
	}
	if p.Extension != "" {
		row("extension", p.Extension)
	}
	row("canonical", p.Canonical)
	return tw.Flush()
}
