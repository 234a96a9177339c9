package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/nothing/cmd/config"
	"github.com/mattsolo1/nothing/pkg/models"
)

func NewLogCmd() *cobra.Command {
	var (
		limit   int
		search  string
		logJSON bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show what the automations did",
		Long: `Show recent activity from the ledger, newest first.

Examples:
  nothing log
  nothing log --limit 100
  nothing log --search "call mom"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}
			l, err := config.OpenLedger()
			if err != nil {
				return err
			}
			defer l.Close()

			var rows []*models.Activity
			if search != "" {
				rows, err = l.Search(search, limit)
			} else {
				rows, err = l.Recent(limit)
			}
			if err != nil {
				return fmt.Errorf("read ledger: %w", err)
			}

			format := "text"
			if logJSON {
				format = "json"
			}
			return writeOutput(cmd.OutOrStdout(), format, rows, func(w io.Writer) error {
				return writeActivity(w, rows)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only entries mentioning these words")
	cmd.Flags().BoolVar(&logJSON, "json", false, "Output in JSON format")

	return cmd
}

func writeActivity(w io.Writer, rows []*models.Activity) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No activity recorded.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tCOMPONENT\tKIND\tFROM\tTO")
	for _, a := range rows {
		to := a.To
		if to == "" {
			to = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			a.At.Local().Format("2006-01-02 15:04"), a.Component, a.Kind, a.From, to)
	}
	return tw.Flush()
}
