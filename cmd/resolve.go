package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/nothing/pkg/dateexpr"
)

func NewResolveCmd() *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "resolve <expr>",
		Short: "Resolve a date expression to a calendar date",
		Long: `Resolve today, tomorrow, a weekday name, <N>d|w|m|y or an ISO date.

Examples:
  nothing resolve friday
  nothing resolve 3w --today 2024-12-20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseToday(today)
			if err != nil {
				return err
			}
			resolved, err := dateexpr.Resolve(args[0], d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resolved)
			return nil
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "Resolve against this date (YYYY-MM-DD)")

	return cmd
}
