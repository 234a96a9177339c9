package cmd

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/nothing/cmd/config"
	"github.com/mattsolo1/nothing/pkg/filer"
	"github.com/mattsolo1/nothing/pkg/taskname"
)

func NewNextCmd() *cobra.Command {
	var (
		anchor string
		now    string
	)

	cmd := &cobra.Command{
		Use:   "next <name>",
		Short: "Print the next instance of a recurring task",
		Long: `Print the name the repeat automation would spawn for a recurring task.

Examples:
  nothing next '2024-12-20.water plants.@8d.md'
  nothing next 'pay rent.1m-1.txt' --anchor 2025-01-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseNow(now)
			if err != nil {
				return err
			}
			n, err := taskname.Parse(args[0])
			if err != nil {
				return err
			}
			if n.Rule == "" {
				return fmt.Errorf("%s has no recurrence rule", args[0])
			}
			switch {
			case anchor != "":
				d, err := civil.ParseDate(anchor)
				if err != nil {
					return fmt.Errorf("--anchor: want YYYY-MM-DD: %w", err)
				}
				n.DateExpression = d.String()
			case !n.HasDate():
				n.DateExpression = civil.DateOf(t).String()
			}

			cfg, err := config.LoadFilerConfig(viper.GetViper())
			if err != nil {
				return err
			}
			svc := filer.New(afero.NewOsFs(), cfg, filer.WithLogger(config.NewLogger()))

			next, ok, err := svc.NextInstance(n, civil.DateOf(t))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("rule %s has no occurrence in the next period", n.Rule)
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}

	cmd.Flags().StringVar(&anchor, "anchor", "", "Date to repeat from instead of the name's own date or today (YYYY-MM-DD)")
	cmd.Flags().StringVar(&now, "now", "", "Current time (RFC 3339 or YYYY-MM-DDTHH:MM)")

	return cmd
}
