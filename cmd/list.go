package cmd

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/nothing/cmd/config"
	"github.com/mattsolo1/nothing/internal/agenda"
)

func NewListCmd() *cobra.Command {
	var (
		listJSON bool
		today    string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "Show the agenda: what is due now and what comes later",
		Aliases: []string{"ls"},
		Long: `List the tasks in the task directory and in _later, sorted by date.
Overdue tasks are highlighted.

Examples:
  nothing list
  nothing ls --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := config.Root()
			if err != nil {
				return err
			}
			cfg, err := config.LoadFilerConfig(viper.GetViper())
			if err != nil {
				return err
			}
			d, err := parseToday(today)
			if err != nil {
				return err
			}

			a, err := agenda.Collect(afero.NewOsFs(), root, cfg, d)
			if err != nil {
				return err
			}

			format := "text"
			if listJSON {
				format = "json"
			}
			return writeOutput(cmd.OutOrStdout(), format, a, func(w io.Writer) error {
				return agenda.Render(w, a)
			})
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&today, "today", "", "Show the agenda as of this date (YYYY-MM-DD)")

	return cmd
}
