package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/nothing/cmd/config"
	"github.com/mattsolo1/nothing/pkg/models"
)

func NewRunCmd() *cobra.Command {
	var (
		dryRun bool
		only   []string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the automations once",
		Long: `Run the enabled automations over the task directory, in order:
normalize, push, repeat, move, overdue, amnesia, notify, housekeep.

Examples:
  nothing run                       # everything in config order
  nothing run --dry-run             # show what would happen
  nothing run --only move,overdue   # just these two`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := config.Root()
			if err != nil {
				return err
			}
			svc, err := config.InitService()
			if err != nil {
				return err
			}
			defer svc.Close()

			automations := svc.Config.Automations
			if len(only) > 0 {
				valid, unknown := models.ParseAutomations(only)
				if len(unknown) > 0 {
					return fmt.Errorf("unknown automation(s): %s", strings.Join(unknown, ", "))
				}
				automations = valid
			}
			svc.Config.DryRun = dryRun

			report, err := svc.RunOnly(cmd.Context(), root, automations...)
			printReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), report, dryRun)
			return err
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report actions without performing them")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Run only these automations")

	return cmd
}

func printReport(out, errOut io.Writer, report models.Report, dryRun bool) {
	prefix := ""
	if dryRun {
		prefix = "(dry run) "
	}
	for _, a := range report.Actions {
		fmt.Fprintf(out, "%s%s\n", prefix, a)
	}
	for _, e := range report.Errors {
		fmt.Fprintf(errOut, "error: %s\n", e.Error())
	}
	if len(report.Actions) == 0 && len(report.Errors) == 0 {
		fmt.Fprintln(out, "Nothing to do.")
	}
}
