package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/nothing/cmd/config"
	"github.com/mattsolo1/nothing/pkg/reschedule"
	"github.com/mattsolo1/nothing/pkg/taskname"
)

func NewModifyCmd() *cobra.Command {
	var now string

	cmd := &cobra.Command{
		Use:   "modify <name> <expr>",
		Short: "Reschedule a task name with a modification expression",
		Long: `Apply a modification expression to a task name and print the result.

An expression is a date expression (1d, 2w, friday, 2025-01-06), a
clock (+0930), hours (4h), or a date with a clock or hours (1d+0930,
1d+4h). Hours are added to the task's time, or to the default time
when the task has none.

Examples:
  nothing modify '2024-12-20.call mom.txt' 1w
  nothing modify 'call mom.txt' tomorrow+0930
  nothing modify '2024-12-20+1600.standup' 2h --now 2024-12-20T10:00`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseNow(now)
			if err != nil {
				return err
			}
			policy, err := reschedule.ParsePolicy(viper.GetString("default_time"))
			if err != nil {
				return err
			}
			n, err := taskname.Parse(args[0], taskname.Dateless())
			if err != nil {
				return err
			}
			out, err := reschedule.New(policy).Apply(n, args[1], t)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&now, "now", "", "Current time (RFC 3339 or YYYY-MM-DDTHH:MM)")
	cmd.Flags().String("default-time", "now", "Start hour arithmetic from now or midnight")
	cobra.CheckErr(config.BindFlags(viper.GetViper(), cmd.Flags(), map[string]string{"default-time": "default_time"}))

	return cmd
}
