package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/nothing/cmd"
	"github.com/mattsolo1/nothing/cmd/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nothing",
		Short: "Keep a directory of dated tasks in order",
		Long: `nothing manages a to-do list that is just a directory of files whose
names carry their schedule:

  2024-12-20+0930+.call mom.txt     due at 9:30, notify
  friday.review.1w.md               every week, normalized on the next run

Drop a task into _push-1d to move it a day, into _done when finished.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// This runs once before any subcommand
			config.InitConfig()
			return nil
		},
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cmd.NewInitCmd())
	rootCmd.AddCommand(cmd.NewRunCmd())
	rootCmd.AddCommand(cmd.NewWatchCmd())
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewLogCmd())
	rootCmd.AddCommand(cmd.NewParseCmd())
	rootCmd.AddCommand(cmd.NewResolveCmd())
	rootCmd.AddCommand(cmd.NewModifyCmd())
	rootCmd.AddCommand(cmd.NewNextCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
