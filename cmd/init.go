package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/nothing/cmd/config"
)

func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the special directories in the task directory",
		Long: `Create _later, _done and the configured _push-* directories in the
task directory. Each gets a .keep file so it survives sync tools and
version control. Running init again is harmless.`,
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

			if err := svc.Init(root); err != nil {
				return fmt.Errorf("init %s: %w", root, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized task directory at %s\n", root)
			return nil
		},
	}
}
