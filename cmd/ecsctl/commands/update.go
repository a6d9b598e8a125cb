package commands

import (
	"github.com/spf13/cobra"

	"github.com/rpx-platform/ecsctl/cmd/ecsctl/handlers"
)

// Update returns the update command.
func Update() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <environment> [application]",
		Short: "Apply configuration changes to already-deployed stacks",
		Long: `Update pushes configuration changes to an application that was already
deployed. Unlike deploy it refuses to create missing stacks: a stack
that does not exist is treated as a failed prerequisite.

Example:
  ecsctl update staging aqcuiflow`,
		Args: cobra.RangeArgs(1, 2),
	}

	opts := commonFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		positionalArgs(opts, args)
		return handlers.Update(cmd.Context(), *opts)
	}

	return cmd
}
