package commands

import (
	"github.com/spf13/cobra"

	"github.com/rpx-platform/ecsctl/cmd/ecsctl/handlers"
)

// Status returns the status command.
func Status() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <environment> [application]",
		Short: "Show the current state of every stack",
		Long: `Status describes each of an application's stacks and prints its
CloudFormation status and outputs. Nothing is created or changed.

Example:
  ecsctl status dev aqcuiflow`,
		Args: cobra.RangeArgs(1, 2),
	}

	opts := commonFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		positionalArgs(opts, args)
		return handlers.Status(cmd.Context(), *opts)
	}

	return cmd
}
