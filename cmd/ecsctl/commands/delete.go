package commands

import (
	"github.com/spf13/cobra"

	"github.com/rpx-platform/ecsctl/cmd/ecsctl/handlers"
)

// Delete returns the delete command.
func Delete() *cobra.Command {
	var component string

	cmd := &cobra.Command{
		Use:   "delete <environment> [application]",
		Short: "Tear down an application's stacks in reverse order",
		Long: `Delete removes an application's stacks in reverse provisioning order so
dependents go before their dependencies. Stacks that no longer exist
are skipped; the first failure stops the teardown.

The shared load balancer is deleted once per invocation. With --stack
only the named stack of a single application is deleted; the flag
takes a full stack name or a bare component suffix.

Examples:
  ecsctl delete dev aqcuiflow
  ecsctl delete dev aqcuiflow --stack dev-aqcuiflow-sg
  ecsctl delete dev aqcuiflow --stack ecr

WARNING: deleting the ecr stack removes the image repository and its
images.`,
		Args: cobra.RangeArgs(1, 2),
	}

	opts := commonFlags(cmd)
	cmd.Flags().StringVar(&component, "stack", "", "Delete only this stack, by full name or component suffix (sg, iam, logs, ecr, alb, tg, taskdef, service, autoscaling)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		positionalArgs(opts, args)
		return handlers.Delete(cmd.Context(), *opts, component)
	}

	return cmd
}
