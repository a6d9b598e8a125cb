package commands

import (
	"github.com/spf13/cobra"

	"github.com/rpx-platform/ecsctl/cmd/ecsctl/handlers"
)

// Deploy returns the deploy command.
//
// Deploy is idempotent: stacks that do not exist are created, existing
// ones are updated, and an update with no changes is a success.
func Deploy() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy <environment> [application]",
		Short: "Provision or update all infrastructure stacks for an application",
		Long: `Deploy provisions every infrastructure stack an application needs, in
dependency order:

  security group, IAM roles, log group, image registry, load balancer
  (shared per environment), target group, task definition, service,
  autoscaling

Without an application argument every application configured for the
environment is deployed; the shared load balancer is provisioned once.

Examples:
  ecsctl deploy dev aqcuiflow
  ecsctl deploy prod`,
		Args: cobra.RangeArgs(1, 2),
	}

	opts := commonFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		positionalArgs(opts, args)
		return handlers.Deploy(cmd.Context(), *opts)
	}

	return cmd
}
