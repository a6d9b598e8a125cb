// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/rpx-platform/ecsctl/cmd/ecsctl/handlers"
)

// Root returns the root command for the ecsctl CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ecsctl",
		Short: "Deploy containerized applications to ECS via CloudFormation stacks",
		Long: `ecsctl provisions the full infrastructure chain one application needs
to run on ECS Fargate: security groups, IAM roles, log groups, an image
registry, a shared load balancer, target group, task definition,
service and autoscaling - each as its own CloudFormation stack,
created in dependency order.

Configuration lives under application/<app>/<env>/config.yaml relative
to the project root.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(Deploy())
	cmd.AddCommand(Update())
	cmd.AddCommand(Delete())
	cmd.AddCommand(Status())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Init())
	cmd.AddCommand(Version())

	return cmd
}

// commonFlags binds the flags shared by the provisioning commands and
// returns the bound options.
func commonFlags(cmd *cobra.Command) *handlers.Options {
	opts := &handlers.Options{}
	cmd.Flags().StringVar(&opts.Region, "region", "us-east-1", "AWS region")
	cmd.Flags().StringVar(&opts.ProjectRoot, "project-root", ".", "Directory holding application/ and template/")
	return opts
}

// positionalArgs fills environment and application from the positional
// arguments. The application defaults to "all".
func positionalArgs(opts *handlers.Options, args []string) {
	opts.Environment = args[0]
	opts.Application = "all"
	if len(args) > 1 {
		opts.Application = args[1]
	}
}
