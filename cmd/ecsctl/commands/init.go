package commands

import (
	"github.com/spf13/cobra"

	"github.com/rpx-platform/ecsctl/cmd/ecsctl/handlers"
)

// Init returns the init command.
func Init() *cobra.Command {
	var projectRoot string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a starter configuration",
		Long: `Init asks for the values every deployment needs (cluster, VPC, subnets,
task sizing) and writes application/<app>/<env>/config.yaml. Requires
an interactive terminal.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), projectRoot)
		},
	}

	cmd.Flags().StringVar(&projectRoot, "project-root", ".", "Directory holding application/ and template/")

	return cmd
}
