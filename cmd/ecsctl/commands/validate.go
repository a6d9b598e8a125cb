package commands

import (
	"github.com/spf13/cobra"

	"github.com/rpx-platform/ecsctl/cmd/ecsctl/handlers"
)

// Validate returns the validate command.
func Validate() *cobra.Command {
	var projectRoot string

	cmd := &cobra.Command{
		Use:   "validate [application]",
		Short: "Check configuration files without touching AWS",
		Long: `Validate loads every configuration file (or a single application's) and
reports missing required keys, malformed VPC and subnet identifiers,
and inconsistent capacity settings. No AWS credentials are needed.

Examples:
  ecsctl validate
  ecsctl validate aqcuiflow`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			application := "all"
			if len(args) == 1 {
				application = args[0]
			}
			return handlers.Validate(projectRoot, application)
		},
	}

	cmd.Flags().StringVar(&projectRoot, "project-root", ".", "Directory holding application/ and template/")

	return cmd
}
