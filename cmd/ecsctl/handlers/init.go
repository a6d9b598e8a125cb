package handlers

import (
	"context"

	"github.com/rpx-platform/ecsctl/internal/config/wizard"
	"github.com/rpx-platform/ecsctl/internal/ui"
)

// Factory function variables for init - can be replaced in tests.
var (
	runWizard   = wizard.Run
	writeWizard = wizard.Write
)

// Init runs the interactive configuration wizard and writes a starter
// config.yaml for one application and environment.
func Init(ctx context.Context, projectRoot string) error {
	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	path, err := writeWizard(projectRoot, result)
	if err != nil {
		return err
	}

	ui.OK("wrote %s", path)
	ui.Info("Review the file, add an iam.json next to it if the task needs extra permissions,")
	ui.Info("then deploy with: ecsctl deploy %s %s", result.Environment, result.Application)
	return nil
}
