package handlers

import (
	"context"
	"fmt"

	"github.com/rpx-platform/ecsctl/internal/ui"
)

// Status describes the current state of every unit of the selected
// applications without changing anything.
func Status(ctx context.Context, opts Options) error {
	if err := checkEnvironment(opts.Environment); err != nil {
		return err
	}
	apps, err := resolveApplications(opts)
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(ctx, opts)
	if err != nil {
		return err
	}

	failed := 0
	for _, app := range apps {
		ui.Header(fmt.Sprintf("Status %s/%s", opts.Environment, app))

		cfg, err := loadAppConfig(opts.ProjectRoot, app, opts.Environment)
		if err != nil {
			ui.Fail("configuration: %v", err)
			failed++
			continue
		}

		result := orch.Status(ctx, cfg)
		renderStatus(result)
		if result.Failed() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("status failed for %d of %d application(s)", failed, len(apps))
	}
	return nil
}
