package handlers

import (
	"context"

	"github.com/rpx-platform/ecsctl/internal/config"
	"github.com/rpx-platform/ecsctl/internal/provisioning"
)

// Deploy provisions every infrastructure unit of the selected
// applications, creating stacks that do not exist and updating those
// that do. Shared units are provisioned once per invocation.
func Deploy(ctx context.Context, opts Options) error {
	return runBatch(ctx, opts, "Deploying",
		func(ctx context.Context, o *provisioning.Orchestrator, cfg *config.AppConfig) *provisioning.AppResult {
			return o.Deploy(ctx, cfg)
		})
}

// Update applies configuration changes to already-deployed
// applications. A stack that does not exist is a failed prerequisite.
func Update(ctx context.Context, opts Options) error {
	return runBatch(ctx, opts, "Updating",
		func(ctx context.Context, o *provisioning.Orchestrator, cfg *config.AppConfig) *provisioning.AppResult {
			return o.Update(ctx, cfg)
		})
}
