package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpx-platform/ecsctl/internal/config"
	"github.com/rpx-platform/ecsctl/internal/provisioning"
	"github.com/rpx-platform/ecsctl/internal/stack"
	"github.com/rpx-platform/ecsctl/internal/ui"
)

// Delete tears down the selected applications in reverse provisioning
// order. With a stack name or component suffix it deletes only that
// unit.
func Delete(ctx context.Context, opts Options, component string) error {
	if component != "" {
		return deleteOne(ctx, opts, component)
	}
	return runBatch(ctx, opts, "Deleting",
		func(ctx context.Context, o *provisioning.Orchestrator, cfg *config.AppConfig) *provisioning.AppResult {
			return o.Delete(ctx, cfg)
		})
}

func deleteOne(ctx context.Context, opts Options, component string) error {
	if opts.Application == "all" {
		return fmt.Errorf("--stack requires a single application")
	}
	if err := checkEnvironment(opts.Environment); err != nil {
		return err
	}

	cfg, err := loadAppConfig(opts.ProjectRoot, opts.Application, opts.Environment)
	if err != nil {
		return err
	}

	kind, ok := kindForStack(cfg, component)
	if !ok {
		return fmt.Errorf("unknown stack %q (component suffixes: %s)", component, strings.Join(componentSuffixes(), ", "))
	}

	orch, err := newOrchestrator(ctx, opts)
	if err != nil {
		return err
	}

	ui.Header(fmt.Sprintf("Deleting %s/%s %s", opts.Environment, opts.Application, component))
	unit, err := orch.DeleteOne(ctx, cfg, kind)
	if err != nil {
		return err
	}
	renderUnit(unit, false)

	if unit.State == provisioning.StateFailed {
		return fmt.Errorf("delete failed for %s", unit.Name)
	}
	return nil
}

// kindForStack matches the --stack argument against each unit's full
// stack name, overrides included. A bare component suffix is accepted
// as shorthand.
func kindForStack(cfg *config.AppConfig, arg string) (stack.Kind, bool) {
	for _, d := range stack.Order() {
		name := cfg.StackNameOverride(d.StackNameKey, stack.Name(cfg.Environment, cfg.Application, d))
		if arg == name || arg == d.Suffix {
			return d.Kind, true
		}
	}
	return "", false
}

func componentSuffixes() []string {
	var suffixes []string
	for _, d := range stack.Order() {
		suffixes = append(suffixes, d.Suffix)
	}
	return suffixes
}
