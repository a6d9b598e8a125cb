// Package handlers implements the business logic for CLI commands.
//
// Handler functions are called by the command definitions in the
// commands package. They are framework-agnostic and testable without
// the CLI layer; external collaborators are injected through package
// function variables.
package handlers

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rpx-platform/ecsctl/internal/config"
	"github.com/rpx-platform/ecsctl/internal/logging"
	"github.com/rpx-platform/ecsctl/internal/platform/cloudformation"
	"github.com/rpx-platform/ecsctl/internal/provisioning"
	"github.com/rpx-platform/ecsctl/internal/ui"
)

// Options carries the flags and arguments shared by the provisioning
// commands.
type Options struct {
	Environment string
	Application string // "all" addresses every configured application
	Region      string
	ProjectRoot string
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newStackClient creates the CloudFormation backend client.
	// AWS_ENDPOINT_URL points it at a LocalStack endpoint.
	newStackClient = func(ctx context.Context, region string) (cloudformation.StackManager, error) {
		return cloudformation.NewRealClient(ctx, cloudformation.Options{
			Region:   region,
			Endpoint: os.Getenv("AWS_ENDPOINT_URL"),
		})
	}

	// loadAppConfig loads one application's configuration.
	loadAppConfig = config.Load

	// loadTimeouts loads polling and retry timing.
	loadTimeouts = config.LoadTimeouts

	// newLogger builds the structured logger.
	newLogger = logging.Default
)

// newOrchestrator wires a backend client into a ready orchestrator.
// The returned deduplicator is shared for the whole invocation.
func newOrchestrator(ctx context.Context, opts Options) (*provisioning.Orchestrator, error) {
	client, err := newStackClient(ctx, opts.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize backend client: %w", err)
	}

	log := newLogger()
	driver := provisioning.NewDriver(client, loadTimeouts(), log, opts.ProjectRoot)
	return provisioning.NewOrchestrator(driver, provisioning.NewDeduplicator(), log), nil
}

// checkEnvironment rejects environments outside the known set.
func checkEnvironment(env string) error {
	if config.ValidEnvironments[env] {
		return nil
	}
	valid := make([]string, 0, len(config.ValidEnvironments))
	for e := range config.ValidEnvironments {
		valid = append(valid, e)
	}
	sort.Strings(valid)
	return fmt.Errorf("unknown environment %q (valid: %s)", env, strings.Join(valid, ", "))
}

// resolveApplications expands "all" to every application configured
// for the environment.
func resolveApplications(opts Options) ([]string, error) {
	if opts.Application != "all" {
		if !config.HasEnvironment(opts.ProjectRoot, opts.Application, opts.Environment) {
			return nil, fmt.Errorf("application %s has no %s configuration (expected %s)",
				opts.Application, opts.Environment,
				config.ConfigPath(opts.ProjectRoot, opts.Application, opts.Environment))
		}
		return []string{opts.Application}, nil
	}

	all, err := config.ListApplications(opts.ProjectRoot)
	if err != nil {
		return nil, err
	}

	var apps []string
	for _, app := range all {
		if config.HasEnvironment(opts.ProjectRoot, app, opts.Environment) {
			apps = append(apps, app)
		}
	}
	if len(apps) == 0 {
		return nil, fmt.Errorf("no applications configured for environment %s", opts.Environment)
	}
	return apps, nil
}

// runBatch executes one orchestrator operation per application and
// renders the results. A failed application does not stop the batch;
// the error reports the aggregate.
func runBatch(ctx context.Context, opts Options, verb string, run func(context.Context, *provisioning.Orchestrator, *config.AppConfig) *provisioning.AppResult) error {
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
		ui.Header(fmt.Sprintf("%s %s/%s", verb, opts.Environment, app))

		cfg, err := loadAppConfig(opts.ProjectRoot, app, opts.Environment)
		if err != nil {
			ui.Fail("configuration: %v", err)
			failed++
			continue
		}

		result := run(ctx, orch, cfg)
		renderResult(result)
		if result.Failed() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%s failed for %d of %d application(s)", strings.ToLower(verb), failed, len(apps))
	}
	return nil
}
