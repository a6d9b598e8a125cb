package provisioning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpx-platform/ecsctl/internal/config"
	"github.com/rpx-platform/ecsctl/internal/stack"
)

// UnitState is the lifecycle state of one unit within an invocation.
type UnitState string

const (
	StatePending      UnitState = "pending"
	StateInProgress   UnitState = "in_progress"
	StateSucceeded    UnitState = "succeeded"
	StateFailed       UnitState = "failed"
	StateSkipped      UnitState = "skipped"
	StateNotAttempted UnitState = "not_attempted"
)

// UnitResult records the outcome of one unit.
type UnitResult struct {
	Name    string
	Kind    stack.Kind
	State   UnitState
	Detail  string
	Outputs OutputMap
	Err     error
}

// AppResult aggregates the per-unit outcomes for one application.
type AppResult struct {
	Application string
	Units       []UnitResult
}

// Failed reports whether any unit failed.
func (r *AppResult) Failed() bool {
	for _, u := range r.Units {
		if u.State == StateFailed {
			return true
		}
	}
	return false
}

// Orchestrator walks the unit registry for one application, delegating
// single-stack work to the driver and shared-unit bookkeeping to the
// deduplicator.
type Orchestrator struct {
	driver *Driver
	dedup  *Deduplicator
	log    *slog.Logger
}

// NewOrchestrator creates an orchestrator. The deduplicator should be
// shared across all applications of one invocation.
func NewOrchestrator(driver *Driver, dedup *Deduplicator, log *slog.Logger) *Orchestrator {
	return &Orchestrator{driver: driver, dedup: dedup, log: log}
}

// Deploy provisions every unit in order, creating stacks that do not
// exist and updating those that do. The first failure halts the
// sequence; units after it are marked not attempted.
func (o *Orchestrator) Deploy(ctx context.Context, cfg *config.AppConfig) *AppResult {
	return o.forward(ctx, cfg, false)
}

// Update applies configuration changes to every unit in order. Unlike
// Deploy it requires each stack to already exist: a missing stack is a
// failed prerequisite, not an invitation to create.
func (o *Orchestrator) Update(ctx context.Context, cfg *config.AppConfig) *AppResult {
	return o.forward(ctx, cfg, true)
}

func (o *Orchestrator) forward(ctx context.Context, cfg *config.AppConfig, updateOnly bool) *AppResult {
	result := &AppResult{Application: cfg.Application}
	outputs := make(OutputMap)
	halted := false

	for _, desc := range stack.Order() {
		name := o.stackName(cfg, desc)

		if halted {
			result.Units = append(result.Units, UnitResult{Name: name, Kind: desc.Kind, State: StateNotAttempted})
			continue
		}

		unit := o.provisionUnit(ctx, cfg, desc, name, outputs, updateOnly)
		if unit.State == StateFailed {
			halted = true
		} else {
			outputs.Merge(unit.Outputs)
		}
		result.Units = append(result.Units, unit)
	}

	return result
}

// provisionUnit provisions a single unit, routing shared units through
// the deduplicator. Parameter resolution happens before any backend
// call so missing configuration fails fast.
func (o *Orchestrator) provisionUnit(ctx context.Context, cfg *config.AppConfig, desc stack.Descriptor, name string, outputs OutputMap, updateOnly bool) UnitResult {
	params, err := ResolveParameters(desc, name, cfg.Parameters, outputs)
	if err != nil {
		return UnitResult{Name: name, Kind: desc.Kind, State: StateFailed, Err: err}
	}

	tags := stack.Tags(cfg.Environment, cfg.Application)

	apply := func() (OutputMap, error) {
		return o.applyStack(ctx, name, desc, params, tags, updateOnly)
	}

	if desc.Shared {
		shared, hit, err := o.dedup.Provision(cfg.Environment, desc.Kind, apply)
		if err != nil {
			return UnitResult{Name: name, Kind: desc.Kind, State: StateFailed, Err: err}
		}
		if hit {
			o.log.Debug("shared stack already provisioned this invocation", "stack", name)
			return UnitResult{Name: name, Kind: desc.Kind, State: StateSkipped, Detail: "already provisioned", Outputs: shared}
		}
		return UnitResult{Name: name, Kind: desc.Kind, State: StateSucceeded, Outputs: shared}
	}

	out, err := apply()
	if err != nil {
		return UnitResult{Name: name, Kind: desc.Kind, State: StateFailed, Err: err}
	}
	return UnitResult{Name: name, Kind: desc.Kind, State: StateSucceeded, Outputs: out}
}

// applyStack performs create-or-update for one stack. With updateOnly
// set, a missing stack is a failed prerequisite instead.
func (o *Orchestrator) applyStack(ctx context.Context, name string, desc stack.Descriptor, params *config.ParameterSet, tags map[string]string, updateOnly bool) (OutputMap, error) {
	current, err := o.driver.Describe(ctx, name)
	if err != nil {
		return nil, &ProvisioningFailedError{Stack: name, Reason: err.Error(), Err: err}
	}

	if current == nil {
		if updateOnly {
			return nil, &PrerequisiteMissingError{Stack: name}
		}
		return o.driver.Create(ctx, name, desc, params, tags)
	}

	out, _, err := o.driver.Update(ctx, name, desc, params, tags)
	return out, err
}

// Delete tears the application down in reverse provisioning order.
// Absent stacks are skipped; a failure halts the walk so dependents
// are never orphaned.
func (o *Orchestrator) Delete(ctx context.Context, cfg *config.AppConfig) *AppResult {
	result := &AppResult{Application: cfg.Application}
	order := stack.Order()
	halted := false

	for i := len(order) - 1; i >= 0; i-- {
		desc := order[i]
		name := o.stackName(cfg, desc)

		if halted {
			result.Units = append(result.Units, UnitResult{Name: name, Kind: desc.Kind, State: StateNotAttempted})
			continue
		}

		unit := o.deleteUnit(ctx, cfg, desc, name)
		if unit.State == StateFailed {
			halted = true
		}
		result.Units = append(result.Units, unit)
	}

	return result
}

// DeleteOne deletes a single named unit, honoring shared-unit
// deduplication. Used by the stack-scoped delete flag.
func (o *Orchestrator) DeleteOne(ctx context.Context, cfg *config.AppConfig, kind stack.Kind) (UnitResult, error) {
	desc, ok := stack.Lookup(kind)
	if !ok {
		return UnitResult{}, fmt.Errorf("unknown component %q", kind)
	}
	name := o.stackName(cfg, desc)
	return o.deleteUnit(ctx, cfg, desc, name), nil
}

func (o *Orchestrator) deleteUnit(ctx context.Context, cfg *config.AppConfig, desc stack.Descriptor, name string) UnitResult {
	remove := func() error {
		return o.driver.Delete(ctx, name)
	}

	var err error
	if desc.Shared {
		var hit bool
		hit, err = o.dedup.Delete(cfg.Environment, desc.Kind, remove)
		if hit {
			return UnitResult{Name: name, Kind: desc.Kind, State: StateSkipped, Detail: "already deleted"}
		}
	} else {
		err = remove()
	}

	switch {
	case err == nil:
		return UnitResult{Name: name, Kind: desc.Kind, State: StateSucceeded}
	case errors.Is(err, ErrAlreadyAbsent):
		return UnitResult{Name: name, Kind: desc.Kind, State: StateSkipped, Detail: "does not exist"}
	default:
		return UnitResult{Name: name, Kind: desc.Kind, State: StateFailed, Err: err}
	}
}

// Status describes every unit without mutating anything.
func (o *Orchestrator) Status(ctx context.Context, cfg *config.AppConfig) *AppResult {
	result := &AppResult{Application: cfg.Application}

	for _, desc := range stack.Order() {
		name := o.stackName(cfg, desc)

		current, err := o.driver.Describe(ctx, name)
		switch {
		case err != nil:
			result.Units = append(result.Units, UnitResult{Name: name, Kind: desc.Kind, State: StateFailed, Err: err})
		case current == nil:
			result.Units = append(result.Units, UnitResult{Name: name, Kind: desc.Kind, State: StateSkipped, Detail: "does not exist"})
		default:
			result.Units = append(result.Units, UnitResult{
				Name:    name,
				Kind:    desc.Kind,
				State:   StateSucceeded,
				Detail:  string(current.Status),
				Outputs: OutputMap(current.Outputs),
			})
		}
	}

	return result
}

func (o *Orchestrator) stackName(cfg *config.AppConfig, desc stack.Descriptor) string {
	return cfg.StackNameOverride(desc.StackNameKey, stack.Name(cfg.Environment, cfg.Application, desc))
}
