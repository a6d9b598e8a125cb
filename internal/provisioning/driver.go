package provisioning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rpx-platform/ecsctl/internal/config"
	"github.com/rpx-platform/ecsctl/internal/platform/cloudformation"
	"github.com/rpx-platform/ecsctl/internal/stack"
	"github.com/rpx-platform/ecsctl/internal/util/retry"
)

// stackOp identifies the backend operation being polled.
type stackOp string

const (
	opCreate stackOp = "create"
	opUpdate stackOp = "update"
	opDelete stackOp = "delete"
)

// Driver executes single-stack operations against the backend and
// polls them to a terminal state.
type Driver struct {
	backend  cloudformation.StackManager
	timeouts *config.Timeouts
	log      *slog.Logger

	// loadTemplate reads a template document by file name. Replaced in
	// tests.
	loadTemplate func(file string) (string, error)
}

// NewDriver creates a driver reading templates from the project root.
func NewDriver(backend cloudformation.StackManager, timeouts *config.Timeouts, log *slog.Logger, projectRoot string) *Driver {
	return &Driver{
		backend:  backend,
		timeouts: timeouts,
		log:      log,
		loadTemplate: func(file string) (string, error) {
			// #nosec G304
			data, err := os.ReadFile(config.TemplatePath(projectRoot, file))
			if err != nil {
				return "", fmt.Errorf("failed to read template %s: %w", file, err)
			}
			return string(data), nil
		},
	}
}

// Describe returns the current stack state, or (nil, nil) when the
// stack does not exist. Throttling errors are retried.
func (d *Driver) Describe(ctx context.Context, name string) (*cloudformation.Stack, error) {
	var current *cloudformation.Stack

	policy := retry.Policy{
		MaxAttempts:  d.timeouts.RetryMaxAttempts,
		InitialDelay: d.timeouts.RetryInitialDelay,
		Retryable:    cloudformation.IsThrottled,
	}
	err := policy.Do(ctx, func() error {
		s, err := d.backend.DescribeStack(ctx, name)
		if err != nil {
			return err
		}
		current = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return current, nil
}

// Create submits a new stack and polls it to completion, returning
// the stack's outputs.
func (d *Driver) Create(ctx context.Context, name string, desc stack.Descriptor, params *config.ParameterSet, tags map[string]string) (OutputMap, error) {
	input, err := d.buildInput(name, desc, params, tags)
	if err != nil {
		return nil, err
	}

	d.log.Info("creating stack", "stack", name, "kind", string(desc.Kind))
	if err := d.backend.CreateStack(ctx, input); err != nil {
		return nil, d.failed(ctx, name, err)
	}

	final, err := d.waitForTerminal(ctx, name, opCreate, d.timeouts.StackCreate)
	if err != nil {
		return nil, err
	}

	d.log.Info("stack created", "stack", name)
	return OutputMap(final.Outputs), nil
}

// Update submits a stack update and polls it to completion. The
// returned bool is false when the backend reported that no changes
// were needed — a success, with the current outputs returned as-is.
func (d *Driver) Update(ctx context.Context, name string, desc stack.Descriptor, params *config.ParameterSet, tags map[string]string) (OutputMap, bool, error) {
	input, err := d.buildInput(name, desc, params, tags)
	if err != nil {
		return nil, false, err
	}

	d.log.Info("updating stack", "stack", name, "kind", string(desc.Kind))
	if err := d.backend.UpdateStack(ctx, input); err != nil {
		if cloudformation.IsNoUpdates(err) {
			d.log.Info("no changes needed", "stack", name)
			current, derr := d.Describe(ctx, name)
			if derr != nil {
				return nil, false, d.failed(ctx, name, derr)
			}
			if current == nil {
				return nil, false, &ProvisioningFailedError{Stack: name, Reason: "stack disappeared during update"}
			}
			return OutputMap(current.Outputs), false, nil
		}
		return nil, false, d.failed(ctx, name, err)
	}

	final, err := d.waitForTerminal(ctx, name, opUpdate, d.timeouts.StackUpdate)
	if err != nil {
		return nil, false, err
	}

	d.log.Info("stack updated", "stack", name)
	return OutputMap(final.Outputs), true, nil
}

// Delete removes a stack, polling until it is gone. A stack that does
// not exist yields ErrAlreadyAbsent.
func (d *Driver) Delete(ctx context.Context, name string) error {
	current, err := d.Describe(ctx, name)
	if err != nil {
		return d.failed(ctx, name, err)
	}
	if current == nil {
		return ErrAlreadyAbsent
	}

	d.log.Info("deleting stack", "stack", name)
	if err := d.backend.DeleteStack(ctx, name); err != nil {
		return d.failed(ctx, name, err)
	}

	if _, err := d.waitForTerminal(ctx, name, opDelete, d.timeouts.StackDelete); err != nil {
		return err
	}

	d.log.Info("stack deleted", "stack", name)
	return nil
}

// buildInput loads the template document and assembles the backend
// request, preserving parameter order.
func (d *Driver) buildInput(name string, desc stack.Descriptor, params *config.ParameterSet, tags map[string]string) (cloudformation.StackInput, error) {
	body, err := d.loadTemplate(desc.TemplateFile)
	if err != nil {
		return cloudformation.StackInput{}, &ProvisioningFailedError{Stack: name, Reason: err.Error(), Err: err}
	}

	cfnParams := make([]cloudformation.Parameter, 0, params.Len())
	for _, key := range params.Keys() {
		value, _ := params.Get(key)
		cfnParams = append(cfnParams, cloudformation.Parameter{Key: key, Value: value})
	}

	return cloudformation.StackInput{
		Name:         name,
		TemplateBody: body,
		Parameters:   cfnParams,
		Tags:         tags,
		Capabilities: desc.Capabilities,
	}, nil
}

// waitForTerminal polls the stack at the configured interval until it
// reaches a terminal state for the given operation or the timeout
// elapses. For deletes, a vanished stack is terminal success.
func (d *Driver) waitForTerminal(ctx context.Context, name string, op stackOp, timeout time.Duration) (*cloudformation.Stack, error) {
	deadline := time.Now().Add(timeout)

	for {
		current, err := d.Describe(ctx, name)
		if err != nil {
			return nil, d.failed(ctx, name, err)
		}

		if current == nil {
			if op == opDelete {
				return nil, nil
			}
			return nil, &ProvisioningFailedError{Stack: name, Reason: "stack disappeared while waiting"}
		}

		status := string(current.Status)
		switch {
		case isTerminalSuccess(op, status):
			return current, nil
		case isTerminalFailure(op, status):
			reason := d.failureReason(ctx, name, current.StatusReason)
			return nil, &ProvisioningFailedError{Stack: name, Reason: fmt.Sprintf("%s (%s)", reason, status)}
		}

		if time.Now().After(deadline) {
			return nil, &ProvisioningFailedError{
				Stack:  name,
				Reason: fmt.Sprintf("timed out after %s waiting for %s (last status %s); the backend operation may still be running", timeout, op, status),
			}
		}

		d.log.Debug("waiting for stack", "stack", name, "status", status)
		select {
		case <-ctx.Done():
			return nil, &ProvisioningFailedError{Stack: name, Reason: "cancelled while waiting", Err: ctx.Err()}
		case <-time.After(d.timeouts.PollInterval):
		}
	}
}

func isTerminalSuccess(op stackOp, status string) bool {
	switch op {
	case opCreate:
		return status == "CREATE_COMPLETE"
	case opUpdate:
		return status == "UPDATE_COMPLETE"
	case opDelete:
		return status == "DELETE_COMPLETE"
	}
	return false
}

func isTerminalFailure(op stackOp, status string) bool {
	if strings.HasSuffix(status, "_FAILED") {
		return true
	}
	switch op {
	case opCreate:
		return status == "ROLLBACK_COMPLETE"
	case opUpdate:
		return status == "UPDATE_ROLLBACK_COMPLETE"
	case opDelete:
		return false
	}
	return false
}

// failureReason prefers the earliest failed resource event over the
// stack-level status reason.
func (d *Driver) failureReason(ctx context.Context, name, statusReason string) string {
	if reason, err := d.backend.FirstFailureReason(ctx, name); err == nil && reason != "" {
		return reason
	}
	if statusReason != "" {
		return statusReason
	}
	return "backend reported no failure reason"
}

// failed wraps an arbitrary backend error into the orchestrator's
// error taxonomy.
func (d *Driver) failed(_ context.Context, name string, err error) error {
	var pf *ProvisioningFailedError
	if errors.As(err, &pf) {
		return err
	}
	return &ProvisioningFailedError{Stack: name, Reason: err.Error(), Err: err}
}
