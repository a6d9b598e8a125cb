package cloudformation

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

// Parameter is a single stack parameter.
type Parameter struct {
	Key   string
	Value string
}

// Stack is the orchestrator's view of a provisioned stack.
type Stack struct {
	Name         string
	Status       types.StackStatus
	StatusReason string
	Outputs      map[string]string
}

// StackInput carries everything a create or update call needs.
type StackInput struct {
	Name         string
	TemplateBody string
	Parameters   []Parameter
	Tags         map[string]string
	Capabilities []string
}

// StackManager defines the backend operations the provisioning driver
// depends on.
type StackManager interface {
	// CreateStack submits a new stack. It returns once the backend has
	// accepted the request; completion is observed via DescribeStack.
	CreateStack(ctx context.Context, input StackInput) error

	// UpdateStack submits a stack update. A backend "no updates are to
	// be performed" rejection is returned as-is for the caller to
	// classify via IsNoUpdates.
	UpdateStack(ctx context.Context, input StackInput) error

	// DeleteStack requests stack deletion. Deleting a stack that does
	// not exist is accepted by the backend and returns nil.
	DeleteStack(ctx context.Context, name string) error

	// DescribeStack returns the current state of a stack, or (nil, nil)
	// when the stack does not exist.
	DescribeStack(ctx context.Context, name string) (*Stack, error)

	// FirstFailureReason returns the status reason of the earliest
	// failed resource event for the stack, or "" when none is found.
	FirstFailureReason(ctx context.Context, name string) (string, error)
}
