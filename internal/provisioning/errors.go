package provisioning

import (
	"errors"
	"fmt"
)

// ErrAlreadyAbsent reports that a stack slated for deletion does not
// exist. It is a normal outcome, not a failure.
var ErrAlreadyAbsent = errors.New("stack already absent")

// MissingParameterError reports that a required parameter could not be
// resolved from configuration or prior-unit outputs. It is raised
// before any backend call is made for the unit.
type MissingParameterError struct {
	Stack string
	Key   string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("stack %s: required parameter %s could not be resolved", e.Stack, e.Key)
}

// PrerequisiteMissingError reports an update requested for a stack
// that does not exist. Update implies a prior deploy succeeded.
type PrerequisiteMissingError struct {
	Stack string
}

func (e *PrerequisiteMissingError) Error() string {
	return fmt.Sprintf("stack %s does not exist; run deploy before update", e.Stack)
}

// ProvisioningFailedError reports a terminal backend failure or a
// polling timeout. The orchestrator does not retry these; re-running
// the same command is the documented recovery path.
type ProvisioningFailedError struct {
	Stack  string
	Reason string
	Err    error
}

func (e *ProvisioningFailedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("stack %s: provisioning failed: %s", e.Stack, e.Reason)
	}
	return fmt.Sprintf("stack %s: provisioning failed", e.Stack)
}

func (e *ProvisioningFailedError) Unwrap() error { return e.Err }
