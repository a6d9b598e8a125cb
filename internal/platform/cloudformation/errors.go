package cloudformation

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// CloudFormation reports most request-level problems as ValidationError
// with a distinguishing message, so classification falls back to
// message matching where no typed error exists.

// IsNotFound checks if an error indicates the stack does not exist.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ValidationError" &&
			strings.Contains(apiErr.ErrorMessage(), "does not exist")
	}
	return false
}

// IsNoUpdates checks if an error is the backend's "No updates are to
// be performed" rejection of an update. This is a success condition:
// the stack already matches the submitted template and parameters.
func IsNoUpdates(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ValidationError" &&
			strings.Contains(apiErr.ErrorMessage(), "No updates are to be performed")
	}
	return false
}

// IsAlreadyExists checks if an error indicates the stack already exists.
func IsAlreadyExists(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "AlreadyExistsException"
	}
	return false
}

// IsThrottled checks if an error indicates API rate limiting. These
// are transient and safe to retry.
func IsThrottled(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "Throttling" || code == "ThrottlingException" || code == "RequestLimitExceeded"
	}
	return false
}
