package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timing values for backend polling.
// These values can be customized via environment variables.
type Timeouts struct {
	PollInterval      time.Duration // Interval between DescribeStacks polls
	StackCreate       time.Duration // Timeout for stack create operations
	StackUpdate       time.Duration // Timeout for stack update operations
	StackDelete       time.Duration // Timeout for stack delete operations
	RetryMaxAttempts  int           // Maximum number of retry attempts for transient API errors
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timing configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - ECSCTL_POLL_INTERVAL (default: 5s)
//   - ECSCTL_TIMEOUT_CREATE (default: 30m)
//   - ECSCTL_TIMEOUT_UPDATE (default: 30m)
//   - ECSCTL_TIMEOUT_DELETE (default: 15m)
//   - ECSCTL_RETRY_MAX_ATTEMPTS (default: 5)
//   - ECSCTL_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		PollInterval:      parseDuration("ECSCTL_POLL_INTERVAL", 5*time.Second),
		StackCreate:       parseDuration("ECSCTL_TIMEOUT_CREATE", 30*time.Minute),
		StackUpdate:       parseDuration("ECSCTL_TIMEOUT_UPDATE", 30*time.Minute),
		StackDelete:       parseDuration("ECSCTL_TIMEOUT_DELETE", 15*time.Minute),
		RetryMaxAttempts:  parseInt("ECSCTL_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("ECSCTL_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
