// Package wizard implements the interactive configuration generator
// behind the init command. It asks for the handful of values every
// deployment needs and writes a starter config.yaml for one
// application and environment.
package wizard

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/rpx-platform/ecsctl/internal/config"
)

// Result holds the user's choices.
type Result struct {
	Application string
	Environment string

	ClusterName string
	VpcID       string
	SubnetIDs   []string

	CPU           string
	Memory        string
	ContainerPort int
	DesiredCount  int
	MinCapacity   int
	MaxCapacity   int

	HealthCheckPath string
}

// isTerminal reports whether stdin is an interactive terminal.
// Replaced in tests.
var isTerminal = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Run asks the configuration questions and returns the answers.
func Run(ctx context.Context) (*Result, error) {
	if !isTerminal() {
		return nil, fmt.Errorf("init requires an interactive terminal; create the configuration file by hand instead")
	}

	result := &Result{
		CPU:             "256",
		Memory:          "512",
		ContainerPort:   80,
		DesiredCount:    1,
		MinCapacity:     1,
		MaxCapacity:     4,
		HealthCheckPath: "/health",
	}
	var (
		subnets       string
		containerPort = strconv.Itoa(result.ContainerPort)
		desiredCount  = strconv.Itoa(result.DesiredCount)
		minCapacity   = strconv.Itoa(result.MinCapacity)
		maxCapacity   = strconv.Itoa(result.MaxCapacity)
	)

	form := huh.NewForm(
		// Identity
		huh.NewGroup(
			huh.NewInput().
				Title("Application name").
				Description("Lowercase, used in stack names: {env}-{app}-{component}").
				Placeholder("my-service").
				Value(&result.Application).
				Validate(validateApplicationName),

			huh.NewSelect[string]().
				Title("Environment").
				Options(
					huh.NewOption("dev", "dev"),
					huh.NewOption("qa", "qa"),
					huh.NewOption("staging", "staging"),
					huh.NewOption("prod", "prod"),
				).
				Value(&result.Environment),
		),

		// Networking
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster name").
				Description("Existing ECS cluster to deploy into").
				Placeholder("dev-cluster").
				Value(&result.ClusterName).
				Validate(required("cluster name")),

			huh.NewInput().
				Title("VPC ID").
				Placeholder("vpc-0123456789abcdef0").
				Value(&result.VpcID).
				Validate(validateVpcID),

			huh.NewInput().
				Title("Subnet IDs").
				Description("Comma-separated private subnets").
				Placeholder("subnet-0123456789abcdef0,subnet-0123456789abcdef1").
				Value(&subnets).
				Validate(validateSubnetIDs),
		),

		// Task sizing
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Task CPU").
				Options(
					huh.NewOption("0.25 vCPU (256)", "256"),
					huh.NewOption("0.5 vCPU (512)", "512"),
					huh.NewOption("1 vCPU (1024)", "1024"),
					huh.NewOption("2 vCPU (2048)", "2048"),
				).
				Value(&result.CPU),

			huh.NewSelect[string]().
				Title("Task memory").
				Options(
					huh.NewOption("512 MiB", "512"),
					huh.NewOption("1 GiB (1024)", "1024"),
					huh.NewOption("2 GiB (2048)", "2048"),
					huh.NewOption("4 GiB (4096)", "4096"),
				).
				Value(&result.Memory),
		),

		// Service shape
		huh.NewGroup(
			huh.NewInput().
				Title("Container port").
				Value(&containerPort).
				Validate(validatePort),

			huh.NewInput().
				Title("Desired task count").
				Value(&desiredCount).
				Validate(validateCount("desired count")),

			huh.NewInput().
				Title("Minimum capacity").
				Value(&minCapacity).
				Validate(validateCount("minimum capacity")),

			huh.NewInput().
				Title("Maximum capacity").
				Value(&maxCapacity).
				Validate(validateCount("maximum capacity")),

			huh.NewInput().
				Title("Health check path").
				Placeholder("/health").
				Value(&result.HealthCheckPath),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("init canceled: %w", err)
	}

	for _, s := range strings.Split(subnets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			result.SubnetIDs = append(result.SubnetIDs, s)
		}
	}
	// The validators already rejected non-numeric input.
	result.ContainerPort, _ = strconv.Atoi(containerPort)
	result.DesiredCount, _ = strconv.Atoi(desiredCount)
	result.MinCapacity, _ = strconv.Atoi(minCapacity)
	result.MaxCapacity, _ = strconv.Atoi(maxCapacity)
	if result.MinCapacity > result.MaxCapacity {
		return nil, fmt.Errorf("minimum capacity (%d) exceeds maximum capacity (%d)", result.MinCapacity, result.MaxCapacity)
	}

	return result, nil
}

func validateApplicationName(s string) error {
	if s == "" {
		return fmt.Errorf("application name is required")
	}
	for _, c := range s {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-') {
			return fmt.Errorf("application name can only contain lowercase letters, numbers, and hyphens")
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return fmt.Errorf("application name cannot start or end with a hyphen")
	}
	return nil
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

func validateVpcID(s string) error {
	if !config.ValidVpcID(s) {
		return fmt.Errorf("expected a VPC ID like vpc-0123456789abcdef0")
	}
	return nil
}

func validateSubnetIDs(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) == 0 || strings.TrimSpace(s) == "" {
		return fmt.Errorf("at least one subnet is required")
	}
	for _, p := range parts {
		if !config.ValidSubnetID(strings.TrimSpace(p)) {
			return fmt.Errorf("%q is not a subnet ID", strings.TrimSpace(p))
		}
	}
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}

func validateCount(what string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return fmt.Errorf("%s must be a positive number", what)
		}
		return nil
	}
}
