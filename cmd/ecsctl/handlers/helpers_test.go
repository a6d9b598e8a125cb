package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/stretchr/testify/require"

	"github.com/rpx-platform/ecsctl/internal/config"
	"github.com/rpx-platform/ecsctl/internal/platform/cloudformation"
	"github.com/rpx-platform/ecsctl/internal/stack"
	"github.com/rpx-platform/ecsctl/internal/ui"
)

const testConfigYAML = `ClusterName: dev-cluster
VpcId: vpc-0123456789abcdef0
SubnetIds:
  - subnet-0123456789abcdef0
  - subnet-0123456789abcdef1
CPU: "256"
Memory: "512"
ContainerPort: 8080
DesiredCount: 1
MinCapacity: 1
MaxCapacity: 2
HealthCheckPath: /health
TargetGroupPort: 8080
`

// writeProject lays out a temp project root with dev configurations
// for the given applications and a template file per unit.
func writeProject(t *testing.T, apps ...string) string {
	t.Helper()
	root := t.TempDir()

	for _, app := range apps {
		path := config.ConfigPath(root, app, "dev")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o644))
	}

	for _, d := range stack.Order() {
		path := config.TemplatePath(root, d.TemplateFile)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("Resources: {}\n"), 0o644))
	}

	return root
}

// captureUI redirects user-facing output to a buffer for assertions.
func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := ui.Output
	buf := &bytes.Buffer{}
	ui.Output = buf
	t.Cleanup(func() { ui.Output = orig })
	return buf
}

// injectBackend replaces the client factory, logger and timeouts with
// test doubles, restoring them on cleanup.
func injectBackend(t *testing.T, client cloudformation.StackManager) {
	t.Helper()
	origClient := newStackClient
	origTimeouts := loadTimeouts
	origLogger := newLogger
	t.Cleanup(func() {
		newStackClient = origClient
		loadTimeouts = origTimeouts
		newLogger = origLogger
	})

	newStackClient = func(context.Context, string) (cloudformation.StackManager, error) {
		return client, nil
	}
	loadTimeouts = func() *config.Timeouts {
		return &config.Timeouts{
			PollInterval:      time.Millisecond,
			StackCreate:       time.Second,
			StackUpdate:       time.Second,
			StackDelete:       time.Second,
			RetryMaxAttempts:  2,
			RetryInitialDelay: time.Millisecond,
		}
	}
	newLogger = func() *slog.Logger { return slog.New(slog.DiscardHandler) }
}

// inMemoryBackend reaches terminal states immediately and emits the
// outputs later units consume.
func inMemoryBackend() (*cloudformation.MockClient, *map[string]*cloudformation.Stack) {
	stacks := map[string]*cloudformation.Stack{}
	mock := &cloudformation.MockClient{
		CreateStackFunc: func(_ context.Context, input cloudformation.StackInput) error {
			stacks[input.Name] = &cloudformation.Stack{
				Name:    input.Name,
				Status:  types.StackStatusCreateComplete,
				Outputs: stubOutputs(input.Name),
			}
			return nil
		},
		UpdateStackFunc: func(_ context.Context, input cloudformation.StackInput) error {
			stacks[input.Name] = &cloudformation.Stack{
				Name:    input.Name,
				Status:  types.StackStatusUpdateComplete,
				Outputs: stubOutputs(input.Name),
			}
			return nil
		},
		DeleteStackFunc: func(_ context.Context, name string) error {
			delete(stacks, name)
			return nil
		},
		DescribeStackFunc: func(_ context.Context, name string) (*cloudformation.Stack, error) {
			s, ok := stacks[name]
			if !ok {
				return nil, nil
			}
			return s, nil
		},
	}
	return mock, &stacks
}

func stubOutputs(name string) map[string]string {
	switch name[strings.LastIndex(name, "-")+1:] {
	case "sg":
		return map[string]string{"ALBSecurityGroupId": "sg-0alb", "ECSSecurityGroupId": "sg-0ecs"}
	case "logs":
		return map[string]string{"LogGroupName": "/ecs/" + name}
	case "alb":
		return map[string]string{
			"ListenerArn":          "arn:aws:elasticloadbalancing:us-east-1:123456789012:listener/app/dev-alb/50dc6c/f2f7dc",
			"LoadBalancerFullName": "app/dev-alb/50dc6c",
			"LoadBalancerDNSName":  "dev-alb-1234.us-east-1.elb.amazonaws.com",
		}
	case "tg":
		return map[string]string{
			"TargetGroupArn":      "arn:aws:elasticloadbalancing:us-east-1:123456789012:targetgroup/" + name + "/73e2d6",
			"TargetGroupFullName": "targetgroup/" + name + "/73e2d6",
		}
	case "taskdef":
		return map[string]string{"TaskDefinitionArn": "arn:aws:ecs:us-east-1:123456789012:task-definition/" + name + ":1"}
	case "service":
		return map[string]string{"ServiceName": name}
	}
	return nil
}
