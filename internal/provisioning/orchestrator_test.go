package provisioning

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpx-platform/ecsctl/internal/config"
	"github.com/rpx-platform/ecsctl/internal/platform/cloudformation"
	"github.com/rpx-platform/ecsctl/internal/stack"
)

// backendRecorder is the in-memory backend used by orchestrator tests:
// stacks reach their terminal state immediately and emit canned outputs
// keyed by the stack's component suffix.
type backendRecorder struct {
	creates []string
	updates []string
	deletes []string
	inputs  map[string]cloudformation.StackInput
	stacks  map[string]*cloudformation.Stack
}

func newHappyBackend() (*cloudformation.MockClient, *backendRecorder) {
	rec := &backendRecorder{
		inputs: make(map[string]cloudformation.StackInput),
		stacks: make(map[string]*cloudformation.Stack),
	}
	mock := &cloudformation.MockClient{
		CreateStackFunc: func(_ context.Context, input cloudformation.StackInput) error {
			rec.creates = append(rec.creates, input.Name)
			rec.inputs[input.Name] = input
			rec.stacks[input.Name] = &cloudformation.Stack{
				Name:    input.Name,
				Status:  types.StackStatusCreateComplete,
				Outputs: cannedOutputs(input.Name),
			}
			return nil
		},
		UpdateStackFunc: func(_ context.Context, input cloudformation.StackInput) error {
			rec.updates = append(rec.updates, input.Name)
			rec.inputs[input.Name] = input
			rec.stacks[input.Name] = &cloudformation.Stack{
				Name:    input.Name,
				Status:  types.StackStatusUpdateComplete,
				Outputs: cannedOutputs(input.Name),
			}
			return nil
		},
		DeleteStackFunc: func(_ context.Context, name string) error {
			rec.deletes = append(rec.deletes, name)
			delete(rec.stacks, name)
			return nil
		},
		DescribeStackFunc: func(_ context.Context, name string) (*cloudformation.Stack, error) {
			s, ok := rec.stacks[name]
			if !ok {
				return nil, nil
			}
			return s, nil
		},
	}
	return mock, rec
}

func cannedOutputs(name string) map[string]string {
	switch name[strings.LastIndex(name, "-")+1:] {
	case "sg":
		return map[string]string{"ALBSecurityGroupId": "sg-0alb", "ECSSecurityGroupId": "sg-0ecs"}
	case "iam":
		return map[string]string{
			"TaskExecutionRoleArn": "arn:aws:iam::123456789012:role/" + name + "-exec",
			"TaskRoleArn":          "arn:aws:iam::123456789012:role/" + name + "-task",
		}
	case "logs":
		return map[string]string{"LogGroupName": "/ecs/" + name}
	case "ecr":
		return map[string]string{"RepositoryUri": "123456789012.dkr.ecr.us-east-1.amazonaws.com/" + name}
	case "alb":
		return map[string]string{
			"ListenerArn":          "arn:aws:elasticloadbalancing:us-east-1:123456789012:listener/app/" + name + "/50dc6c/f2f7dc",
			"LoadBalancerFullName": "app/" + name + "/50dc6c",
			"LoadBalancerDNSName":  name + "-1234.us-east-1.elb.amazonaws.com",
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

func testAppConfig(app string) *config.AppConfig {
	params := config.NewParameterSet()
	params.Set("ClusterName", "dev-cluster")
	params.Set("VpcId", "vpc-0123456789abcdef0")
	params.Set("SubnetIds", "subnet-0123456789abcdef0,subnet-0123456789abcdef1")
	params.Set("Environment", "dev")
	params.Set("ApplicationName", app)
	params.Set("TaskRolePolicyDocument", "{}")
	return &config.AppConfig{
		Application: app,
		Environment: "dev",
		Parameters:  params,
		StackNames:  map[string]string{},
	}
}

func newTestOrchestrator(backend cloudformation.StackManager, dedup *Deduplicator) *Orchestrator {
	return NewOrchestrator(newTestDriver(backend), dedup, slog.New(slog.DiscardHandler))
}

var deployOrder = []string{
	"dev-aqcuiflow-sg",
	"dev-aqcuiflow-iam",
	"dev-aqcuiflow-logs",
	"dev-aqcuiflow-ecr",
	"dev-alb",
	"dev-aqcuiflow-tg",
	"dev-aqcuiflow-taskdef",
	"dev-aqcuiflow-service",
	"dev-aqcuiflow-autoscaling",
}

func TestDeployProvisionsAllUnitsInOrder(t *testing.T) {
	mock, rec := newHappyBackend()
	o := newTestOrchestrator(mock, NewDeduplicator())

	result := o.Deploy(context.Background(), testAppConfig("aqcuiflow"))
	require.False(t, result.Failed())

	assert.Equal(t, deployOrder, rec.creates)
	for _, u := range result.Units {
		assert.Equal(t, StateSucceeded, u.State, u.Name)
	}
}

func TestDeployFeedsOutputsForward(t *testing.T) {
	mock, rec := newHappyBackend()
	o := newTestOrchestrator(mock, NewDeduplicator())

	result := o.Deploy(context.Background(), testAppConfig("aqcuiflow"))
	require.False(t, result.Failed())

	find := func(name, key string) string {
		input, ok := rec.inputs[name]
		require.True(t, ok, name)
		for _, p := range input.Parameters {
			if p.Key == key {
				return p.Value
			}
		}
		t.Fatalf("%s: parameter %s not submitted", name, key)
		return ""
	}

	// ALB consumes the security group stack's output.
	assert.Equal(t, "sg-0alb", find("dev-alb", "SecurityGroupId"))
	// Target group consumes the shared listener.
	assert.Contains(t, find("dev-aqcuiflow-tg", "ListenerArn"), "listener/app/dev-alb")
	// Task definition consumes the log group.
	assert.Equal(t, "/ecs/dev-aqcuiflow-logs", find("dev-aqcuiflow-taskdef", "LogGroupName"))
	// Service wires the ECS security group, not the ALB one.
	assert.Equal(t, "sg-0ecs", find("dev-aqcuiflow-service", "SecurityGroupId"))
	// Autoscaling sees the load balancer's full name.
	assert.Equal(t, "app/dev-alb/50dc6c", find("dev-aqcuiflow-autoscaling", "ALBFullName"))
}

func TestDeployHaltsOnFirstFailure(t *testing.T) {
	mock, rec := newHappyBackend()
	inner := mock.CreateStackFunc
	mock.CreateStackFunc = func(ctx context.Context, input cloudformation.StackInput) error {
		if strings.HasSuffix(input.Name, "-logs") {
			return errors.New("AccessDenied")
		}
		return inner(ctx, input)
	}

	o := newTestOrchestrator(mock, NewDeduplicator())
	result := o.Deploy(context.Background(), testAppConfig("aqcuiflow"))
	require.True(t, result.Failed())

	states := make(map[string]UnitState)
	for _, u := range result.Units {
		states[u.Name] = u.State
	}
	assert.Equal(t, StateSucceeded, states["dev-aqcuiflow-sg"])
	assert.Equal(t, StateSucceeded, states["dev-aqcuiflow-iam"])
	assert.Equal(t, StateFailed, states["dev-aqcuiflow-logs"])
	for _, name := range deployOrder[3:] {
		assert.Equal(t, StateNotAttempted, states[name], name)
	}

	// No backend call was issued past the failing unit.
	assert.Equal(t, deployOrder[:2], rec.creates)
}

func TestDeploySharedLoadBalancerOncePerBatch(t *testing.T) {
	mock, rec := newHappyBackend()
	dedup := NewDeduplicator()

	first := newTestOrchestrator(mock, dedup).Deploy(context.Background(), testAppConfig("aqcuiflow"))
	require.False(t, first.Failed())

	second := newTestOrchestrator(mock, dedup).Deploy(context.Background(), testAppConfig("billing"))
	require.False(t, second.Failed())

	albCreates := 0
	for _, name := range rec.creates {
		if name == "dev-alb" {
			albCreates++
		}
	}
	assert.Equal(t, 1, albCreates)

	// The second application's ALB unit is skipped but its target group
	// still resolves the shared listener from the cached outputs.
	var albUnit UnitResult
	for _, u := range second.Units {
		if u.Kind == stack.KindLoadBalancer {
			albUnit = u
		}
	}
	assert.Equal(t, StateSkipped, albUnit.State)
	assert.Contains(t, rec.inputs["dev-billing-tg"].Parameters, cloudformation.Parameter{
		Key:   "ListenerArn",
		Value: "arn:aws:elasticloadbalancing:us-east-1:123456789012:listener/app/dev-alb/50dc6c/f2f7dc",
	})
}

func TestDeployMissingRequiredConfigFailsBeforeBackend(t *testing.T) {
	mock, rec := newHappyBackend()
	cfg := testAppConfig("aqcuiflow")
	cfg.Parameters = baseParams("Environment", "dev", "ApplicationName", "aqcuiflow")

	result := newTestOrchestrator(mock, NewDeduplicator()).Deploy(context.Background(), cfg)
	require.True(t, result.Failed())

	var missing *MissingParameterError
	require.ErrorAs(t, result.Units[0].Err, &missing)
	assert.Equal(t, "VpcId", missing.Key)
	assert.Empty(t, rec.creates)
}

func TestUpdateAppliesToExistingStacks(t *testing.T) {
	mock, rec := newHappyBackend()
	dedup := NewDeduplicator()
	o := newTestOrchestrator(mock, dedup)

	require.False(t, o.Deploy(context.Background(), testAppConfig("aqcuiflow")).Failed())

	rec.updates = nil
	result := newTestOrchestrator(mock, NewDeduplicator()).Update(context.Background(), testAppConfig("aqcuiflow"))
	require.False(t, result.Failed())
	assert.Equal(t, deployOrder, rec.updates)
	assert.Len(t, rec.creates, len(deployOrder), "update never creates")
}

func TestUpdateMissingStackIsPrerequisiteFailure(t *testing.T) {
	mock, rec := newHappyBackend()

	result := newTestOrchestrator(mock, NewDeduplicator()).Update(context.Background(), testAppConfig("aqcuiflow"))
	require.True(t, result.Failed())

	var prereq *PrerequisiteMissingError
	require.ErrorAs(t, result.Units[0].Err, &prereq)
	assert.Equal(t, "dev-aqcuiflow-sg", prereq.Stack)
	assert.Empty(t, rec.creates)
	assert.Empty(t, rec.updates)
}

func TestDeleteWalksReverseOrder(t *testing.T) {
	mock, rec := newHappyBackend()
	dedup := NewDeduplicator()
	o := newTestOrchestrator(mock, dedup)
	require.False(t, o.Deploy(context.Background(), testAppConfig("aqcuiflow")).Failed())

	result := newTestOrchestrator(mock, NewDeduplicator()).Delete(context.Background(), testAppConfig("aqcuiflow"))
	require.False(t, result.Failed())

	want := make([]string, 0, len(deployOrder))
	for i := len(deployOrder) - 1; i >= 0; i-- {
		want = append(want, deployOrder[i])
	}
	assert.Equal(t, want, rec.deletes)
}

func TestDeleteAbsentStacksAreSkipped(t *testing.T) {
	mock, rec := newHappyBackend()

	result := newTestOrchestrator(mock, NewDeduplicator()).Delete(context.Background(), testAppConfig("aqcuiflow"))
	require.False(t, result.Failed())

	for _, u := range result.Units {
		assert.Equal(t, StateSkipped, u.State, u.Name)
	}
	assert.Empty(t, rec.deletes)
}

func TestDeleteSharedLoadBalancerOncePerBatch(t *testing.T) {
	mock, rec := newHappyBackend()
	deployDedup := NewDeduplicator()
	require.False(t, newTestOrchestrator(mock, deployDedup).Deploy(context.Background(), testAppConfig("aqcuiflow")).Failed())
	require.False(t, newTestOrchestrator(mock, deployDedup).Deploy(context.Background(), testAppConfig("billing")).Failed())

	deleteDedup := NewDeduplicator()
	require.False(t, newTestOrchestrator(mock, deleteDedup).Delete(context.Background(), testAppConfig("aqcuiflow")).Failed())
	second := newTestOrchestrator(mock, deleteDedup).Delete(context.Background(), testAppConfig("billing"))
	require.False(t, second.Failed())

	albDeletes := 0
	for _, name := range rec.deletes {
		if name == "dev-alb" {
			albDeletes++
		}
	}
	assert.Equal(t, 1, albDeletes)
}

func TestDeleteOneRemovesSingleStack(t *testing.T) {
	mock, rec := newHappyBackend()
	dedup := NewDeduplicator()
	require.False(t, newTestOrchestrator(mock, dedup).Deploy(context.Background(), testAppConfig("aqcuiflow")).Failed())

	unit, err := newTestOrchestrator(mock, NewDeduplicator()).DeleteOne(context.Background(), testAppConfig("aqcuiflow"), stack.KindImageRegistry)
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, unit.State)
	assert.Equal(t, []string{"dev-aqcuiflow-ecr"}, rec.deletes)
}

func TestDeleteOneUnknownKind(t *testing.T) {
	mock, _ := newHappyBackend()
	_, err := newTestOrchestrator(mock, NewDeduplicator()).DeleteOne(context.Background(), testAppConfig("aqcuiflow"), stack.Kind("Database"))
	require.Error(t, err)
}

func TestStatusReportsWithoutMutating(t *testing.T) {
	mock, rec := newHappyBackend()
	dedup := NewDeduplicator()
	require.False(t, newTestOrchestrator(mock, dedup).Deploy(context.Background(), testAppConfig("aqcuiflow")).Failed())
	require.NoError(t, mock.DeleteStackFunc(context.Background(), "dev-aqcuiflow-ecr"))

	rec.creates = nil
	rec.updates = nil
	rec.deletes = nil

	result := newTestOrchestrator(mock, NewDeduplicator()).Status(context.Background(), testAppConfig("aqcuiflow"))

	states := make(map[string]UnitResult)
	for _, u := range result.Units {
		states[u.Name] = u
	}
	assert.Equal(t, StateSucceeded, states["dev-aqcuiflow-sg"].State)
	assert.Equal(t, "CREATE_COMPLETE", states["dev-aqcuiflow-sg"].Detail)
	assert.Equal(t, StateSkipped, states["dev-aqcuiflow-ecr"].State)

	assert.Empty(t, rec.creates)
	assert.Empty(t, rec.updates)
	assert.Empty(t, rec.deletes)
}

func TestStackNameOverrideIsHonored(t *testing.T) {
	mock, rec := newHappyBackend()
	cfg := testAppConfig("aqcuiflow")
	cfg.StackNames["ECRStackName"] = "legacy-aqcuiflow-registry"

	result := newTestOrchestrator(mock, NewDeduplicator()).Deploy(context.Background(), cfg)
	require.False(t, result.Failed())
	assert.Contains(t, rec.creates, "legacy-aqcuiflow-registry")
	assert.NotContains(t, rec.creates, "dev-aqcuiflow-ecr")
}
