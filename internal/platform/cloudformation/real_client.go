package cloudformation

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

// Options configures the real CloudFormation client.
type Options struct {
	Region string

	// Endpoint overrides the service endpoint (LocalStack support).
	Endpoint string

	// AccessKey/SecretKey select static credentials; when empty the
	// default credential chain is used.
	AccessKey string
	SecretKey string
}

// RealClient implements StackManager against the AWS CloudFormation API.
type RealClient struct {
	cfn *cloudformation.Client
}

// Ensure interface compliance.
var _ StackManager = (*RealClient)(nil)

// NewRealClient creates a CloudFormation client for the given region,
// optionally pointed at a custom endpoint with static credentials.
func NewRealClient(ctx context.Context, opts Options) (*RealClient, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := cloudformation.NewFromConfig(cfg, func(o *cloudformation.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	return &RealClient{cfn: client}, nil
}

// CreateStack submits a new stack.
func (c *RealClient) CreateStack(ctx context.Context, input StackInput) error {
	_, err := c.cfn.CreateStack(ctx, &cloudformation.CreateStackInput{
		StackName:    aws.String(input.Name),
		TemplateBody: aws.String(input.TemplateBody),
		Parameters:   toSDKParameters(input.Parameters),
		Tags:         toSDKTags(input.Tags),
		Capabilities: toSDKCapabilities(input.Capabilities),
	})
	if err != nil {
		return fmt.Errorf("failed to create stack %s: %w", input.Name, err)
	}
	return nil
}

// UpdateStack submits a stack update. "No updates are to be performed"
// errors are returned unwrapped for classification by the caller.
func (c *RealClient) UpdateStack(ctx context.Context, input StackInput) error {
	_, err := c.cfn.UpdateStack(ctx, &cloudformation.UpdateStackInput{
		StackName:    aws.String(input.Name),
		TemplateBody: aws.String(input.TemplateBody),
		Parameters:   toSDKParameters(input.Parameters),
		Tags:         toSDKTags(input.Tags),
		Capabilities: toSDKCapabilities(input.Capabilities),
	})
	if err != nil {
		if IsNoUpdates(err) {
			return err
		}
		return fmt.Errorf("failed to update stack %s: %w", input.Name, err)
	}
	return nil
}

// DeleteStack requests stack deletion.
func (c *RealClient) DeleteStack(ctx context.Context, name string) error {
	_, err := c.cfn.DeleteStack(ctx, &cloudformation.DeleteStackInput{
		StackName: aws.String(name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete stack %s: %w", name, err)
	}
	return nil
}

// DescribeStack returns the current stack state, or (nil, nil) when
// the stack does not exist.
func (c *RealClient) DescribeStack(ctx context.Context, name string) (*Stack, error) {
	out, err := c.cfn.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(name),
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe stack %s: %w", name, err)
	}
	if len(out.Stacks) == 0 {
		return nil, nil
	}

	return fromSDKStack(out.Stacks[0]), nil
}

// FirstFailureReason scans the stack's events for the earliest failed
// resource and returns its status reason.
func (c *RealClient) FirstFailureReason(ctx context.Context, name string) (string, error) {
	paginator := cloudformation.NewDescribeStackEventsPaginator(c.cfn, &cloudformation.DescribeStackEventsInput{
		StackName: aws.String(name),
	})

	// Events arrive newest first; remember the last failed one seen,
	// which is the earliest failure chronologically.
	var reason string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to list events for stack %s: %w", name, err)
		}
		for _, event := range page.StackEvents {
			if !isFailedResourceStatus(event.ResourceStatus) {
				continue
			}
			if event.ResourceStatusReason != nil && *event.ResourceStatusReason != "" {
				reason = *event.ResourceStatusReason
			}
		}
	}
	return reason, nil
}

func isFailedResourceStatus(status types.ResourceStatus) bool {
	return strings.HasSuffix(string(status), "_FAILED")
}

func toSDKParameters(params []Parameter) []types.Parameter {
	out := make([]types.Parameter, 0, len(params))
	for _, p := range params {
		out = append(out, types.Parameter{
			ParameterKey:   aws.String(p.Key),
			ParameterValue: aws.String(p.Value),
		})
	}
	return out
}

func toSDKTags(tags map[string]string) []types.Tag {
	out := make([]types.Tag, 0, len(tags))
	// Deterministic tag order is not required by the API; keep the
	// loop simple.
	for k, v := range tags {
		out = append(out, types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	return out
}

func toSDKCapabilities(capabilities []string) []types.Capability {
	out := make([]types.Capability, 0, len(capabilities))
	for _, c := range capabilities {
		out = append(out, types.Capability(c))
	}
	return out
}

func fromSDKStack(s types.Stack) *Stack {
	stack := &Stack{
		Name:    aws.ToString(s.StackName),
		Status:  s.StackStatus,
		Outputs: make(map[string]string, len(s.Outputs)),
	}
	if s.StackStatusReason != nil {
		stack.StatusReason = *s.StackStatusReason
	}
	for _, o := range s.Outputs {
		if o.OutputKey != nil {
			stack.Outputs[*o.OutputKey] = aws.ToString(o.OutputValue)
		}
	}
	return stack
}
