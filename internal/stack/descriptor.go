// Package stack defines the static registry of infrastructure units
// that make up one application deployment.
//
// Each application owns eight stacks plus one environment-scoped
// load balancer stack shared by every application in the environment.
// The order of the registry is the provisioning order; teardown walks
// it in reverse.
package stack

// Kind identifies one independently provisionable infrastructure unit.
type Kind string

// The nine unit kinds, in provisioning order.
const (
	KindSecurityGroup  Kind = "SecurityGroup"
	KindIAMRole        Kind = "IAMRole"
	KindLogGroup       Kind = "LogGroup"
	KindImageRegistry  Kind = "ImageRegistry"
	KindLoadBalancer   Kind = "LoadBalancer"
	KindTargetGroup    Kind = "TargetGroup"
	KindTaskDefinition Kind = "TaskDefinition"
	KindService        Kind = "Service"
	KindAutoScaling    Kind = "AutoScaling"
)

// ParamSpec declares how a single CloudFormation parameter is resolved.
//
// Resolution order: accumulated stack outputs (FromOutput, or the
// parameter key itself) win over configuration values, which win over
// DefaultKey lookups and finally the literal Default. A parameter that
// resolves to nothing and is Required aborts the unit before any
// backend call.
type ParamSpec struct {
	// Key is the CloudFormation parameter key.
	Key string

	// FromOutput names the prior-unit output that feeds this parameter
	// when the output key differs from Key. Empty means outputs are
	// matched by Key.
	FromOutput string

	// ConfigKey names the configuration key consulted when no output
	// matches. Empty means Key.
	ConfigKey string

	// DefaultKey names another configuration key whose value is used
	// when ConfigKey is absent (e.g. HostHeaders defaults to the
	// application name).
	DefaultKey string

	// Default is the literal fallback value.
	Default string

	// Required marks parameters that must resolve to a non-empty value.
	Required bool
}

// Descriptor describes one unit kind: its template, naming, parameter
// wiring and declared outputs.
type Descriptor struct {
	Kind         Kind
	Suffix       string // stack name component suffix, e.g. "sg"
	TemplateFile string // template document under the template directory
	Shared       bool   // environment-scoped (one instance per environment)
	Capabilities []string
	Parameters   []ParamSpec
	Outputs      []string

	// StackNameKey is the configuration key that overrides the derived
	// stack name when present.
	StackNameKey string
}

// CapabilityNamedIAM is required for stacks creating named IAM resources.
const CapabilityNamedIAM = "CAPABILITY_NAMED_IAM"

// order is the fixed provisioning sequence. Later units may only
// consume outputs of earlier ones.
var order = []Descriptor{
	{
		Kind:         KindSecurityGroup,
		Suffix:       "sg",
		TemplateFile: "sg.yaml",
		StackNameKey: "SecurityGroupStackName",
		Parameters: []ParamSpec{
			{Key: "Environment", Required: true},
			{Key: "ApplicationName", Required: true},
			{Key: "VpcId", Required: true},
			{Key: "AllowedCIDR", Default: "0.0.0.0/0"},
		},
		Outputs: []string{"ALBSecurityGroupId", "ECSSecurityGroupId"},
	},
	{
		Kind:         KindIAMRole,
		Suffix:       "iam",
		TemplateFile: "iam.yaml",
		StackNameKey: "IAMStackName",
		Capabilities: []string{CapabilityNamedIAM},
		Parameters: []ParamSpec{
			{Key: "Environment", Required: true},
			{Key: "ApplicationName", Required: true},
			{Key: "TaskRolePolicyDocument", Default: "{}"},
		},
		Outputs: []string{"TaskExecutionRoleArn", "TaskRoleArn"},
	},
	{
		Kind:         KindLogGroup,
		Suffix:       "logs",
		TemplateFile: "cloudwatch.yaml",
		StackNameKey: "CloudWatchStackName",
		Parameters: []ParamSpec{
			{Key: "Environment", Required: true},
			{Key: "ApplicationName", Required: true},
			{Key: "RetentionInDays", Default: "7"},
		},
		Outputs: []string{"LogGroupName"},
	},
	{
		Kind:         KindImageRegistry,
		Suffix:       "ecr",
		TemplateFile: "ecr.yaml",
		StackNameKey: "ECRStackName",
		Parameters: []ParamSpec{
			{Key: "Environment", Required: true},
			{Key: "ApplicationName", Required: true},
			{Key: "ImageTagMutability", Default: "MUTABLE"},
			{Key: "ScanOnPush", Default: "true"},
		},
		Outputs: []string{"RepositoryUri"},
	},
	{
		Kind:         KindLoadBalancer,
		Suffix:       "alb",
		TemplateFile: "alb.yaml",
		Shared:       true,
		StackNameKey: "ALBStackName",
		Parameters: []ParamSpec{
			{Key: "Environment", Required: true},
			{Key: "VpcId", Required: true},
			{Key: "SubnetIds", Required: true},
			{Key: "SecurityGroupId", FromOutput: "ALBSecurityGroupId", Required: true},
			{Key: "CertificateArn", Default: ""},
		},
		Outputs: []string{"ListenerArn", "LoadBalancerFullName", "LoadBalancerDNSName"},
	},
	{
		Kind:         KindTargetGroup,
		Suffix:       "tg",
		TemplateFile: "target_group.yaml",
		StackNameKey: "TargetGroupStackName",
		Parameters: []ParamSpec{
			{Key: "Environment", Required: true},
			{Key: "ServiceName", ConfigKey: "ApplicationName", Required: true},
			{Key: "VpcId", Required: true},
			{Key: "ListenerArn", Required: true},
			{Key: "HostHeaders", DefaultKey: "ApplicationName"},
			{Key: "ListenerType", Default: "HTTPS"},
			{Key: "Priority", Default: "100"},
			{Key: "HealthCheckPath", Default: "/health"},
			{Key: "TargetGroupPort", Default: "80"},
			{Key: "HealthCheckIntervalSeconds", Default: "30"},
			{Key: "HealthCheckTimeoutSeconds", Default: "5"},
			{Key: "HealthyThresholdCount", Default: "2"},
			{Key: "UnhealthyThresholdCount", Default: "3"},
			{Key: "DeregistrationDelay", Default: "30"},
			{Key: "HealthCheckMatcherHttpCode", Default: "200"},
		},
		Outputs: []string{"TargetGroupArn", "TargetGroupFullName"},
	},
	{
		Kind:         KindTaskDefinition,
		Suffix:       "taskdef",
		TemplateFile: "task_definition.yaml",
		StackNameKey: "TaskDefinitionStackName",
		Parameters: []ParamSpec{
			{Key: "Environment", Required: true},
			{Key: "ApplicationName", Required: true},
			{Key: "ExecutionRole", Default: ""},
			{Key: "TaskRole", ConfigKey: "ExecutionRole", Default: ""},
			{Key: "LogGroupName", Required: true},
			{Key: "CPU", Default: "256"},
			{Key: "Memory", Default: "512"},
			{Key: "ContainerImage", Default: ""},
			{Key: "ContainerPort", Default: "80"},
			{Key: "EnvironmentVariables", Default: "[]"},
			{Key: "Secrets", Default: "[]"},
		},
		Outputs: []string{"TaskDefinitionArn"},
	},
	{
		Kind:         KindService,
		Suffix:       "service",
		TemplateFile: "ecs_service.yaml",
		StackNameKey: "ECSServiceStackName",
		Parameters: []ParamSpec{
			{Key: "Environment", Required: true},
			{Key: "ApplicationName", Required: true},
			{Key: "ClusterName", Required: true},
			{Key: "TaskDefinitionArn", Required: true},
			{Key: "DesiredCount", Default: "1"},
			{Key: "SubnetIds", Required: true},
			{Key: "SecurityGroupId", FromOutput: "ECSSecurityGroupId", Required: true},
			{Key: "TargetGroupArn", Required: true},
			{Key: "ContainerName", DefaultKey: "ApplicationName"},
			{Key: "ContainerPort", Default: "80"},
			{Key: "HealthCheckGracePeriodSeconds", Default: "60"},
		},
		Outputs: []string{"ServiceName"},
	},
	{
		Kind:         KindAutoScaling,
		Suffix:       "autoscaling",
		TemplateFile: "service_autoscaling.yaml",
		StackNameKey: "AutoScalingStackName",
		Parameters: []ParamSpec{
			{Key: "Environment", Required: true},
			{Key: "ApplicationName", Required: true},
			{Key: "ClusterName", Required: true},
			{Key: "ServiceName", Required: true},
			{Key: "MinCapacity", Default: "1"},
			{Key: "MaxCapacity", Default: "4"},
			{Key: "EnableCPUScaling", Default: "true"},
			{Key: "TargetCPUUtilization", Default: "70"},
			{Key: "EnableMemoryScaling", Default: "true"},
			{Key: "TargetMemoryUtilization", Default: "80"},
			{Key: "EnableRequestCountScaling", Default: "false"},
			{Key: "ALBFullName", FromOutput: "LoadBalancerFullName", Default: ""},
			{Key: "TargetGroupFullName", Default: ""},
		},
		Outputs: nil,
	},
}

// Order returns the fixed provisioning sequence. The returned slice is
// a copy; callers may not mutate the registry.
func Order() []Descriptor {
	out := make([]Descriptor, len(order))
	copy(out, order)
	return out
}

// Lookup returns the descriptor for a kind.
func Lookup(kind Kind) (Descriptor, bool) {
	for _, d := range order {
		if d.Kind == kind {
			return d, true
		}
	}
	return Descriptor{}, false
}
