package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackNames(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindSecurityGroup, "dev-aqcuiflow-sg"},
		{KindIAMRole, "dev-aqcuiflow-iam"},
		{KindLogGroup, "dev-aqcuiflow-logs"},
		{KindImageRegistry, "dev-aqcuiflow-ecr"},
		{KindLoadBalancer, "dev-alb"},
		{KindTargetGroup, "dev-aqcuiflow-tg"},
		{KindTaskDefinition, "dev-aqcuiflow-taskdef"},
		{KindService, "dev-aqcuiflow-service"},
		{KindAutoScaling, "dev-aqcuiflow-autoscaling"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			d, ok := Lookup(tt.kind)
			require.True(t, ok)
			assert.Equal(t, tt.expected, Name("dev", "aqcuiflow", d))
		})
	}
}

func TestSharedNameIgnoresApplication(t *testing.T) {
	d, ok := Lookup(KindLoadBalancer)
	require.True(t, ok)

	assert.Equal(t, Name("prod", "app-a", d), Name("prod", "app-b", d))
}

func TestTags(t *testing.T) {
	tags := Tags("qa", "billing")

	assert.Equal(t, "qa", tags[TagEnvironment])
	assert.Equal(t, "billing", tags[TagApplication])
	assert.Equal(t, "CloudFormation", tags[TagManagedBy])
}
