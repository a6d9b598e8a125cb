package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderIsFixed(t *testing.T) {
	expected := []Kind{
		KindSecurityGroup,
		KindIAMRole,
		KindLogGroup,
		KindImageRegistry,
		KindLoadBalancer,
		KindTargetGroup,
		KindTaskDefinition,
		KindService,
		KindAutoScaling,
	}

	descriptors := Order()
	require.Len(t, descriptors, len(expected))
	for i, d := range descriptors {
		assert.Equal(t, expected[i], d.Kind)
	}
}

func TestOnlyLoadBalancerIsShared(t *testing.T) {
	for _, d := range Order() {
		if d.Kind == KindLoadBalancer {
			assert.True(t, d.Shared, "load balancer must be environment-scoped")
		} else {
			assert.False(t, d.Shared, "%s must be application-scoped", d.Kind)
		}
	}
}

func TestSuffixes(t *testing.T) {
	expected := map[Kind]string{
		KindSecurityGroup:  "sg",
		KindIAMRole:        "iam",
		KindLogGroup:       "logs",
		KindImageRegistry:  "ecr",
		KindLoadBalancer:   "alb",
		KindTargetGroup:    "tg",
		KindTaskDefinition: "taskdef",
		KindService:        "service",
		KindAutoScaling:    "autoscaling",
	}

	for _, d := range Order() {
		assert.Equal(t, expected[d.Kind], d.Suffix)
	}
}

func TestOutputsOnlyReferencedByLaterUnits(t *testing.T) {
	// Every FromOutput must be declared by a unit that precedes the
	// consumer in the fixed order.
	produced := map[string]bool{}
	for _, d := range Order() {
		for _, p := range d.Parameters {
			if p.FromOutput != "" {
				assert.True(t, produced[p.FromOutput],
					"%s consumes output %s before it is produced", d.Kind, p.FromOutput)
			}
		}
		for _, out := range d.Outputs {
			produced[out] = true
		}
	}
}

func TestIAMRoleRequiresNamedIAMCapability(t *testing.T) {
	d, ok := Lookup(KindIAMRole)
	require.True(t, ok)
	assert.Contains(t, d.Capabilities, CapabilityNamedIAM)
}

func TestLookupUnknownKind(t *testing.T) {
	_, ok := Lookup(Kind("Database"))
	assert.False(t, ok)
}

func TestOrderReturnsCopy(t *testing.T) {
	a := Order()
	a[0].Suffix = "mutated"

	b := Order()
	assert.Equal(t, "sg", b[0].Suffix)
}
