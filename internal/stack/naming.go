package stack

import "fmt"

// Naming functions for provisioned stacks.
// Stack names are pure functions of (environment, application,
// component), so repeated invocations address the same stacks.

// Name returns the stack name for a unit: {env}-{app}-{suffix} for
// application-scoped units, {env}-alb for the shared load balancer.
func Name(environment, application string, d Descriptor) string {
	if d.Shared {
		return SharedName(environment, d)
	}
	return fmt.Sprintf("%s-%s-%s", environment, application, d.Suffix)
}

// SharedName returns the environment-scoped name for a shared unit.
func SharedName(environment string, d Descriptor) string {
	return fmt.Sprintf("%s-%s", environment, d.Suffix)
}
