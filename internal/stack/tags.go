package stack

// Standard tag keys applied to every stack.
const (
	TagEnvironment = "Environment"
	TagApplication = "Application"
	TagManagedBy   = "ManagedBy"
)

// ManagedByValue identifies stacks owned by this tool.
const ManagedByValue = "CloudFormation"

// Tags returns the standard tag set for a stack.
func Tags(environment, application string) map[string]string {
	return map[string]string{
		TagEnvironment: environment,
		TagApplication: application,
		TagManagedBy:   ManagedByValue,
	}
}
