// Package config loads per-application, per-environment deployment
// configuration and turns it into the parameter sets consumed by the
// provisioning sequence.
//
// Configuration lives on disk as
//
//	application/<app>/<env>/config.yaml
//	application/<app>/<env>/iam.json   (optional task role policy)
//
// relative to the project root. Values are flat keys: strings, string
// lists, booleans, numbers, or pre-serialized JSON text.
package config

import "fmt"

// ValidEnvironments enumerates the deployment environments.
var ValidEnvironments = map[string]bool{
	"dev":     true,
	"qa":      true,
	"staging": true,
	"prod":    true,
}

// AppConfig is the fully loaded configuration for one (application,
// environment) pair. It is read-only after load.
type AppConfig struct {
	Application string
	Environment string

	// Parameters is the coerced base parameter set, including the
	// injected Environment, ApplicationName and TaskRolePolicyDocument
	// keys.
	Parameters *ParameterSet

	// StackNames maps descriptor StackNameKeys to explicit overrides
	// from the configuration file.
	StackNames map[string]string

	// Settings is the typed view of well-known keys, used by
	// validation and the init wizard.
	Settings Settings
}

// Settings holds the typed view of well-known configuration keys.
type Settings struct {
	ClusterName     string   `mapstructure:"ClusterName"`
	VpcID           string   `mapstructure:"VpcId"`
	SubnetIDs       []string `mapstructure:"SubnetIds"`
	CPU             string   `mapstructure:"CPU"`
	Memory          string   `mapstructure:"Memory"`
	ContainerPort   int      `mapstructure:"ContainerPort"`
	DesiredCount    int      `mapstructure:"DesiredCount"`
	MinCapacity     int      `mapstructure:"MinCapacity"`
	MaxCapacity     int      `mapstructure:"MaxCapacity"`
	HealthCheckPath string   `mapstructure:"HealthCheckPath"`
	TargetGroupPort int      `mapstructure:"TargetGroupPort"`
}

// StackNameOverride returns the configured stack name for the given
// descriptor key, or the provided default.
func (c *AppConfig) StackNameOverride(key, fallback string) string {
	if name, ok := c.StackNames[key]; ok && name != "" {
		return name
	}
	return fallback
}

// Error reports malformed or missing configuration. It is fatal for
// the affected application and raised before any backend call.
type Error struct {
	Path string // configuration file, when relevant
	Key  string // configuration key, when relevant
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Key != "":
		return fmt.Sprintf("config %s: key %s: %v", e.Path, e.Key, e.Err)
	case e.Path != "":
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	case e.Key != "":
		return fmt.Sprintf("config key %s: %v", e.Key, e.Err)
	default:
		return fmt.Sprintf("config: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }
