package provisioning

import (
	"github.com/rpx-platform/ecsctl/internal/config"
	"github.com/rpx-platform/ecsctl/internal/stack"
)

// ResolveParameters assembles the final parameter set for one unit
// from the base configuration and the outputs accumulated from prior
// units. Outputs take precedence over configuration for any key they
// define.
//
// A required parameter that resolves to nothing aborts with
// *MissingParameterError — before any backend call is attempted.
func ResolveParameters(d stack.Descriptor, stackName string, base *config.ParameterSet, outputs OutputMap) (*config.ParameterSet, error) {
	resolved := config.NewParameterSet()

	for _, p := range d.Parameters {
		value, ok := resolveOne(p, base, outputs)
		if !ok {
			if p.Required {
				return nil, &MissingParameterError{Stack: stackName, Key: p.Key}
			}
			value = p.Default
		}
		resolved.Set(p.Key, value)
	}

	return resolved, nil
}

// resolveOne resolves a single parameter: prior-unit outputs first,
// then configuration, then the DefaultKey lookup.
func resolveOne(p stack.ParamSpec, base *config.ParameterSet, outputs OutputMap) (string, bool) {
	outputKey := p.FromOutput
	if outputKey == "" {
		outputKey = p.Key
	}
	if v, ok := outputs[outputKey]; ok && v != "" {
		return v, true
	}

	configKey := p.ConfigKey
	if configKey == "" {
		configKey = p.Key
	}
	if v, ok := base.Get(configKey); ok && v != "" {
		return v, true
	}

	if p.DefaultKey != "" {
		if v, ok := base.Get(p.DefaultKey); ok && v != "" {
			return v, true
		}
	}

	return "", false
}
