package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load reads and resolves the configuration for one (application,
// environment) pair. A missing configuration file is an *Error; so is
// any value that fails its type coercion.
func Load(root, app, env string) (*AppConfig, error) {
	path := ConfigPath(root, app, env)

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	raw, keyOrder, err := parseDocument(data)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	var settings Settings
	if err := mapstructure.WeakDecode(raw, &settings); err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("failed to decode config: %w", err)}
	}

	params, overrides, err := buildParameters(raw, keyOrder)
	if err != nil {
		if cerr, ok := err.(*Error); ok {
			cerr.Path = path
		}
		return nil, err
	}

	// Environment and ApplicationName are authoritative from the
	// request, not the file.
	params.Set("Environment", env)
	params.Set("ApplicationName", app)

	policy, err := LoadPolicy(PolicyPath(root, app, env))
	if err != nil {
		return nil, err
	}
	params.Set("TaskRolePolicyDocument", policy)

	return &AppConfig{
		Application: app,
		Environment: env,
		Parameters:  params,
		StackNames:  overrides,
		Settings:    settings,
	}, nil
}

// parseDocument unmarshals a YAML mapping while preserving the
// document's key order.
func parseDocument(data []byte) (map[string]any, []string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if len(doc.Content) == 0 {
		return map[string]any{}, nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("expected a mapping at document root, got %s", nodeKind(root.Kind))
	}

	raw := make(map[string]any, len(root.Content)/2)
	order := make([]string, 0, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return nil, nil, fmt.Errorf("invalid key at line %d: %w", keyNode.Line, err)
		}

		var value any
		if err := valueNode.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}

		if _, seen := raw[key]; !seen {
			order = append(order, key)
		}
		raw[key] = value
	}

	return raw, order, nil
}

func nodeKind(kind yaml.Kind) string {
	switch kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
