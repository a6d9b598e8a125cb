package wizard

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rpx-platform/ecsctl/internal/config"
)

// confirmOverwrite decides whether an existing configuration file may
// be replaced. Replaced in tests; the default refuses.
var confirmOverwrite = func(path string) bool {
	return false
}

// Write persists the wizard answers as a starter configuration under
// the project root. An existing file is only replaced after
// confirmation.
func Write(root string, r *Result) (string, error) {
	path := config.ConfigPath(root, r.Application, r.Environment)

	if _, err := os.Stat(path); err == nil {
		if !confirmOverwrite(path) {
			return "", fmt.Errorf("%s already exists", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create configuration directory: %w", err)
	}

	data, err := yaml.Marshal(document(r))
	if err != nil {
		return "", fmt.Errorf("failed to render configuration: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// document builds the YAML document in a stable, readable key order.
func document(r *Result) *yaml.Node {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	add := func(key string, value *yaml.Node) {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			value,
		)
	}
	scalar := func(v string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
	}
	number := func(v int) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%d", v), Tag: "!!int"}
	}

	add("ClusterName", scalar(r.ClusterName))
	add("VpcId", scalar(r.VpcID))

	subnets := &yaml.Node{Kind: yaml.SequenceNode}
	for _, s := range r.SubnetIDs {
		subnets.Content = append(subnets.Content, scalar(s))
	}
	add("SubnetIds", subnets)

	add("CPU", scalar(r.CPU))
	add("Memory", scalar(r.Memory))
	add("ContainerPort", number(r.ContainerPort))
	add("DesiredCount", number(r.DesiredCount))
	add("MinCapacity", number(r.MinCapacity))
	add("MaxCapacity", number(r.MaxCapacity))
	add("HealthCheckPath", scalar(r.HealthCheckPath))

	// The wizard does not ask for a separate target group port; record
	// where the value came from so readers know what to change.
	tgPort := number(r.ContainerPort)
	tgPort.LineComment = "# same as ContainerPort"
	add("TargetGroupPort", tgPort)

	return doc
}
