package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Project layout relative to the project root.
const (
	applicationDir = "application"
	templateDir    = "template"
	configFile     = "config.yaml"
	policyFile     = "iam.json"
)

// ConfigPath returns the configuration file path for an application
// and environment.
func ConfigPath(root, app, env string) string {
	return filepath.Join(root, applicationDir, app, env, configFile)
}

// PolicyPath returns the IAM policy document path for an application
// and environment.
func PolicyPath(root, app, env string) string {
	return filepath.Join(root, applicationDir, app, env, policyFile)
}

// TemplatePath returns the path of a unit's template document.
func TemplatePath(root, file string) string {
	return filepath.Join(root, templateDir, file)
}

// ListApplications returns every application directory under the
// project root, sorted.
func ListApplications(root string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(root, applicationDir))
	if err != nil {
		return nil, &Error{Path: filepath.Join(root, applicationDir), Err: fmt.Errorf("failed to list applications: %w", err)}
	}

	var apps []string
	for _, e := range entries {
		if e.IsDir() {
			apps = append(apps, e.Name())
		}
	}
	sort.Strings(apps)
	return apps, nil
}

// HasEnvironment reports whether an application is configured for the
// given environment.
func HasEnvironment(root, app, env string) bool {
	info, err := os.Stat(ConfigPath(root, app, env))
	return err == nil && !info.IsDir()
}
