package handlers

import (
	"fmt"
	"os"

	"github.com/rpx-platform/ecsctl/internal/config"
	"github.com/rpx-platform/ecsctl/internal/stack"
	"github.com/rpx-platform/ecsctl/internal/ui"
)

// environmentOrder fixes the reporting order for validate output.
var environmentOrder = []string{"dev", "qa", "staging", "prod"}

// Validate checks every configuration file under the project root (or
// a single application's) without touching the backend. All findings
// are reported; the error carries the aggregate count.
func Validate(projectRoot, application string) error {
	apps, err := validateTargets(projectRoot, application)
	if err != nil {
		return err
	}

	ui.Header("Validating configurations")

	problems := 0
	for _, d := range stack.Order() {
		path := config.TemplatePath(projectRoot, d.TemplateFile)
		if _, err := os.Stat(path); err != nil {
			ui.Fail("template %s missing (needed by the %s stack)", d.TemplateFile, d.Suffix)
			problems++
		}
	}

	checked := 0
	for _, app := range apps {
		for _, env := range environmentOrder {
			if !config.HasEnvironment(projectRoot, app, env) {
				continue
			}
			checked++

			cfg, err := config.Load(projectRoot, app, env)
			if err != nil {
				ui.Fail("%s/%s: %v", app, env, err)
				problems++
				continue
			}

			errs := cfg.Validate()
			if len(errs) == 0 {
				ui.OK("%s/%s", app, env)
				continue
			}
			for _, e := range errs {
				ui.Fail("%s/%s: %v", app, env, e)
			}
			problems += len(errs)
		}
	}

	if checked == 0 {
		return fmt.Errorf("no configurations found under %s", config.ConfigPath(projectRoot, "<app>", "<env>"))
	}
	if problems > 0 {
		return fmt.Errorf("validation found %d problem(s) in %d configuration(s)", problems, checked)
	}

	ui.Info("")
	ui.OK("%d configuration(s) valid", checked)
	return nil
}

func validateTargets(projectRoot, application string) ([]string, error) {
	if application != "all" {
		return []string{application}, nil
	}
	return config.ListApplications(projectRoot)
}
