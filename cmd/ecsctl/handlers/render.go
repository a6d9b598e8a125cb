package handlers

import (
	"sort"

	"github.com/rpx-platform/ecsctl/internal/provisioning"
	"github.com/rpx-platform/ecsctl/internal/ui"
)

// renderResult prints the per-unit outcome of one application.
func renderResult(result *provisioning.AppResult) {
	for _, u := range result.Units {
		renderUnit(u, false)
	}
}

// renderStatus prints a describe-only result, including stack outputs.
func renderStatus(result *provisioning.AppResult) {
	for _, u := range result.Units {
		renderUnit(u, true)
	}
}

func renderUnit(u provisioning.UnitResult, withOutputs bool) {
	switch u.State {
	case provisioning.StateSucceeded:
		if u.Detail != "" {
			ui.OK("%s (%s)", u.Name, u.Detail)
		} else {
			ui.OK("%s", u.Name)
		}
		if withOutputs {
			renderOutputs(u.Outputs)
		}
	case provisioning.StateSkipped:
		ui.Warn("%s: %s", u.Name, u.Detail)
	case provisioning.StateFailed:
		ui.Fail("%s: %v", u.Name, u.Err)
	case provisioning.StateNotAttempted:
		ui.Info("  %s: not attempted", u.Name)
	}
}

func renderOutputs(outputs provisioning.OutputMap) {
	keys := make([]string, 0, len(outputs))
	for k := range outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ui.Detail(k, outputs[k])
	}
}
