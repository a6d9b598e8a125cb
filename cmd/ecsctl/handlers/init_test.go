package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpx-platform/ecsctl/internal/config/wizard"
)

func TestInitWritesConfiguration(t *testing.T) {
	origRun := runWizard
	origWrite := writeWizard
	defer func() {
		runWizard = origRun
		writeWizard = origWrite
	}()

	answers := &wizard.Result{Application: "aqcuiflow", Environment: "dev"}
	runWizard = func(context.Context) (*wizard.Result, error) { return answers, nil }

	var gotRoot string
	var gotResult *wizard.Result
	writeWizard = func(root string, r *wizard.Result) (string, error) {
		gotRoot = root
		gotResult = r
		return "application/aqcuiflow/dev/config.yaml", nil
	}

	out := captureUI(t)
	require.NoError(t, Init(context.Background(), "/tmp/project"))

	assert.Equal(t, "/tmp/project", gotRoot)
	assert.Same(t, answers, gotResult)
	assert.Contains(t, out.String(), "application/aqcuiflow/dev/config.yaml")
	assert.Contains(t, out.String(), "ecsctl deploy dev aqcuiflow")
}

func TestInitPropagatesWizardError(t *testing.T) {
	orig := runWizard
	defer func() { runWizard = orig }()
	runWizard = func(context.Context) (*wizard.Result, error) {
		return nil, errors.New("init canceled")
	}

	err := Init(context.Background(), ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canceled")
}
