package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinnerProgressReporter(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	r := newSpinnerProgressReporter(&buf)
	ctx := context.Background()

	r.OnProgress(ctx, usecase.ProgressEvent{Stage: "deploy-weth", Message: "Deploying WETH9", Spinner: true})
	r.Info("Deployed WETH9 at 0x5FbDB2315678afecb367f032d93F642f64180aa3")
	r.OnProgress(ctx, usecase.ProgressEvent{Stage: "deploy-ico", Message: "Deploying ScamIco", Spinner: true})
	// a plain event without a message only closes the stage
	r.OnProgress(ctx, usecase.ProgressEvent{Stage: "done"})

	stages := r.Stages()
	require.Len(t, stages, 2)
	assert.Equal(t, "deploy-weth", stages[0].Stage)
	assert.Equal(t, "deploy-ico", stages[1].Stage)
	assert.False(t, stages[1].EndTime.IsZero())

	out := buf.String()
	assert.Contains(t, out, "✓ Deploying WETH9")
	assert.Contains(t, out, "Deployed WETH9 at")
	assert.Contains(t, out, "✓ Deploying ScamIco")
}

func TestSpinnerProgressReporterError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	r := newSpinnerProgressReporter(&buf)

	r.OnProgress(context.Background(), usecase.ProgressEvent{Message: "Deploying ScamIco", Spinner: true})
	r.Error("execution reverted")

	assert.Empty(t, r.Stages())
	assert.Contains(t, buf.String(), "✗ Deploying ScamIco")
	assert.Contains(t, buf.String(), "execution reverted")

	buf.Reset()
	r.OnProgress(context.Background(), usecase.ProgressEvent{Message: "Approving ScamIco", Spinner: true})
	r.Error("")
	assert.Equal(t, "✗ Approving ScamIco\n", buf.String())
}

func TestNewProgressSink(t *testing.T) {
	assert.IsType(t, &NopSink{}, NewProgressSink(&config.RuntimeConfig{NonInteractive: true}))
	assert.IsType(t, &NopSink{}, NewProgressSink(&config.RuntimeConfig{Quiet: true}))
	assert.IsType(t, &SpinnerProgressReporter{}, NewProgressSink(&config.RuntimeConfig{}))
}
