package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/scam-ico/scam-ico/internal/usecase"
)

// SpinnerProgressReporter implements progress reporting with a spinner.
// Every spinning stage is closed with a check mark line once the next
// message arrives.
type SpinnerProgressReporter struct {
	out     io.Writer
	spinner *spinner.Spinner
	current *stageInfo
	stages  []stageInfo
}

type stageInfo struct {
	Stage     string
	Message   string
	StartTime time.Time
	EndTime   time.Time
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter on stderr
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return newSpinnerProgressReporter(os.Stderr)
}

func newSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		out:     out,
		spinner: s,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.completeCurrentStage()

	if !event.Spinner {
		if event.Message != "" {
			color.New(color.FgCyan).Fprintln(r.out, event.Message)
		}
		return
	}

	r.current = &stageInfo{
		Stage:     event.Stage,
		Message:   event.Message,
		StartTime: time.Now(),
	}
	r.spinner.Suffix = " " + event.Message
	if !r.spinner.Active() {
		r.spinner.Start()
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.completeCurrentStage()
	color.New(color.FgCyan).Fprintln(r.out, message)
}

// Error marks the running stage as failed and prints message when set
func (r *SpinnerProgressReporter) Error(message string) {
	if r.current != nil {
		r.spinner.Stop()
		color.New(color.FgRed).Fprintf(r.out, "✗ %s\n", r.current.Message)
		r.current = nil
	}
	if message != "" {
		color.New(color.FgRed).Fprintln(r.out, message)
	}
}

// Stages returns the completed stages
func (r *SpinnerProgressReporter) Stages() []stageInfo {
	return r.stages
}

// completeCurrentStage marks the current stage as completed
func (r *SpinnerProgressReporter) completeCurrentStage() {
	if r.current == nil {
		return
	}
	r.spinner.Stop()

	stage := *r.current
	stage.EndTime = time.Now()
	r.stages = append(r.stages, stage)
	r.current = nil

	duration := stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond)
	fmt.Fprintf(r.out, "%s %s %s\n",
		color.GreenString("✓"),
		stage.Message,
		color.New(color.Faint).Sprintf("(%s)", duration))
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
