package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/batchlab/batchctl/internal/usecase"
)

// SpinnerSink reports progress with a terminal spinner while the tool waits
// on wallet settlement or receipt confirmation.
type SpinnerSink struct {
	spinner *spinner.Spinner
}

// NewSpinnerSink creates a spinner-based progress sink.
func NewSpinnerSink() *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.HideCursor = false
	return &SpinnerSink{spinner: s}
}

// OnProgress starts or stops the spinner depending on the event.
func (s *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Message != "" {
		s.spinner.Suffix = " " + event.Message
	}
	if event.Spinner {
		if !s.spinner.Active() {
			s.spinner.Start()
		}
		return
	}
	if s.spinner.Active() {
		s.spinner.Stop()
	}
	if event.Message != "" {
		fmt.Println(event.Message)
	}
}

// Info prints an informational line, pausing the spinner if needed.
func (s *SpinnerSink) Info(message string) {
	active := s.spinner.Active()
	if active {
		s.spinner.Stop()
	}
	fmt.Println(message)
	if active {
		s.spinner.Start()
	}
}

// Error prints an error line in red.
func (s *SpinnerSink) Error(message string) {
	if s.spinner.Active() {
		s.spinner.Stop()
	}
	color.New(color.FgRed).Fprintln(color.Error, message)
}

// Ensure the sink implements the port
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
