package style

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner is the progress indicator shown while workbooks load.
type Spinner interface {
	SetSuffix(suffix string)
	SetFinalMSG(finalMSG string)
	Start()
	Stop()
}

// TerminalSpinner wraps the animated terminal spinner.
type TerminalSpinner struct {
	spinner *spinner.Spinner
}

func (s *TerminalSpinner) SetSuffix(suffix string) {
	s.spinner.Suffix = suffix
}

func (s *TerminalSpinner) SetFinalMSG(finalMSG string) {
	s.spinner.FinalMSG = finalMSG
}

func (s *TerminalSpinner) Start() {
	s.spinner.Start()
}

func (s *TerminalSpinner) Stop() {
	s.spinner.Stop()
}

// PlainSpinner writes spinner transitions as plain lines instead of
// redrawing, so test output and non-tty logs stay readable.
type PlainSpinner struct {
	Writer   io.Writer
	suffix   string
	finalMSG string
	active   bool
}

func (s *PlainSpinner) SetSuffix(suffix string) {
	s.suffix = suffix
	if s.active {
		fmt.Fprintf(s.Writer, "... %s\n", suffix)
	}
}

func (s *PlainSpinner) SetFinalMSG(finalMSG string) {
	s.finalMSG = finalMSG
}

func (s *PlainSpinner) Start() {
	if s.active {
		return
	}
	s.active = true
	if s.suffix != "" {
		fmt.Fprintf(s.Writer, "... %s\n", s.suffix)
	}
}

func (s *PlainSpinner) Stop() {
	if !s.active {
		return
	}
	s.active = false
	if s.finalMSG != "" {
		fmt.Fprint(s.Writer, s.finalMSG)
	}
}

// NewSpinner returns the spinner appropriate for the environment: plain line
// output under test, animated otherwise.
func NewSpinner(w io.Writer) Spinner {
	if os.Getenv("XLRV_TEST") == "true" {
		return &PlainSpinner{Writer: w}
	}
	return &TerminalSpinner{
		spinner: spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w)),
	}
}
