package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner reports one step at a time. On a non-terminal it stays silent
// until the step finishes.
type Spinner struct {
	w       io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	s       *spinner.Spinner
	message string
}

// NewSpinner returns a Spinner writing to w with the given capabilities.
func NewSpinner(w io.Writer, caps TerminalCapabilities) *Spinner {
	return &Spinner{w: w, caps: caps, symbols: SelectSymbols(caps)}
}

// Start begins a step. A running step is stopped first.
func (p *Spinner) Start(message string) {
	p.stop()
	p.message = message
	if !p.caps.IsTTY {
		return
	}
	p.s = spinner.New(spinner.CharSets[p.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(p.w))
	p.s.Suffix = " " + message
	p.s.Start()
}

// Success ends the step with a checkmark line on terminals.
func (p *Spinner) Success(message string) {
	p.finish(p.symbols.Checkmark, message)
}

// Fail ends the step with a failure line. Failures are reported on
// non-terminals too.
func (p *Spinner) Fail(message string) {
	p.stop()
	fmt.Fprintf(p.w, "%s %s\n", p.symbols.Failure, message)
}

func (p *Spinner) finish(mark, message string) {
	p.stop()
	if p.caps.IsTTY {
		fmt.Fprintf(p.w, "%s %s\n", mark, message)
	}
}

func (p *Spinner) stop() {
	if p.s != nil {
		p.s.Stop()
		p.s = nil
	}
}
