// Package console provides the leveled, colourised status output used
// by the jsteg command line, generalising the free-function printers
// of DeSteGo's cmd/destego into a Printer the caller constructs once
// and shares, instead of one package-level closure per level.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer writes leveled status lines to an output stream, each
// tagged with a coloured bracket marker in DeSteGo's style.
type Printer struct {
	out     io.Writer
	verbose bool

	info    func(a ...interface{}) string
	success func(a ...interface{}) string
	warning func(a ...interface{}) string
	failure func(a ...interface{}) string
	alert   func(a ...interface{}) string
}

// New returns a Printer writing to os.Stdout. Verbose output (Debugf)
// is suppressed unless verbose is true.
func New(verbose bool) *Printer {
	return &Printer{
		out:     os.Stdout,
		verbose: verbose,
		info:    color.New(color.FgBlue).SprintFunc(),
		success: color.New(color.FgGreen).SprintFunc(),
		warning: color.New(color.FgYellow).SprintFunc(),
		failure: color.New(color.FgRed).SprintFunc(),
		alert:   color.New(color.FgRed, color.Bold).SprintFunc(),
	}
}

func (p *Printer) line(tag func(a ...interface{}) string, marker, format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", tag(marker), fmt.Sprintf(format, args...))
}

// Infof reports routine progress.
func (p *Printer) Infof(format string, args ...interface{}) { p.line(p.info, "[*]", format, args...) }

// Successf reports a completed operation.
func (p *Printer) Successf(format string, args ...interface{}) {
	p.line(p.success, "[+]", format, args...)
}

// Warnf reports a recoverable problem.
func (p *Printer) Warnf(format string, args ...interface{}) {
	p.line(p.warning, "[!]", format, args...)
}

// Errorf reports an operation that failed outright.
func (p *Printer) Errorf(format string, args ...interface{}) {
	p.line(p.failure, "[-]", format, args...)
}

// Alertf reports a condition worth drawing the operator's eye to, such
// as a CapacityExceeded rejection.
func (p *Printer) Alertf(format string, args ...interface{}) {
	p.line(p.alert, "[!!!]", format, args...)
}

// Debugf reports detail only shown when the Printer was constructed
// with verbose output enabled.
func (p *Printer) Debugf(format string, args ...interface{}) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.out, "    %s\n", fmt.Sprintf(format, args...))
}
