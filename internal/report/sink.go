package report

import (
	"fmt"
	"io"
	"os"

	"nvme-validator/pkg/types"

	"github.com/fatih/color"
)

// severityColors maps each severity to its console color
var severityColors = map[types.Severity]*color.Color{
	types.SeverityPass: color.New(color.FgGreen),
	types.SeverityFail: color.New(color.FgRed, color.Bold),
	types.SeverityWarn: color.New(color.FgYellow),
	types.SeverityInfo: color.New(color.FgCyan),
}

// ConsoleSink writes color-coded entry lines to a terminal
type ConsoleSink struct {
	out io.Writer
}

// NewConsoleSink creates a sink writing to stdout
func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{out: os.Stdout}
}

// Write prints one entry line, colored by severity
func (s *ConsoleSink) Write(entry types.Entry) {
	c, ok := severityColors[entry.Severity]
	if !ok {
		fmt.Fprintln(s.out, entry.String())
		return
	}
	c.Fprintln(s.out, entry.String())
}

// FileSink appends plain entry lines to the run log file
type FileSink struct {
	w io.Writer
}

// NewFileSink creates a sink writing to w
func NewFileSink(w io.Writer) *FileSink {
	return &FileSink{w: w}
}

// Write appends one entry line
func (s *FileSink) Write(entry types.Entry) {
	fmt.Fprintln(s.w, entry.String())
}
