// Package output provides formatted progress and status output for the CLI.
//
// The report itself goes to the out stream; banners, warnings and hints go to
// the err stream so that stdout can be piped.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Program prefixes error messages.
const Program = "suiterun"

const bannerWidth = 60

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	quiet bool

	styles styles
}

type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	dim     lipgloss.Style
	accent  lipgloss.Style
}

// New creates a Writer on stdout and stderr. Color is enabled when stderr is
// a terminal and NO_COLOR is unset.
func New() *Writer {
	_, noColor := os.LookupEnv("NO_COLOR")
	return NewWithWriters(os.Stdout, os.Stderr, !noColor && isTerminal(os.Stderr))
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	w := &Writer{out: out, err: err}
	w.SetColor(color)
	return w
}

// SetColor enables or disables ANSI styling.
func (w *Writer) SetColor(color bool) {
	w.color = color

	renderer := lipgloss.NewRenderer(w.err)
	if color {
		renderer.SetColorProfile(termenv.ANSI)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	w.styles = styles{
		title:   renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		success: renderer.NewStyle().Foreground(lipgloss.Color("2")),
		failure: renderer.NewStyle().Foreground(lipgloss.Color("1")),
		warning: renderer.NewStyle().Foreground(lipgloss.Color("3")),
		dim:     renderer.NewStyle().Faint(true),
		accent:  renderer.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Out returns the report stream.
func (w *Writer) Out() io.Writer {
	return w.out
}

// Err returns the progress stream.
func (w *Writer) Err() io.Writer {
	return w.err
}

// Print writes to stdout.
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints a progress message to stderr (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Errorln(format, args...)
}

// Warning prints a warning to stderr.
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Errorln("%s %s", w.styles.warning.Render("warning:"), msg)
}

// ErrorPrefix prints an error message with the program prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	w.Errorln("%s %s", w.styles.failure.Render(Program+":"), msg)
}

// Hint prints a hint for the user to stderr.
func (w *Writer) Hint(format string, args ...interface{}) {
	w.Errorln("%s", w.styles.dim.Render(fmt.Sprintf(format, args...)))
}

// Banner prints a framed block announcing a step:
//
//	============================================================
//	Running: Safety Tests
//	Command: pio test -e native --filter test_safety
//	============================================================
func (w *Writer) Banner(label, command string) {
	if w.quiet {
		return
	}
	rule := strings.Repeat("=", bannerWidth)
	w.Errorln("")
	w.Errorln("%s", w.styles.dim.Render(rule))
	w.Errorln("%s %s", w.styles.title.Render("Running:"), label)
	w.Errorln("%s %s", w.styles.dim.Render("Command:"), command)
	w.Errorln("%s", w.styles.dim.Render(rule))
}

// StepResult prints the outcome of a step started with Banner.
func (w *Writer) StepResult(success bool, format string, args ...interface{}) {
	if w.quiet && success {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if success {
		w.Errorln("%s %s", w.styles.success.Render("✓"), msg)
	} else {
		w.Errorln("%s %s", w.styles.failure.Render("✗"), msg)
	}
}

// Detail prints an indented, labelled block such as captured stderr.
func (w *Writer) Detail(label, text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	w.Errorln("%s", w.styles.dim.Render(label+":"))
	for _, line := range strings.Split(text, "\n") {
		w.Errorln("  %s", line)
	}
}

// Section prints a section header to stdout.
func (w *Writer) Section(title string) {
	w.Println("")
	w.Println("=== %s ===", title)
}

// List prints a list of items to stdout.
func (w *Writer) List(items []string) {
	for _, item := range items {
		w.Println("  - %s", item)
	}
}

// SummaryAction prints a status line with name, duration and optional error
// to stdout.
func (w *Writer) SummaryAction(name string, success bool, duration string, errMsg string) {
	if success {
		w.Print("  + %-12s %s", name, duration)
	} else {
		w.Print("  x %-12s %s", name, duration)
		if errMsg != "" {
			w.Print("  (%s)", errMsg)
		}
	}
	w.Print("\n")
}

// ValidationSuccess prints a success line to stderr.
func (w *Writer) ValidationSuccess(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Errorln("%s %s", w.styles.success.Render("✓"), fmt.Sprintf(format, args...))
}

// FinalSuccess prints a final success message to stderr.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	w.Errorln("")
	w.Errorln("%s", w.styles.success.Render(fmt.Sprintf(format, args...)))
}

// FinalFailure prints a final failure message to stderr.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.Errorln("")
	w.Errorln("%s", w.styles.failure.Render(fmt.Sprintf(format, args...)))
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
