// Package output provides formatted output utilities for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Writer handles CLI output formatting.
type Writer struct {
	out     io.Writer
	err     io.Writer
	color   bool
	quiet   bool
	verbose bool
	styles  styles
}

// styles holds the semantic text styles of a Writer.
type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
	warn    lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		section: r.NewStyle().Bold(true),
		pass:    r.NewStyle().Foreground(lipgloss.Color("2")),
		fail:    r.NewStyle().Foreground(lipgloss.Color("1")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		muted:   r.NewStyle().Faint(true),
	}
}

// New creates a new Writer with default settings.
func New() *Writer {
	return NewWithWriters(os.Stdout, os.Stderr, IsTerminal(os.Stdout))
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	w := &Writer{
		out: out,
		err: err,
	}
	w.SetColor(color)
	return w
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// SetColor enables or disables styled output.
func (w *Writer) SetColor(color bool) {
	w.color = color
	r := lipgloss.NewRenderer(w.out)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	w.styles = newStyles(r)
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// SetVerbose enables or disables debug output.
func (w *Writer) SetVerbose(verbose bool) {
	w.verbose = verbose
}

// Quiet reports whether quiet mode is enabled.
func (w *Writer) Quiet() bool {
	return w.quiet
}

// Color reports whether styled output is enabled.
func (w *Writer) Color() bool {
	return w.color
}

// Out returns the writer used for regular output.
func (w *Writer) Out() io.Writer {
	return w.out
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Debug prints a diagnostic message to stderr (verbose mode only).
func (w *Writer) Debug(format string, args ...interface{}) {
	if !w.verbose {
		return
	}
	w.Errorln("%s", w.styles.muted.Render("debug: "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning message.
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Errorln("%s", w.styles.warn.Render("warning: "+fmt.Sprintf(format, args...)))
}

// Section prints a section header.
func (w *Writer) Section(title string) {
	if w.quiet {
		return
	}
	w.Println("")
	w.Println("%s", w.styles.section.Render("=== "+title+" ==="))
}

// Table prints a simple table. Column widths account for wide runes.
func (w *Writer) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	pad := func(cells []string) string {
		parts := make([]string, 0, len(cells))
		for i, cell := range cells {
			if i < len(widths) {
				parts = append(parts, runewidth.FillRight(cell, widths[i]))
			}
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	w.Println("%s", pad(headers))
	seps := make([]string, len(widths))
	for i, width := range widths {
		seps[i] = strings.Repeat("-", width)
	}
	w.Println("%s", strings.Join(seps, "  "))
	for _, row := range rows {
		w.Println("%s", pad(row))
	}
}

// ErrorPrefix prints an error message with nestunit prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	w.Errorln("%s %s", w.styles.fail.Render("nestunit:"), fmt.Sprintf(format, args...))
}

// SummaryHeader prints a summary section header.
func (w *Writer) SummaryHeader(title string) {
	w.Println("")
	w.Println("%s", w.styles.title.Render("=== "+title+" ==="))
	w.Println("")
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	w.Println("  %s %s", w.styles.muted.Render(label+":"), value)
}

// SummaryPassed prints a passed/success items summary.
func (w *Writer) SummaryPassed(label, value string) {
	w.Println("  %s %s", w.styles.muted.Render(label+":"), w.styles.pass.Render(value))
}

// SummaryFailed prints a failed items summary.
func (w *Writer) SummaryFailed(label, value string) {
	w.Println("  %s %s", w.styles.muted.Render(label+":"), w.styles.fail.Render(value))
}

// FinalSuccess prints a final success message.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	w.Println("")
	w.Println("%s", w.styles.pass.Render(fmt.Sprintf(format, args...)))
}

// FinalFailure prints a final failure message.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.Println("")
	w.Println("%s", w.styles.fail.Render(fmt.Sprintf(format, args...)))
}

// ValidationSuccess prints a validation success message.
func (w *Writer) ValidationSuccess(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s %s", w.styles.pass.Render("✓"), msg)
	} else {
		w.Println("%s", msg)
	}
}

// Hint prints a hint message for the user.
func (w *Writer) Hint(format string, args ...interface{}) {
	w.Println("%s", w.styles.muted.Render(fmt.Sprintf(format, args...)))
}

// Passed renders s in the pass style.
func (w *Writer) Passed(s string) string {
	return w.styles.pass.Render(s)
}

// Failed renders s in the failure style.
func (w *Writer) Failed(s string) string {
	return w.styles.fail.Render(s)
}

// Muted renders s in the de-emphasized style.
func (w *Writer) Muted(s string) string {
	return w.styles.muted.Render(s)
}

// Bold renders s in the section style.
func (w *Writer) Bold(s string) string {
	return w.styles.section.Render(s)
}
