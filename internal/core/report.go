package core

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Reporter prints user-facing progress lines.
// Only the leading marker is styled so the message text stays greppable.
type Reporter struct {
	w     io.Writer
	plain bool
}

// NewReporter creates a reporter writing to w. With plain set no styling is applied.
func NewReporter(w io.Writer, plain bool) *Reporter {
	if w == nil {
		w = io.Discard
	}

	return &Reporter{w: w, plain: plain}
}

func (r *Reporter) marker(style lipgloss.Style, m string) string {
	if r.plain {
		return m
	}

	return style.Render(m)
}

func (r *Reporter) line(style lipgloss.Style, m, format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, "%s %s\n", r.marker(style, m), fmt.Sprintf(format, args...))
}

// Info prints a neutral step
func (r *Reporter) Info(format string, args ...any) {
	r.line(infoStyle, "•", format, args...)
}

// Success prints a completed step
func (r *Reporter) Success(format string, args ...any) {
	r.line(okStyle, "✓", format, args...)
}

// Failure prints a failed step
func (r *Reporter) Failure(format string, args ...any) {
	r.line(errStyle, "✗", format, args...)
}

// Plan prints a dry-run step
func (r *Reporter) Plan(format string, args ...any) {
	r.line(dimStyle, "~", format, args...)
}

// Summary prints the final counts
func (r *Reporter) Summary(c Counts) {
	_, _ = fmt.Fprintf(r.w, "%s\n", r.marker(dimStyle,
		fmt.Sprintf("%d created, %d updated, %d skipped", c.Created, c.Updated, c.Skipped)))
}
