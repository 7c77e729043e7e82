// Package progress prints one status line per workflow step to stderr,
// keeping stdout free for the conversion receipt.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	stepStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Reporter writes step status lines to a single writer.
type Reporter struct {
	out   io.Writer
	plain bool
}

// New creates a Reporter writing to w. Styling is dropped when noColor is
// set or the writer's terminal does not support colors.
func New(w io.Writer, noColor bool) *Reporter {
	plain := noColor
	if f, ok := w.(*os.File); ok && !plain {
		out := termenv.NewOutput(f)
		plain = out.EnvNoColor() || out.ColorProfile() == termenv.Ascii
	}
	return &Reporter{out: w, plain: plain}
}

// Step reports a workflow step that just started.
func (r *Reporter) Step(format string, args ...any) {
	r.line(stepStyle, "...", fmt.Sprintf(format, args...))
}

// Done reports a successfully finished step or run.
func (r *Reporter) Done(format string, args ...any) {
	r.line(doneStyle, "ok:", fmt.Sprintf(format, args...))
}

// Fail reports a failed run.
func (r *Reporter) Fail(format string, args ...any) {
	r.line(failStyle, "error:", fmt.Sprintf(format, args...))
}

func (r *Reporter) line(style lipgloss.Style, prefix, msg string) {
	if r == nil || r.out == nil {
		return
	}
	if r.plain {
		fmt.Fprintf(r.out, "%s %s\n", prefix, msg)
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", style.Render(prefix), msg)
}
