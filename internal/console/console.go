// Package console renders the quiz shell output.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/starquake/quizcli/internal/quiz"
)

// Color is a terminal color understood by the console.
type Color = lipgloss.Color

// Colors used by the shell.
const (
	Magenta Color = "5"
	Red     Color = "1"
	Green   Color = "2"
	Yellow  Color = "3"
)

// Console writes lines to an output writer. Styles are rendered for the color profile of that writer, so output
// that is not a terminal receives plain text.
type Console struct {
	w        io.Writer
	renderer *lipgloss.Renderer
}

// New returns a Console writing to w.
func New(w io.Writer) *Console {
	return &Console{w: w, renderer: lipgloss.NewRenderer(w)}
}

// Log writes a line.
func (c *Console) Log(text string) {
	_, _ = fmt.Fprintln(c.w, text)
}

// Logf writes a formatted line.
func (c *Console) Logf(format string, args ...any) {
	c.Log(fmt.Sprintf(format, args...))
}

// Colorize returns text rendered in the given color.
func (c *Console) Colorize(text string, color Color) string {
	return c.renderer.NewStyle().Foreground(color).Render(text)
}

// Big writes text as a bold, bordered banner.
func (c *Console) Big(text string, color Color) {
	style := c.renderer.NewStyle().
		Bold(true).
		Foreground(color).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 2)

	c.Log(style.Render(text))
}

// Error writes err as "Error: <msg>". A validation error is written as one line per problem.
func (c *Console) Error(err error) {
	if err == nil {
		return
	}

	if verr, ok := quiz.AsValidationError(err); ok && len(verr.Problems) > 0 {
		for _, msg := range verr.Messages() {
			c.Log(c.Colorize("Error: "+msg, Red))
		}

		return
	}

	c.Log(c.Colorize("Error: "+err.Error(), Red))
}
