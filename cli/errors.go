package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/gncassert/gnucash"
)

var (
	errMarkerStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

type positioned interface {
	GetPosition() gnucash.Position
	Error() string
}

func hasPosition(err error) bool {
	var p positioned
	return errors.As(err, &p) && p.GetPosition().Line > 0
}

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	source []byte
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	return &ErrorRenderer{source: source}
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	var p positioned
	if errors.As(err, &p) && r.source != nil && p.GetPosition().Line > 0 {
		return r.renderWithSourceContext(p.GetPosition(), err.Error())
	}

	return errorStyle.Render(err.Error())
}

// renderWithSourceContext prints message followed by the two lines before
// the failing one. GnuCash positions have no column, so the failing line
// is marked in the gutter.
func (r *ErrorRenderer) renderWithSourceContext(pos gnucash.Position, message string) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))
	buf.WriteString("\n\n")

	sourceLines := strings.Split(string(r.source), "\n")

	startLine := pos.Line - 3
	endLine := pos.Line - 1

	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(sourceLines) {
		endLine = len(sourceLines) - 1
	}

	width := len(fmt.Sprint(endLine + 1))
	for i := startLine; i <= endLine; i++ {
		marker := "  "
		line := errContextStyle.Render(sourceLines[i])
		if i == pos.Line-1 {
			marker = errMarkerStyle.Render(">") + " "
			line = sourceLines[i]
		}
		fmt.Fprintf(&buf, " %s%*d | %s\n", marker, width, i+1, line)
	}

	return buf.String()
}
