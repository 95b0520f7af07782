package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}

// ReportMarkdown formats a report as Markdown: a heading, a summary table and
// the report lines in a code block.
func ReportMarkdown(r *domain.Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s ← `%s`\n\n", r.Machine, r.Input)
	sb.WriteString("| outcome | steps | path length |\n")
	sb.WriteString("|---|---|---|\n")
	fmt.Fprintf(&sb, "| %s | %d | %d |\n\n", r.Outcome, r.Steps, len(r.Path))
	sb.WriteString("```\n")
	for _, line := range r.Lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("```\n")
	return sb.String()
}

// RenderMarkdown renders the report through glamour.
func RenderMarkdown(r *domain.Report) (string, error) {
	render, err := NewRenderer()
	if err != nil {
		return "", err
	}
	return render(ReportMarkdown(r))
}
