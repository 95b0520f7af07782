package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/ntmtrace/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
}

// OverlayFromReport marks the states of a report's sampled path, with the
// last one as current.
func OverlayFromReport(r *domain.Report) *GraphOverlay {
	if r == nil || len(r.States) == 0 {
		return nil
	}
	return &GraphOverlay{
		VisitedStates: r.States,
		CurrentState:  r.States[len(r.States)-1],
	}
}

// GenerateMermaid produces a Mermaid flowchart of the transition table.
// Shapes:
// - Start: ((Circle))
// - Accept: (((Double circle)))
// - Reject: [[Subroutine]]
// - Default: [Rectangle]
// Edges are labelled "read→write,move", one per transition.
func GenerateMermaid(m *domain.Machine, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, state := range states(m) {
		opener, closer := "[", "]"
		switch state {
		case m.StartState:
			opener, closer = "((", "))"
		case m.AcceptState:
			opener, closer = "(((", ")))"
		case m.RejectState:
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(state), opener, escapeLabel(state), closer)
	}

	for _, r := range m.Rules() {
		label := escapeLabel(fmt.Sprintf("%s→%s,%s", r.Symbol, r.Write, r.Move))
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", sanitizeMermaidID(r.State), label, sanitizeMermaidID(r.Next))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, state := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(state)
			if !seen[safeID] {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}
		if overlay.CurrentState != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentState))
		}
	}

	return sb.String()
}

// states lists declared states first, then any state only named by a
// transition, each once.
func states(m *domain.Machine) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range m.States {
		add(s)
	}
	for _, r := range m.Rules() {
		add(r.State)
		add(r.Next)
	}
	return out
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}

// sanitizeMermaidID prefixes ids so state names like "end" never collide
// with Mermaid keywords.
func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	sb.WriteString("s_")
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteString("_")
		}
	}
	return sb.String()
}
