package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Machine: "even zeros",
		Input:   "00",
		Outcome: domain.OutcomeAccepted,
		Steps:   3,
		Path:    []string{"q000_", "0q10_"},
		Lines:   []string{"Machine: even zeros", "Input string: 00", "String accepted in 3 steps"},
	}
}

func TestReportMarkdown(t *testing.T) {
	md := ReportMarkdown(sampleReport())

	assert.Contains(t, md, "## even zeros ← `00`")
	assert.Contains(t, md, "| accepted | 3 | 2 |")
	assert.Contains(t, md, "```\nMachine: even zeros\nInput string: 00\nString accepted in 3 steps\n```")
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown(sampleReport())
	require.NoError(t, err)
	assert.Contains(t, out, "String accepted in 3 steps")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_| |_|")
}
