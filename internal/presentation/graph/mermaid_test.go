package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/ntmtrace/internal/presentation/graph"
	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func machine() *domain.Machine {
	return domain.NewMachineBuilder(domain.Machine{
		Name:         "m",
		States:       []string{"q0", "q-1", "qa", "qr"},
		TapeAlphabet: []string{"0", "_"},
		StartState:   "q0",
		AcceptState:  "qa",
		RejectState:  "qr",
	}).
		Add("q0", "0", domain.Transition{Next: "q-1", Write: "_", Move: domain.MoveRight}).
		Add("q0", "0", domain.Transition{Next: "qr", Write: "0", Move: domain.MoveLeft}).
		Add("q-1", "_", domain.Transition{Next: "qa", Write: "_", Move: domain.MoveRight}).
		Add("q-1", "0", domain.Transition{Next: "end", Write: "0", Move: domain.MoveRight}).
		Build()
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(machine(), nil)

	assert.True(t, strings.HasPrefix(out, "graph LR\n"))
	for _, want := range []string{
		`s_q0(("q0"))`,
		`s_qa((("qa")))`,
		`s_qr[["qr"]]`,
		`s_q_1["q-1"]`,
		`s_end["end"]`,
		`s_q0 -- "0→_,R" --> s_q_1`,
		`s_q0 -- "0→0,L" --> s_qr`,
		`s_q_1 -- "_→_,R" --> s_qa`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	report := &domain.Report{States: []string{"q0", "q-1", "q-1", "qa"}}

	out := graph.GenerateMermaid(machine(), graph.OverlayFromReport(report))

	assert.Contains(t, out, "classDef visited")
	assert.Equal(t, 1, strings.Count(out, "class s_q_1 visited;"))
	assert.Contains(t, out, "class s_q0 visited;")
	assert.Contains(t, out, "class s_qa current;")
}

func TestOverlayFromReport_Empty(t *testing.T) {
	assert.Nil(t, graph.OverlayFromReport(nil))
	assert.Nil(t, graph.OverlayFromReport(&domain.Report{}))
}
