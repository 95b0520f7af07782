package runtime_test

import (
	"testing"

	"github.com/aretw0/ntmtrace/internal/runtime"
	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func machine(name string, rules ...[5]string) *domain.Machine {
	b := domain.NewMachineBuilder(domain.Machine{
		Name:        name,
		States:      []string{"q0", "q1", "q2", "qa", "qr"},
		StartState:  "q0",
		AcceptState: "qa",
		RejectState: "qr",
	})
	for _, r := range rules {
		b.Add(r[0], r[1], domain.Transition{Next: r[2], Write: r[3], Move: domain.Direction(r[4])})
	}
	return b.Build()
}

func simulate(m *domain.Machine, input string, depth, steps int, debug bool) *domain.Report {
	return runtime.NewEngine().Simulate(m, input, runtime.Bounds{
		MaxDepth: domain.LimitOf(depth),
		MaxSteps: domain.LimitOf(steps),
		Debug:    debug,
	})
}

func TestEngine_AcceptViaTransition(t *testing.T) {
	m := domain.NewMachineBuilder(domain.Machine{
		Name:        "one-step",
		StartState:  "q0",
		AcceptState: "q_acc",
		RejectState: "q_rej",
	}).Add("q0", "0", domain.Transition{Next: "q_acc", Write: "0", Move: domain.MoveRight}).Build()

	report := simulate(m, "0", 0, 0, false)

	assert.Equal(t, domain.OutcomeAccepted, report.Outcome)
	assert.Equal(t, 1, report.Steps)
	assert.Equal(t, []string{
		"Machine: one-step",
		"Input string: 0",
		"String accepted in 1 steps",
		"Path to acceptance:",
		"q00_",
		"q_acc0_",
	}, report.Lines)
}

func TestEngine_VirtualAcceptKeepsPreWriteTape(t *testing.T) {
	// The write of "x" and the move right are not applied to the final line.
	m := machine("virtual",
		[5]string{"q0", "a", "q1", "a", "R"},
		[5]string{"q1", "b", "qa", "x", "R"},
	)

	report := simulate(m, "ab", 10, 0, false)

	require.Equal(t, domain.OutcomeAccepted, report.Outcome)
	assert.Equal(t, 2, report.Steps)
	assert.Equal(t, []string{"q0ab_", "aq1b_", "aqab_"}, report.Path)
}

func TestEngine_RejectWithoutTransition(t *testing.T) {
	m := machine("empty")

	report := simulate(m, "a", 5, 0, false)

	assert.Equal(t, domain.OutcomeRejected, report.Outcome)
	assert.Equal(t, []string{
		"Machine: empty",
		"Input string: a",
		"String rejected in 0 steps",
		"Longest path to rejection:",
		"q0a_",
	}, report.Lines)
}

func TestEngine_RejectDepthIsLastExpandedLevel(t *testing.T) {
	// q0 -a/R-> q1 -b/R-> q2, which has no transition on "_".
	m := machine("walk",
		[5]string{"q0", "a", "q1", "a", "R"},
		[5]string{"q1", "b", "q2", "b", "R"},
	)

	report := simulate(m, "ab", 0, 0, false)

	assert.Equal(t, domain.OutcomeRejected, report.Outcome)
	assert.Equal(t, 2, report.Steps)
	assert.Contains(t, report.Lines, "String rejected in 2 steps")
	assert.Equal(t, []string{"q0ab_", "aq1b_", "abq2_"}, report.Path)
}

func TestEngine_AcceptancePrecedence(t *testing.T) {
	// Level 1 holds [q2 config, q1 config]; both reach qa. The first one in
	// frontier order wins and the second is never expanded.
	m := machine("precedence",
		[5]string{"q0", "a", "q2", "a", "R"},
		[5]string{"q0", "a", "q1", "b", "R"},
		[5]string{"q2", "_", "qa", "_", "L"},
		[5]string{"q1", "_", "qa", "y", "L"},
	)

	report := simulate(m, "a", 0, 0, true)

	require.Equal(t, domain.OutcomeAccepted, report.Outcome)
	assert.Equal(t, 2, report.Steps)
	assert.Equal(t, []string{"q0a_", "aq2_", "aqa_"}, report.Path)
	assert.NotContains(t, report.Lines, "Debug: Exploring configuration: b(q1,_)")
}

func TestEngine_PreExpansionAcceptance(t *testing.T) {
	// Start state is the accept state: accepted at depth 0 with no expansion.
	m := domain.NewMachineBuilder(domain.Machine{
		Name:        "trivial",
		StartState:  "qa",
		AcceptState: "qa",
	}).Add("qa", "a", domain.Transition{Next: "q1", Write: "a", Move: domain.MoveRight}).Build()

	report := simulate(m, "a", 0, 0, true)

	assert.Equal(t, domain.OutcomeAccepted, report.Outcome)
	assert.Equal(t, []string{
		"Machine: trivial",
		"Input string: a",
		"Debug: Exploring configuration: (qa,a)_",
		"String accepted in 0 steps",
		"Path to acceptance:",
		"qaa_",
	}, report.Lines)
}

func TestEngine_StepLimitPrecedence(t *testing.T) {
	// max_steps=1: the first branch fills the next frontier, so the second
	// (accepting) branch is never tried.
	m := machine("steps",
		[5]string{"q0", "a", "q1", "a", "R"},
		[5]string{"q0", "a", "qa", "a", "R"},
	)

	report := simulate(m, "a", 0, 1, false)

	assert.Equal(t, domain.OutcomeStepLimit, report.Outcome)
	assert.Equal(t, "Execution stopped after step limit of 1", report.Lines[len(report.Lines)-1])
	assert.NotContains(t, report.Lines, "Path to acceptance:")
}

func TestEngine_DepthLimit(t *testing.T) {
	// Bounces between cells 0 and 1 forever.
	m := machine("loop",
		[5]string{"q0", "a", "q1", "a", "R"},
		[5]string{"q1", "_", "q0", "_", "L"},
	)

	report := simulate(m, "a", 3, 0, false)

	assert.Equal(t, domain.OutcomeDepthLimit, report.Outcome)
	assert.Equal(t, []string{
		"Machine: loop",
		"Input string: a",
		"Execution stopped after max depth of 3",
	}, report.Lines)
}

func TestEngine_NegativeDepthRunsNoLevel(t *testing.T) {
	m := machine("loop", [5]string{"q0", "a", "qa", "a", "R"})

	report := runtime.NewEngine().Simulate(m, "a", runtime.Bounds{MaxDepth: domain.Bounded(-1)})

	assert.Equal(t, domain.OutcomeDepthLimit, report.Outcome)
	assert.Equal(t, "Execution stopped after max depth of -1", report.Lines[2])
}

func TestEngine_OutOfBoundsPruning(t *testing.T) {
	// Moving left from cell 0 must not produce a next-frontier entry.
	m := machine("edge",
		[5]string{"q0", "a", "q1", "a", "L"},
		[5]string{"q0", "a", "q2", "a", "R"},
	)

	var sizes []int
	var pruned []domain.PruneEvent
	eng := runtime.NewEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnLevel: func(e domain.LevelEvent) { sizes = append(sizes, e.FrontierSize) },
		OnPrune: func(e domain.PruneEvent) { pruned = append(pruned, e) },
	}))

	report := eng.Simulate(m, "a", runtime.Bounds{MaxDepth: domain.Bounded(5), Debug: true})

	assert.Equal(t, []int{1, 1}, sizes)
	assert.Equal(t, []domain.PruneEvent{{Depth: 0, Position: -1}}, pruned)
	assert.Contains(t, report.Lines, "Debug: Head out of bounds at position -1")
	assert.Equal(t, domain.OutcomeRejected, report.Outcome)
	assert.Equal(t, 1, report.Steps)
}

func TestEngine_RightEdgePruning(t *testing.T) {
	// The tape never grows: moving right off the trailing blank is pruned.
	m := machine("right", [5]string{"q0", "_", "q1", "_", "R"})

	report := simulate(m, "", 0, 0, true)

	assert.Equal(t, []string{
		"Machine: right",
		"Input string: ",
		"Debug: Exploring configuration: (q0,_)",
		"Debug: Transition: q0 + _ -> q1 (_, R)",
		"Debug: Head out of bounds at position 1",
		"String rejected in 0 steps",
		"Longest path to rejection:",
		"q0_",
	}, report.Lines)
}

func TestEngine_UnknownDirectionMovesLeft(t *testing.T) {
	m := machine("typo",
		[5]string{"q0", "a", "q1", "a", "R"},
		[5]string{"q1", "b", "q2", "b", "Right"},
	)

	report := simulate(m, "ab", 0, 0, false)

	assert.Equal(t, []string{"q0ab_", "aq1b_", "q2ab_"}, report.Path)
}

func TestEngine_DebugLines(t *testing.T) {
	m := machine("debug", [5]string{"q0", "a", "q1", "b", "R"})

	report := simulate(m, "a", 0, 0, true)

	assert.Equal(t, []string{
		"Machine: debug",
		"Input string: a",
		"Debug: Exploring configuration: (q0,a)_",
		"Debug: Transition: q0 + a -> q1 (b, R)",
		"Debug: Exploring configuration: b(q1,_)",
		"Debug: No transition found for ('q1', '_'), implicitly rejecting",
		"String rejected in 1 steps",
		"Longest path to rejection:",
		"q0a_",
		"bq1_",
	}, report.Lines)
}

func TestEngine_DebugDoesNotChangeOutcome(t *testing.T) {
	m := machine("branching",
		[5]string{"q0", "a", "q1", "x", "R"},
		[5]string{"q0", "a", "q2", "y", "R"},
		[5]string{"q2", "b", "qa", "b", "R"},
	)

	plain := simulate(m, "ab", 0, 0, false)
	traced := simulate(m, "ab", 0, 0, true)

	assert.Equal(t, plain.Outcome, traced.Outcome)
	assert.Equal(t, plain.Steps, traced.Steps)
	assert.Equal(t, plain.Path, traced.Path)
}

func TestEngine_SiblingsDoNotShareTapes(t *testing.T) {
	m := machine("fork",
		[5]string{"q0", "a", "q1", "x", "R"},
		[5]string{"q0", "a", "q1", "y", "R"},
	)

	report := simulate(m, "a", 0, 0, true)

	assert.Contains(t, report.Lines, "Debug: Exploring configuration: x(q1,_)")
	assert.Contains(t, report.Lines, "Debug: Exploring configuration: y(q1,_)")
}

func TestEngine_Idempotent(t *testing.T) {
	m := machine("branching",
		[5]string{"q0", "a", "q1", "x", "R"},
		[5]string{"q0", "a", "q2", "y", "R"},
		[5]string{"q1", "b", "q0", "b", "L"},
		[5]string{"q2", "b", "qa", "b", "R"},
	)
	eng := runtime.NewEngine()
	b := runtime.Bounds{MaxDepth: domain.Bounded(10), Debug: true}

	first := eng.Simulate(m, "ab", b)
	second := eng.Simulate(m, "ab", b)

	assert.Equal(t, first, second)
}

func TestEngine_OutcomeHook(t *testing.T) {
	m := machine("walk", [5]string{"q0", "a", "q1", "a", "R"})

	var got []domain.OutcomeEvent
	eng := runtime.NewEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnOutcome: func(e domain.OutcomeEvent) { got = append(got, e) },
	}))
	eng.Simulate(m, "a", runtime.Bounds{})

	require.Len(t, got, 1)
	assert.Equal(t, domain.OutcomeEvent{
		Outcome:      domain.OutcomeRejected,
		Steps:        1,
		Levels:       2,
		Materialized: 1,
	}, got[0])
}

func TestEngine_PathDropsRepeatedRendering(t *testing.T) {
	// Depth 2 samples q0a_ again; the repeat is left out of the path.
	m := machine("revisit",
		[5]string{"q0", "a", "q1", "a", "R"},
		[5]string{"q1", "_", "q0", "_", "L"},
		[5]string{"q1", "_", "q2", "_", "L"},
		[5]string{"q2", "a", "qa", "a", "R"},
	)

	report := simulate(m, "a", 0, 0, false)

	assert.Equal(t, domain.OutcomeAccepted, report.Outcome)
	assert.Equal(t, 3, report.Steps)
	assert.Equal(t, []string{"q0a_", "aq1_", "q2a_", "qaa_"}, report.Path)
	assert.Equal(t, []string{"q0", "q1", "q2", "qa"}, report.States)
	assert.Equal(t, []string{
		"Machine: revisit",
		"Input string: a",
		"String accepted in 3 steps",
		"Path to acceptance:",
		"q0a_",
		"aq1_",
		"q2a_",
		"qaa_",
	}, report.Lines)
}

func TestEngine_DepthLimitSamplesOnePerLevel(t *testing.T) {
	// Every level doubles the frontier; only the first of each level is sampled.
	m := machine("fan",
		[5]string{"q0", "a", "q0", "a", "R"},
		[5]string{"q0", "a", "q1", "a", "R"},
		[5]string{"q0", "_", "q0", "_", "L"},
		[5]string{"q0", "_", "q1", "_", "L"},
		[5]string{"q1", "a", "q0", "a", "R"},
		[5]string{"q1", "a", "q1", "a", "R"},
		[5]string{"q1", "_", "q0", "_", "L"},
		[5]string{"q1", "_", "q1", "_", "L"},
	)

	var frontiers []int
	var outcome domain.OutcomeEvent
	eng := runtime.NewEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnLevel:   func(e domain.LevelEvent) { frontiers = append(frontiers, e.FrontierSize) },
		OnOutcome: func(e domain.OutcomeEvent) { outcome = e },
	}))
	report := eng.Simulate(m, "a", runtime.Bounds{MaxDepth: domain.Bounded(5)})

	assert.Equal(t, domain.OutcomeDepthLimit, report.Outcome)
	assert.Equal(t, 5, report.Steps)
	assert.Equal(t, []int{1, 2, 4, 8, 16}, frontiers)
	assert.Equal(t, 6, outcome.Levels)
	assert.Equal(t, 2+4+8+16+32, outcome.Materialized)
}
