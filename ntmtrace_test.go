package ntmtrace_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/ntmtrace"
	"github.com/aretw0/ntmtrace/internal/testutils"
	"github.com/aretw0/ntmtrace/pkg/adapters/memory"
	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aStar = testutils.AStar

func TestEngine_Simulate(t *testing.T) {
	store := memory.NewStore()
	clock := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	eng := ntmtrace.New(
		ntmtrace.WithStore(store),
		ntmtrace.WithClock(func() time.Time { return clock }),
		ntmtrace.WithIDGenerator(func() string { return "fixed-id" }),
	)
	ctx := context.Background()

	report, err := eng.Simulate(ctx, aStar(), "aa", domain.RunParameters{})
	require.NoError(t, err)

	assert.Equal(t, "fixed-id", report.ID)
	assert.Equal(t, clock, report.CreatedAt)
	assert.Equal(t, domain.OutcomeAccepted, report.Outcome)
	assert.Equal(t, 3, report.Steps)
	assert.Equal(t, []string{
		"Machine: a-star",
		"Input string: aa",
		"String accepted in 3 steps",
		"Path to acceptance:",
		"q0aa_",
		"aq0a_",
		"aaq0_",
		"aaqacc_",
	}, report.Lines)
	assert.Equal(t, []string{"q0", "q0", "q0", "qacc"}, report.States)

	stored, err := eng.Report(ctx, "fixed-id")
	require.NoError(t, err)
	assert.Equal(t, report.Lines, stored.Lines)
}

func TestEngine_SimulateDefaultsToUUID(t *testing.T) {
	eng := ntmtrace.New()

	r1, err := eng.Simulate(context.Background(), aStar(), "", domain.RunParameters{})
	require.NoError(t, err)
	r2, err := eng.Simulate(context.Background(), aStar(), "", domain.RunParameters{})
	require.NoError(t, err)

	assert.Len(t, r1.ID, 36)
	assert.NotEqual(t, r1.ID, r2.ID)
	assert.Equal(t, r1.Lines, r2.Lines)

	_, err = eng.Report(context.Background(), r1.ID)
	assert.ErrorIs(t, err, domain.ErrReportNotFound, "nothing is stored without a store")
}

func TestEngine_SimulateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ntmtrace.New().Simulate(ctx, aStar(), "a", domain.RunParameters{})
	assert.ErrorIs(t, err, context.Canceled)
}

type failingStore struct{ memory.Store }

func (*failingStore) Save(context.Context, string, *domain.Report) error {
	return errors.New("disk full")
}

func TestEngine_SimulateStoreError(t *testing.T) {
	eng := ntmtrace.New(ntmtrace.WithStore(&failingStore{}))

	_, err := eng.Simulate(context.Background(), aStar(), "a", domain.RunParameters{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestEngine_RunBatchPreservesOrder(t *testing.T) {
	var inputs []string
	for i := 0; i < 20; i++ {
		inputs = append(inputs, strings.Repeat("a", 20-i))
	}
	inputs = append(inputs, "b")

	var outcomes atomic.Int32
	eng := ntmtrace.New(
		ntmtrace.WithParallelism(4),
		ntmtrace.WithLifecycleHooks(domain.LifecycleHooks{
			OnOutcome: func(domain.OutcomeEvent) { outcomes.Add(1) },
		}),
	)

	reports, err := eng.RunBatch(context.Background(), aStar(), domain.RunParameters{InputStrings: inputs})
	require.NoError(t, err)
	require.Len(t, reports, len(inputs))

	for i, r := range reports {
		assert.Equal(t, inputs[i], r.Input)
	}
	assert.Equal(t, domain.OutcomeRejected, reports[len(reports)-1].Outcome)
	assert.Equal(t, int32(len(inputs)), outcomes.Load())

	sequential, err := ntmtrace.New().RunBatch(context.Background(), aStar(), domain.RunParameters{InputStrings: inputs})
	require.NoError(t, err)
	assert.Equal(t, ntmtrace.FormatBatch(sequential), ntmtrace.FormatBatch(reports))
}

func TestEngine_RunBatchLimits(t *testing.T) {
	reports, err := ntmtrace.New().RunBatch(context.Background(), aStar(), domain.RunParameters{
		InputStrings: []string{"aaaa", "aaaa"},
		MaxDepth:     domain.Bounded(2),
		Debug:        true,
	})
	require.NoError(t, err)

	for _, r := range reports {
		assert.Equal(t, domain.OutcomeDepthLimit, r.Outcome)
		assert.Equal(t, "Execution stopped after max depth of 2", r.Lines[len(r.Lines)-1])
		assert.Contains(t, r.Lines, "Debug: Exploring configuration: (q0,a)aaa_")
	}
}

func TestEngine_RunBatchEmpty(t *testing.T) {
	_, err := ntmtrace.New().RunBatch(context.Background(), aStar(), domain.RunParameters{})
	assert.ErrorIs(t, err, domain.ErrEmptyInputs)
}

func TestFormatBatch(t *testing.T) {
	reports := []*domain.Report{
		{Lines: []string{"Machine: m", "Input string: a"}},
		{Lines: []string{"Machine: m", "Input string: b"}},
	}

	assert.Equal(t,
		"Machine: m\nInput string: a\n\n\nMachine: m\nInput string: b\n\n",
		ntmtrace.FormatBatch(reports))
	assert.Equal(t, "", ntmtrace.FormatBatch(nil))
}

func ExampleFormatBatch() {
	eng := ntmtrace.New()
	reports, err := eng.RunBatch(context.Background(), aStar(), domain.RunParameters{
		InputStrings: []string{"a", "b"},
	})
	if err != nil {
		panic(err)
	}
	fmt.Print(ntmtrace.FormatBatch(reports))
	// Output:
	// Machine: a-star
	// Input string: a
	// String accepted in 2 steps
	// Path to acceptance:
	// q0a_
	// aq0_
	// aqacc_
	//
	//
	// Machine: a-star
	// Input string: b
	// String rejected in 0 steps
	// Longest path to rejection:
	// q0b_
}
