package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportStoreContract runs a suite of tests to verify that a ReportStore
// implementation adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	id := "contract-test-report-" + time.Now().Format("20060102150405")

	sample := func(input string) *domain.Report {
		return &domain.Report{
			ID:      id,
			Machine: "contract",
			Input:   input,
			Outcome: domain.OutcomeAccepted,
			Steps:   1,
			Path:    []string{"q0a_", "qaa_"},
			Lines: []string{
				"Machine: contract",
				"Input string: " + input,
				"String accepted in 1 steps",
				"Path to acceptance:",
				"q0a_",
				"qaa_",
			},
			CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		report := sample("a")

		err := store.Save(ctx, id, report)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.Lines, loaded.Lines)
		assert.Equal(t, report.Outcome, loaded.Outcome)
		assert.Equal(t, report.Path, loaded.Path)
		assert.True(t, report.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, sample("a")))
		require.NoError(t, store.Save(ctx, id, sample("b")))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "b", loaded.Input)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, sample("a")))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")

		assert.NoError(t, store.Delete(ctx, id), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		_ = store.Save(ctx, id1, sample("1"))
		_ = store.Save(ctx, id2, sample("2"))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
