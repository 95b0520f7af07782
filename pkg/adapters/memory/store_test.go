package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/ntmtrace/pkg/adapters/memory"
	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/aretw0/ntmtrace/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunReportStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	report := &domain.Report{Input: "a", Lines: []string{"Machine: m"}}

	require.NoError(t, store.Save(ctx, "r1", report))
	report.Lines[0] = "mutated"

	loaded, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Machine: m", loaded.Lines[0])

	loaded.Lines[0] = "mutated again"
	again, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Machine: m", again.Lines[0])
}
