package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/stretchr/testify/require"
)

// AStarCSV describes a deterministic machine accepting a*: it walks right over
// a's and accepts on the first blank.
const AStarCSV = `a-star
q0,qacc,qrej
a
a,_
q0
qacc
qrej
q0,a,q0,a,R
q0,_,qacc,_,R
`

// AStar builds the machine described by AStarCSV.
func AStar() *domain.Machine {
	return domain.NewMachineBuilder(domain.Machine{
		Name:          "a-star",
		States:        []string{"q0", "qacc", "qrej"},
		InputAlphabet: []string{"a"},
		TapeAlphabet:  []string{"a", "_"},
		StartState:    "q0",
		AcceptState:   "qacc",
		RejectState:   "qrej",
	}).
		Add("q0", "a", domain.Transition{Next: "q0", Write: "a", Move: domain.MoveRight}).
		Add("q0", "_", domain.Transition{Next: "qacc", Write: "_", Move: domain.MoveRight}).
		Build()
}

// WriteFiles creates files (relative path -> content) under a fresh temp
// directory and returns its absolute path. It fails the test immediately on
// error.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}
