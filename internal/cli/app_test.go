package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/ntmtrace/internal/adapters/file"
	"github.com/aretw0/ntmtrace/internal/testutils"
	"github.com/aretw0/ntmtrace/pkg/adapters/memory"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const evenLengthCSV = `even length
q0,q1,qacc,qrej
a
a,_
q0
qacc
qrej
q0,a,q1,a,R
q1,a,q0,a,R
q0,_,qacc,_,R
`

func setupProject(t *testing.T, params, config string) string {
	t.Helper()
	files := map[string]string{
		"input/NTM.csv":   evenLengthCSV,
		"input/input.txt": params,
	}
	if config != "" {
		files["ntmtrace.toml"] = config
	}
	return testutils.WriteFiles(t, files)
}

func TestNewApp_Defaults(t *testing.T) {
	app, err := NewApp(AppOptions{Dir: t.TempDir()})
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.Store)
	_, err = app.RequireStore()
	assert.Error(t, err)
}

func TestNewApp_StoreSelection(t *testing.T) {
	dir := t.TempDir()

	app, err := NewApp(AppOptions{Dir: dir, Store: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, app.Store)

	app, err = NewApp(AppOptions{Dir: dir, Store: "file"})
	require.NoError(t, err)
	require.IsType(t, &file.Store{}, app.Store)
	assert.Equal(t, filepath.Join(dir, ".ntmtrace", "reports"), app.Store.(*file.Store).BasePath)

	_, err = NewApp(AppOptions{Dir: dir, Store: "s3"})
	assert.Error(t, err)
}

func TestNewApp_InvalidConfig(t *testing.T) {
	dir := setupProject(t, "", "[batch]\nparallelism = 0\n")

	_, err := NewApp(AppOptions{Dir: dir})
	assert.ErrorContains(t, err, "parallelism")
}

func TestRunBatch(t *testing.T) {
	dir := setupProject(t, "input_strings=aa,a,\nmax_depth=0\n", "[store]\nbackend = \"memory\"\n")

	app, err := NewApp(AppOptions{Dir: dir})
	require.NoError(t, err)

	var out bytes.Buffer
	reports, err := RunBatch(context.Background(), app, RunOptions{Output: &out, Rich: true})
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, "String accepted in 3 steps", reports[0].Lines[2])
	assert.Equal(t, "String rejected in 1 steps", reports[1].Lines[2])
	assert.Equal(t, "String accepted in 1 steps", reports[2].Lines[2])

	written, err := os.ReadFile(filepath.Join(dir, "output", "output.txt"))
	require.NoError(t, err)
	assert.Equal(t, string(written)+"\n", out.String(), "a buffer is not a terminal, so no rich rendering")

	ids, err := app.Store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(app.Metrics.Runs.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.Runs.WithLabelValues("rejected")))
}

func TestRunBatch_Quiet(t *testing.T) {
	dir := setupProject(t, "input_strings=aa\n", "")

	app, err := NewApp(AppOptions{Dir: dir, Debug: true})
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = RunBatch(context.Background(), app, RunOptions{Output: &out, Quiet: true})
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.FileExists(t, filepath.Join(dir, "output", "output.txt"))
}

func TestLoadMachine(t *testing.T) {
	dir := setupProject(t, "", "")

	app, err := NewApp(AppOptions{Dir: dir})
	require.NoError(t, err)

	m, err := app.LoadMachine("")
	require.NoError(t, err)
	assert.Equal(t, "even length", m.Name)

	_, err = app.LoadMachine(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
