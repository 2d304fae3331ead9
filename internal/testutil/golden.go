package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "rewrite golden files under testdata/")

// Golden compares CLI output against testdata/<name>.golden.
// Run the tests with -update (or TODOSYNC_GOLDEN_UPDATE=1) to rewrite the file.
func Golden(t *testing.T, name string, got string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")

	if *update || os.Getenv("TODOSYNC_GOLDEN_UPDATE") != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(got), 0o644))
		return
	}

	want, err := os.ReadFile(path)
	require.NoError(t, err, "missing golden file %s, got:\n%s", path, got)
	assert.Equal(t, string(want), got, "output mismatch for %s", name)
}
