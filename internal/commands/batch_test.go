package commands_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyFixture(t *testing.T, name, dir string) {
	t.Helper()
	data, err := os.ReadFile(fixture(t, name))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestBatch_ConvertsAndMoves(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, "venmo_statement.txt", dir)
	copyFixture(t, "becu_statement.txt", dir)

	out, err := runTool(t, "batch", dir)
	require.NoError(t, err, out)

	for _, name := range []string{"venmo_statement", "becu_statement"} {
		got, err := os.ReadFile(filepath.Join(dir, name+".csv"))
		require.NoError(t, err)
		want, err := os.ReadFile(fixture(t, name+".csv"))
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))

		_, err = os.Stat(filepath.Join(dir, "processed", name+".txt"))
		assert.NoError(t, err, "%s should be moved to processed", name)
	}
}

func TestBatch_VerboseLogsFileSize(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, "becu_statement.txt", dir)
	info, err := os.Stat(filepath.Join(dir, "becu_statement.txt"))
	require.NoError(t, err)

	out, err := runTool(t, "batch", "-v", "--keep", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "converting statement")
	assert.Contains(t, out, fmt.Sprintf("size=%d", info.Size()))
}

func TestBatch_OutDirAndKeep(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "csv")
	copyFixture(t, "becu_statement.txt", dir)

	out, err := runTool(t, "batch", dir, "--out", outDir, "--keep")
	require.NoError(t, err, out)

	_, err = os.Stat(filepath.Join(outDir, "becu_statement.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "becu_statement.txt"))
	assert.NoError(t, err, "--keep leaves the statement in place")
}

func TestBatch_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, "venmo_statement.txt", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unknown.txt"), []byte("nothing to see\n"), 0o644))

	out, err := runTool(t, "batch", dir)
	require.Error(t, err)
	assert.Contains(t, out, "FAILED unknown.txt")
	assert.Contains(t, out, "1 of 2 statements failed")

	// The good statement is still converted and moved; the bad one stays.
	_, err = os.Stat(filepath.Join(dir, "venmo_statement.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "unknown.txt"))
	assert.NoError(t, err)
}

func TestBatch_EmptyDir(t *testing.T) {
	out, err := runTool(t, "batch", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No statements found")
}
