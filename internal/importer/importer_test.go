package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_FindsStatements(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"venmo-2022-01.pdf", "becu-2021-12.TXT", "notes.md", "old.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o644))
	}

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "becu-2021-12.TXT", files[0].Name)
	assert.Equal(t, "venmo-2022-01.pdf", files[1].Name)
	assert.Equal(t, filepath.Join(dir, "venmo-2022-01.pdf"), files[1].Path)
	assert.Equal(t, int64(4), files[1].Size)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	processed := filepath.Join(dir, "processed")
	require.NoError(t, os.MkdirAll(processed, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.pdf"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processed, "old.pdf"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.pdf", files[0].Name)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "venmo-2022-01.csv", FileInfo{Name: "venmo-2022-01.pdf"}.OutputName())
	assert.Equal(t, "becu.csv", FileInfo{Name: "becu.TXT"}.OutputName())
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "venmo.pdf"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(dir, "venmo.pdf"))

	_, err := os.Stat(filepath.Join(dir, "venmo.pdf"))
	assert.True(t, os.IsNotExist(err))

	info, err := os.Stat(filepath.Join(dir, "processed", "venmo.pdf"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestMarkProcessed_Missing(t *testing.T) {
	err := MarkProcessed(t.TempDir(), "ghost.pdf")
	assert.ErrorContains(t, err, "moving ghost.pdf to processed")
}
