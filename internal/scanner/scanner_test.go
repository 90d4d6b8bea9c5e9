package scanner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestSelectFilesPrefixFilter(t *testing.T) {
	dir := t.TempDir()
	cutoff := time.Now().Add(-24 * time.Hour)
	recent := time.Now().Add(-time.Hour)

	want := touch(t, dir, "fwddmp.log.tmp.1", recent)
	touch(t, dir, "fwddmp.log", recent)        // missing the .tmp part
	touch(t, dir, "other.log.tmp", recent)     // wrong prefix
	touch(t, dir, "xfwddmp.log.tmp.2", recent) // prefix not at start

	files, err := SelectFiles(dir, cutoff)
	require.NoError(t, err)

	assert.Equal(t, []string{want}, files)
}

func TestSelectFilesModTimeBoundaryIsStrict(t *testing.T) {
	dir := t.TempDir()
	cutoff := time.Now().Add(-24 * time.Hour).Truncate(time.Second)

	touch(t, dir, "fwddmp.log.tmp.old", cutoff.Add(-time.Hour)) // older: excluded
	touch(t, dir, "fwddmp.log.tmp.edge", cutoff)                // exactly at cutoff: excluded
	want := touch(t, dir, "fwddmp.log.tmp.new", cutoff.Add(time.Second))

	files, err := SelectFiles(dir, cutoff)
	require.NoError(t, err)

	assert.Equal(t, []string{want}, files)
}

func TestSelectFilesZeroWindowSelectsNothing(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "fwddmp.log.tmp.1", time.Now().Add(-time.Minute))

	// daysBack = 0 means cutoff = now; nothing can be strictly newer.
	files, err := SelectFiles(dir, time.Now())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSelectFilesSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "fwddmp.log.tmp.dir"), 0755))

	files, err := SelectFiles(dir, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSelectFilesMissingDirectory(t *testing.T) {
	_, err := SelectFiles(filepath.Join(t.TempDir(), "missing"), time.Now())
	assert.Error(t, err)
}
