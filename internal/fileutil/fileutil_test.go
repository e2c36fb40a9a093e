package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/mediaseal/internal/fileutil"
)

func TestCommit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.bin")
	out := filepath.Join(dir, "out.bin")

	require.NoError(t, os.WriteFile(src, []byte("source"), 0o600))

	modTime := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, modTime, modTime))

	tc, err := fileutil.NewTempContext(src, out)
	require.NoError(t, err)

	var opErr error
	defer tc.CleanupOnError(&opErr)

	_, err = tc.TmpFile.Write([]byte("transformed"))
	require.NoError(t, err)

	size, err := tc.Commit(out, 0o600, true)
	require.NoError(t, err)
	assert.EqualValues(t, len("transformed"), size)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("transformed"), data)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, modTime, info.ModTime().UTC())
}

func TestCleanupOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.bin")

	require.NoError(t, os.WriteFile(src, []byte("source"), 0o600))

	tc, err := fileutil.NewTempContext(src, filepath.Join(dir, "out.bin"))
	require.NoError(t, err)

	opErr := errors.New("write failed")
	tc.CleanupOnError(&opErr)

	_, err = os.Stat(tc.TmpName)
	assert.True(t, os.IsNotExist(err), "temp file should be removed on error")
}

func TestNewTempContextMissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := fileutil.NewTempContext(filepath.Join(dir, "missing"), filepath.Join(dir, "out"))
	assert.Error(t, err)
}
