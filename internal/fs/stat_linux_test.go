//go:build linux

package fs_test

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tsfs "timestamper/internal/fs"
)

func TestOSFilesystemManager_SetModTimeKeepsAtime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "IMG_0001.jpg")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	atime := time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)
	mtime := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, atime, mtime))

	m := tsfs.NewOSFilesystemManager()
	newMtime := time.Date(2021, 12, 24, 18, 30, 0, 0, time.UTC).Unix()
	require.NoError(t, m.SetModTime(path, newMtime))

	st, err := m.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, newMtime, st.Mtime)
	assert.Equal(t, atime.Unix(), st.Atime)
}

func TestOSFilesystemManager_SetModTimeKeepsAtimeNanos(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "IMG_0002.jpg")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	atime := time.Unix(1683356889, 123456789)
	require.NoError(t, os.Chtimes(path, atime, time.Unix(1600000000, 0)))

	m := tsfs.NewOSFilesystemManager()
	require.NoError(t, m.SetModTime(path, 1_100_000_000))

	info, err := os.Stat(path)
	require.NoError(t, err)
	st, ok := info.Sys().(*syscall.Stat_t)
	require.True(t, ok)
	assert.Equal(t, int64(1683356889), int64(st.Atim.Sec))
	assert.Equal(t, int64(123456789), int64(st.Atim.Nsec))
	assert.Equal(t, int64(1_100_000_000), info.ModTime().Unix())
}
