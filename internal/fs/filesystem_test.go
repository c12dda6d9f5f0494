package fs_test

import (
	"io/fs"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tsfs "timestamper/internal/fs"
	"timestamper/internal/stamp"
)

func newMemManager(t *testing.T) (*tsfs.FilesystemManager, afero.Fs) {
	t.Helper()
	afs := afero.NewMemMapFs()
	require.NoError(t, afs.MkdirAll("/photos/sub", 0o755))
	require.NoError(t, afero.WriteFile(afs, "/photos/a.jpg", []byte("abc"), 0o644))
	mtime := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, afs.Chtimes("/photos/a.jpg", mtime, mtime))
	return tsfs.NewFilesystemManager(afs), afs
}

func TestFilesystemManager_IsDir(t *testing.T) {
	m, _ := newMemManager(t)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"directory", "/photos", true},
		{"subdirectory", "/photos/sub", true},
		{"file", "/photos/a.jpg", false},
		{"missing", "/nope", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.IsDir(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilesystemManager_ListDir(t *testing.T) {
	m, _ := newMemManager(t)

	entries, err := m.ListDir("/photos")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := map[string]stamp.DirEntry{}
	for _, e := range entries {
		byName[e.Name] = e
	}

	file := byName["a.jpg"]
	assert.Equal(t, stamp.TypeFile, file.Type)
	require.NotNil(t, file.Stat)
	assert.Equal(t, int64(3), file.Stat.Size)
	assert.Equal(t, time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC).Unix(), file.Stat.Mtime)

	dir := byName["sub"]
	assert.Equal(t, stamp.TypeDirectory, dir.Type)
	assert.Nil(t, dir.Stat)
}

func TestFilesystemManager_SetModTime(t *testing.T) {
	m, _ := newMemManager(t)

	want := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC).Unix()
	require.NoError(t, m.SetModTime("/photos/a.jpg", want))

	st, err := m.Stat("/photos/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, want, st.Mtime)
}

func TestFilesystemManager_ReadWriteFile(t *testing.T) {
	m, _ := newMemManager(t)

	t.Run("missing file reports not exist", func(t *testing.T) {
		_, err := m.ReadFile("/photos/missing.txt")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("write then read", func(t *testing.T) {
		require.NoError(t, m.WriteFile("/photos/notes.txt", []byte("hello\n")))
		data, err := m.ReadFile("/photos/notes.txt")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(data))
	})

	t.Run("overwrite keeps content replaced", func(t *testing.T) {
		require.NoError(t, m.WriteFile("/photos/notes.txt", []byte("x")))
		data, err := m.ReadFile("/photos/notes.txt")
		require.NoError(t, err)
		assert.Equal(t, "x", string(data))
	})
}
