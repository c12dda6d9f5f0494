package prefs_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tsfs "timestamper/internal/fs"
	"timestamper/internal/prefs"
)

func TestFinder_Lookup(t *testing.T) {
	afs := afero.NewMemMapFs()
	require.NoError(t, afs.MkdirAll("/media/card/DCIM/100", 0o755))
	require.NoError(t, afs.MkdirAll("/media/ntfs/photos", 0o755))
	require.NoError(t, afs.MkdirAll("/home/user", 0o755))
	require.NoError(t, afero.WriteFile(afs, "/media/card/"+prefs.FileName, []byte("# sd card\ntimestampmode=local\n"), 0o644))
	require.NoError(t, afero.WriteFile(afs, "/media/ntfs/"+prefs.FileName, []byte("timestampmode=UTC\nother=1\n"), 0o644))
	require.NoError(t, afero.WriteFile(afs, "/media/ntfs/photos/"+prefs.FileName, []byte("\n# nothing here\n"), 0o644))

	finder := prefs.NewFinder(tsfs.NewFilesystemManager(afs))

	tests := []struct {
		name      string
		dir       string
		wantValue string
		wantFound bool
	}{
		{"file found several levels up", "/media/card/DCIM/100", "local", true},
		{"file in the directory itself", "/media/ntfs", "UTC", true},
		{"nearest file wins even without the key", "/media/ntfs/photos", "", false},
		{"no file up to root", "/home/user", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, found, err := finder.Lookup(tt.dir, "timestampmode")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestParse(t *testing.T) {
	file, err := prefs.Parse([]byte("; comment\ntimestampmode = utc\n"))
	require.NoError(t, err)
	assert.Equal(t, "utc", file.Section("").Key("timestampmode").String())
}
