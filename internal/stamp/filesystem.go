package stamp

// EntryType classifies a directory member.
type EntryType byte

const (
	TypeFile      EntryType = 'F'
	TypeDirectory EntryType = 'D'
	TypeOther     EntryType = 'x'
)

func (t EntryType) String() string { return string(t) }

// DirEntry is one member of a directory listing.
type DirEntry struct {
	Name string
	Type EntryType
	// Stat is nil for entries that are not regular files.
	Stat *StatData
}

// FilesystemManager provides the filesystem operations the engine needs.
// It abstracts file access to enable testing without touching the real filesystem.
type FilesystemManager interface {
	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)

	// ListDir returns the members of a directory in listing order.
	ListDir(path string) ([]DirEntry, error)

	// Stat returns fresh stat data for a path.
	Stat(path string) (*StatData, error)

	// SetModTime sets the mtime of path, leaving atime unchanged.
	SetModTime(path string, mtime int64) error

	// ReadFile returns the contents of a file. A missing file is reported
	// with an error satisfying errors.Is(err, fs.ErrNotExist).
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the contents of a file.
	WriteFile(path string, data []byte) error
}

// MediaPrefs resolves directory-scoped preferences, searching from dir
// towards the filesystem root.
type MediaPrefs interface {
	Lookup(dir, key string) (value string, found bool, err error)
}
