//go:build linux

package fs

import (
	"io/fs"
	"syscall"
	"time"

	"timestamper/internal/stamp"
)

// statData extracts whole-second times from a FileInfo. Linux stat carries
// atime and ctime; filesystems without a Stat_t fall back to mtime.
func statData(info fs.FileInfo) *stamp.StatData {
	data := &stamp.StatData{
		Mtime: info.ModTime().Unix(),
		Ctime: info.ModTime().Unix(),
		Atime: info.ModTime().Unix(),
		Size:  info.Size(),
	}
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		data.Atime = int64(st.Atim.Sec)
		data.Ctime = int64(st.Ctim.Sec)
	}
	return data
}

// accessTime returns the atime with nanoseconds, or the mtime when the
// filesystem has no Stat_t.
func accessTime(info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec))
	}
	return info.ModTime()
}
