//go:build !linux

package fs

import (
	"io/fs"
	"time"

	"timestamper/internal/stamp"
)

// statData extracts whole-second times from a FileInfo. Only mtime is
// portable, so atime and ctime mirror it.
func statData(info fs.FileInfo) *stamp.StatData {
	return &stamp.StatData{
		Mtime: info.ModTime().Unix(),
		Ctime: info.ModTime().Unix(),
		Atime: info.ModTime().Unix(),
		Size:  info.Size(),
	}
}

func accessTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
