package stamp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timestamper/internal/stamp"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"20251214_120000.jpg", "2025-12-14 12:00:00"},
		{"Screenshot_20251214_120000_App.jpg", "2025-12-14 12:00:00"},
		{"phone-251214-120000 Title.jpg", "2025-12-14 12:00:00"},
		{"19991231-235959.jpg", "1999-12-31 23:59:59"},
		{"Screenshot 2026-01-12 at 15-57-36 Startpage.png", "2026-01-12 15:57:36"},
		{"Screenshot_2026-01-10_21-57-04.png", "2026-01-10 21:57:04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stamp.ParseFilename(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, stamp.DSTUnknown, got.DST)
		})
	}
}

func TestParseFilename_NoTimestamp(t *testing.T) {
	for _, name := range []string{
		"IMG_1234.jpg",
		"holiday.png",
		"Xmas Lunch.jpg",
		"20241332_120000.jpg", // month 13
		"20240230_120000.jpg", // February 30th
		"20240101_250000.jpg", // hour 25
	} {
		t.Run(name, func(t *testing.T) {
			_, err := stamp.ParseFilename(name)
			assert.ErrorIs(t, err, stamp.ErrNoTimestampFound)
		})
	}
}

func TestFilenameView(t *testing.T) {
	v, err := stamp.NewFilenameView("VID_20240102_030405.mp4")
	require.NoError(t, err)

	assert.Equal(t, stamp.KindFilename, v.Kind())
	assert.Equal(t, "2024-01-02 03:04:05", v.Display())

	err = v.Set(stamp.NewCanonicalTime(2020, 1, 1, 0, 0, 0, stamp.DSTNo))
	assert.ErrorIs(t, err, stamp.ErrUnsupportedTarget)
	assert.Equal(t, "2024-01-02 03:04:05", v.Display(), "rejected write leaves the value")
}
