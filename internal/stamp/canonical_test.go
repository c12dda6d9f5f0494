package stamp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"timestamper/internal/stamp"
	"timestamper/internal/testutil"
)

// at converts t to calendar fields with the given DST flag.
func at(t time.Time, dst stamp.DSTFlag) stamp.CanonicalTime {
	return stamp.NewCanonicalTime(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), dst)
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := stamp.NewCodec(testutil.Berlin(t))

	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.Int64Range(0, 4102444800).Draw(t, "raw")
		for _, interp := range []stamp.Interp{stamp.Local, stamp.UTC} {
			ct := codec.FromRaw(raw, interp)
			if got := codec.ToRaw(ct, interp); got != raw {
				t.Fatalf("%s: ToRaw(FromRaw(%d)) = %d via %s", interp, raw, got, ct)
			}
		}
	})
}

func TestCodec_FromRaw(t *testing.T) {
	codec := stamp.NewCodec(testutil.Berlin(t))

	tests := []struct {
		name    string
		instant time.Time
		interp  stamp.Interp
		want    string
		wantDST stamp.DSTFlag
	}{
		{"winter local", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), stamp.Local, "2024-01-15 11:00:00", stamp.DSTNo},
		{"summer local", time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC), stamp.Local, "2024-07-01 12:00:00", stamp.DSTYes},
		{"summer utc", time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC), stamp.UTC, "2024-07-01 10:00:00", stamp.DSTNo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := codec.FromRaw(tt.instant.Unix(), tt.interp)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.wantDST, got.DST)
		})
	}
}

func TestCodec_ToRawRepeatedHour(t *testing.T) {
	codec := stamp.NewCodec(testutil.Berlin(t))

	// 2024-10-27 02:30 happens twice in Berlin.
	summer := stamp.NewCanonicalTime(2024, time.October, 27, 2, 30, 0, stamp.DSTYes)
	winter := stamp.NewCanonicalTime(2024, time.October, 27, 2, 30, 0, stamp.DSTNo)

	assert.Equal(t, time.Date(2024, 10, 27, 0, 30, 0, 0, time.UTC).Unix(), codec.ToRaw(summer, stamp.Local))
	assert.Equal(t, time.Date(2024, 10, 27, 1, 30, 0, 0, time.UTC).Unix(), codec.ToRaw(winter, stamp.Local))
}

func TestParseCanonical(t *testing.T) {
	got, err := stamp.ParseCanonical("2023-04-05 06:07:08")
	require.NoError(t, err)
	assert.Equal(t, stamp.NewCanonicalTime(2023, time.April, 5, 6, 7, 8, stamp.DSTUnknown), got)
	assert.Equal(t, "2023-04-05 06:07:08", got.String())

	_, err = stamp.ParseCanonical("2023-04-05T06:07:08")
	assert.Error(t, err)
}

func TestCanonicalTime_Compare(t *testing.T) {
	a := stamp.NewCanonicalTime(2024, time.March, 1, 0, 0, 0, stamp.DSTNo)
	b := stamp.NewCanonicalTime(2024, time.March, 1, 0, 0, 1, stamp.DSTYes)

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(stamp.NewCanonicalTime(2024, time.March, 1, 0, 0, 0, stamp.DSTUnknown)))
	assert.True(t, a.SameWall(stamp.NewCanonicalTime(2024, time.March, 1, 0, 0, 0, stamp.DSTYes)))
}

func TestSystemZone(t *testing.T) {
	berlin := testutil.Berlin(t)

	winter := testutil.NewZone(berlin, testutil.FixedClock())
	assert.Equal(t, 3600, winter.StandardOffset())
	assert.False(t, winter.DSTNow())

	summer := testutil.NewZone(berlin, testutil.SummerClock())
	assert.Equal(t, 3600, summer.StandardOffset(), "standard offset ignores DST")
	assert.True(t, summer.DSTNow())

	utc := testutil.NewZone(time.UTC, testutil.SummerClock())
	assert.Equal(t, 0, utc.StandardOffset())
	assert.False(t, utc.DSTNow())
}
