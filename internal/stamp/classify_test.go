package stamp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"timestamper/internal/stamp"
)

func TestClassify(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		delta int64
		want  stamp.Severity
	}{
		{0, stamp.SeverityEqual},
		{1, stamp.SeverityFATRounding},
		{-2, stamp.SeverityFATRounding},
		{2, stamp.SeverityFATRounding},
		{15, stamp.SeverityFewSeconds},
		{47, stamp.SeverityDifferent},
		{5, stamp.SeverityFewSeconds},
		{-20, stamp.SeverityFewSeconds},
		{21, stamp.SeverityDifferent},
		{59, stamp.SeverityDifferent},
		{3600, stamp.SeverityDSTOffset},
		{-7200, stamp.SeverityDSTOffset},
		{3598, stamp.SeverityDSTOffset},
		{7201, stamp.SeverityDSTOffset},
		{10800, stamp.SeverityHoursDiff},
		{-86400, stamp.SeverityHoursDiff},
		{5400, stamp.SeverityDifferent},
	}
	for _, tt := range tests {
		t.Run(time.Duration(tt.delta*int64(time.Second)).String(), func(t *testing.T) {
			a := at(base.Add(time.Duration(tt.delta)*time.Second), stamp.DSTNo)
			b := at(base, stamp.DSTYes)

			got := stamp.Classify(a, b)
			assert.Equal(t, tt.want, got.Severity)
			assert.Equal(t, tt.delta, got.Delta)
		})
	}
}

func TestClassify_Antisymmetric(t *testing.T) {
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	rapid.Check(t, func(t *rapid.T) {
		a := at(base.Add(time.Duration(rapid.Int64Range(0, 1<<30).Draw(t, "a"))*time.Second), stamp.DSTNo)
		b := at(base.Add(time.Duration(rapid.Int64Range(0, 1<<30).Draw(t, "b"))*time.Second), stamp.DSTNo)

		ab := stamp.Classify(a, b)
		ba := stamp.Classify(b, a)
		if ab.Delta != -ba.Delta {
			t.Fatalf("delta %d vs %d", ab.Delta, ba.Delta)
		}
		if ab.Severity != ba.Severity {
			t.Fatalf("severity %s vs %s for delta %d", ab.Severity, ba.Severity, ab.Delta)
		}
	})
}

func TestSeverity_Rank(t *testing.T) {
	for i, sev := range stamp.Severities {
		assert.Equal(t, i, sev.Rank())
	}
	assert.Equal(t, -1, stamp.Severity("bogus").Rank())
}
