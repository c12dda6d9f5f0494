package stamp

// Severity classifies how two timestamps differ. The presentation layer maps
// it to a colour.
type Severity string

const (
	SeverityEqual       Severity = "equal"
	SeverityFATRounding Severity = "fat-rounding"
	SeverityFewSeconds  Severity = "few-seconds"
	SeverityDSTOffset   Severity = "dst-offset"
	SeverityHoursDiff   Severity = "hours-diff"
	SeverityDifferent   Severity = "different"
)

// Severities lists every key from best to worst.
var Severities = []Severity{
	SeverityEqual,
	SeverityFATRounding,
	SeverityFewSeconds,
	SeverityDSTOffset,
	SeverityHoursDiff,
	SeverityDifferent,
}

// Rank orders severities from 0 (equal) to 5 (different). Unknown keys rank -1.
func (s Severity) Rank() int {
	for i, known := range Severities {
		if s == known {
			return i
		}
	}
	return -1
}

const (
	// fewSecondsDelta is the largest delta that still counts as camera lag.
	fewSecondsDelta = 20

	// maxDSTHours is the largest whole-hour delta blamed on DST handling.
	maxDSTHours = 2
)

// fatCorrection undoes the 2-second granularity of FAT timestamps, keyed by
// the delta modulo one minute.
var fatCorrection = map[int64]int64{58: +2, 59: +1, 1: -1, 2: -2}

// Analysis is the result of comparing two timestamps.
type Analysis struct {
	Severity Severity
	// Delta is a minus b in seconds.
	Delta int64
}

// Classify compares a with b on their calendar fields.
func Classify(a, b CanonicalTime) Analysis {
	delta := a.civilSeconds() - b.civilSeconds()
	return Analysis{Severity: severityOf(delta), Delta: delta}
}

func severityOf(delta int64) Severity {
	if delta == 0 {
		return SeverityEqual
	}

	corrected := delta
	if corr, ok := fatCorrection[((delta%60)+60)%60]; ok {
		corrected += corr
		if corrected == 0 {
			return SeverityFATRounding
		}
	}

	if abs(delta) <= fewSecondsDelta {
		return SeverityFewSeconds
	}

	if corrected%3600 == 0 {
		if abs(corrected)/3600 <= maxDSTHours {
			return SeverityDSTOffset
		}
		return SeverityHoursDiff
	}

	return SeverityDifferent
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
