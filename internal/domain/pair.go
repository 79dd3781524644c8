package domain

import "math"

// Conversion constants of the routing backends. Output must match the
// reference tables bit for bit, so these are divisors, not approximations.
const (
	MetersPerMile    = 1609.34
	SecondsPerMinute = 60.0
)

func MetersToMiles(meters float64) float64 { return meters / MetersPerMile }

func SecondsToMinutes(seconds float64) float64 { return seconds / SecondsPerMinute }

// Missing is the sentinel for a numeric result that could not be obtained.
func Missing() float64 { return math.NaN() }

func IsMissing(v float64) bool { return math.IsNaN(v) }

// Outcome is the terminal state of a single (source, target) pair.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeElementFailure
	OutcomeBatchFailure
	OutcomeTransportFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeElementFailure:
		return "element_failure"
	case OutcomeBatchFailure:
		return "batch_failure"
	case OutcomeTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// PairResult is one row of a long-format distance table.
// DurationMin is Missing when the computation has no time component.
type PairResult struct {
	SourceKey     string
	TargetKey     string
	DistanceMiles float64
	DurationMin   float64
	Outcome       Outcome
}

func (p PairResult) OK() bool { return p.Outcome == OutcomeSuccess }

// FailedPair builds the sentinel row recorded for a pair that could not be routed.
func FailedPair(sourceKey, targetKey string, outcome Outcome) PairResult {
	return PairResult{
		SourceKey:     sourceKey,
		TargetKey:     targetKey,
		DistanceMiles: Missing(),
		DurationMin:   Missing(),
		Outcome:       outcome,
	}
}
