// Package report folds a validated batch into totals, a pass rate and
// failure-reason histograms, and renders the human-readable console
// summary. Aggregation is a pure function of the annotated sequence.
package report

import (
	"resultgate/internal/evidence"
)

// ControlSummary is the pass/fail breakdown restricted to negative
// controls.
type ControlSummary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// Summary is the aggregate verdict for one validation run.
type Summary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	PassRate float64 `json:"pass_rate"` // percent, 0 when Total == 0

	// Histogram over failed records only.
	FailuresByReason map[evidence.FailureReason]int `json:"failures_by_reason"`

	NegativeControls ControlSummary `json:"negative_controls"`
}

// Aggregate folds the annotated batch into a summary. A line that never
// parsed still counts: it increments total and failed and is attributed
// to UNVERIFIED, so corrupt input can never vanish from the denominator.
func Aggregate(lines []evidence.Line) *Summary {
	s := &Summary{
		FailuresByReason: make(map[evidence.FailureReason]int),
	}

	for _, line := range lines {
		s.Total++

		if line.Record == nil {
			s.Failed++
			s.FailuresByReason[evidence.ReasonUnverified]++
			continue
		}

		rec := line.Record
		if rec.IsNegativeControl() {
			s.NegativeControls.Total++
		}

		if rec.Passed {
			s.Passed++
			if rec.IsNegativeControl() {
				s.NegativeControls.Passed++
			}
			continue
		}

		s.Failed++
		s.FailuresByReason[rec.FailureReason]++
		if rec.IsNegativeControl() {
			s.NegativeControls.Failed++
		}
	}

	if s.Total > 0 {
		s.PassRate = float64(s.Passed) / float64(s.Total) * 100
	}
	return s
}
