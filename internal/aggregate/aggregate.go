// Package aggregate folds per-suite outcomes into run-wide totals.
package aggregate

import "github.com/AndreyAkinshin/suiterun/internal/model"

// Report holds the totals of one run.
//
// TotalPassed + TotalFailed == TotalTests always holds.
type Report struct {
	SuiteCount       int
	SuccessfulSuites int
	// SuitesWithTestFailures counts suites that reported failing tests,
	// regardless of their process status.
	SuitesWithTestFailures int
	TotalTests             int
	TotalPassed            int
	TotalFailed            int
}

// Fold sums outcomes. The result does not depend on the order of outcomes.
func Fold(outcomes []model.SuiteOutcome) Report {
	var r Report
	for _, o := range outcomes {
		r.SuiteCount++
		if o.Succeeded {
			r.SuccessfulSuites++
		}
		if o.HasTestFailures() {
			r.SuitesWithTestFailures++
		}
		r.TotalTests += o.Total
		r.TotalPassed += o.Passed
		r.TotalFailed += o.Failed
	}
	return r
}

// FailedSuites is the number of suites whose process did not succeed.
func (r Report) FailedSuites() int {
	return r.SuiteCount - r.SuccessfulSuites
}

// AllSucceeded reports whether every suite process succeeded. It is true for
// an empty run.
func (r Report) AllSucceeded() bool {
	return r.SuccessfulSuites == r.SuiteCount
}

// SuccessRate returns TotalPassed/TotalTests as a percentage; ok is false when
// no tests were counted.
func (r Report) SuccessRate() (rate float64, ok bool) {
	if r.TotalTests == 0 {
		return 0, false
	}
	return float64(r.TotalPassed) / float64(r.TotalTests) * 100, true
}
