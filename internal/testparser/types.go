// Package testparser extracts test result counts from the textual transcripts of
// external test runners.
package testparser

// TestCounts holds parsed test result counts.
//
// Failed is always Total - Passed. Skipped tests are reported separately and are
// not part of Total.
type TestCounts struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	// Parsed is true when a summary line was found and accepted.
	Parsed bool
	// Malformed is true when a summary line was found but its counts were
	// inconsistent (for example passed > total). Counts are zero in that case.
	Malformed bool
}

// newCounts builds counts for a summary line, rejecting inconsistent values.
func newCounts(total, passed, skipped int) TestCounts {
	if total < 0 || passed < 0 || skipped < 0 || passed > total {
		return TestCounts{Malformed: true}
	}
	return TestCounts{
		Total:   total,
		Passed:  passed,
		Failed:  total - passed,
		Skipped: skipped,
		Parsed:  true,
	}
}

// Add adds another TestCounts to this one, aggregating the counts.
// The Parsed and Malformed flags use "sticky true" semantics: the aggregate is
// Parsed if any added counts were parsed, and Malformed if any were malformed.
func (tc *TestCounts) Add(other *TestCounts) {
	if other == nil {
		return
	}
	tc.Total += other.Total
	tc.Passed += other.Passed
	tc.Failed += other.Failed
	tc.Skipped += other.Skipped
	if other.Parsed {
		tc.Parsed = true
	}
	if other.Malformed {
		tc.Malformed = true
	}
}

// Parser defines the interface for transcript parsers.
type Parser interface {
	// Parse extracts test counts from a runner transcript. It never fails:
	// a transcript without a recognizable summary yields zero counts.
	Parse(output string) TestCounts
	// Name returns the name of the parser.
	Name() string
}

// Extract runs parser over transcript and returns the (total, passed) pair.
// Missing or malformed summaries yield (0, 0).
func Extract(parser Parser, transcript string) (total, passed int) {
	counts := parser.Parse(transcript)
	return counts.Total, counts.Passed
}
