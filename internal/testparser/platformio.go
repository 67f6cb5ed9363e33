package testparser

import (
	"regexp"
	"strconv"

	"github.com/acarl005/stripansi"
)

// Summary line printed by `pio test` for each test environment, e.g.
//
//	==== 10 test cases: 8 succeeded in 00:00:02.134 ====
var pioSummaryRegex = regexp.MustCompile(`(?i)(\d+)\s*test\s+cases\s*:\s*(\d+)\s*succeeded`)

// PlatformIOParser parses PlatformIO `pio test` transcripts.
type PlatformIOParser struct{}

// Name returns the parser name.
func (p *PlatformIOParser) Name() string {
	return "platformio"
}

// Parse extracts counts from the first "<N> test cases: <M> succeeded" line.
// ANSI color sequences are removed before matching.
func (p *PlatformIOParser) Parse(output string) TestCounts {
	match := pioSummaryRegex.FindStringSubmatch(stripansi.Strip(output))
	if match == nil {
		return TestCounts{}
	}

	total, errTotal := strconv.Atoi(match[1])
	passed, errPassed := strconv.Atoi(match[2])
	if errTotal != nil || errPassed != nil {
		// Digit runs too long for an int.
		return TestCounts{Malformed: true}
	}

	return newCounts(total, passed, 0)
}
