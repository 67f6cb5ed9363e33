package testparser

import (
	"regexp"
	"strconv"

	"github.com/acarl005/stripansi"
)

// Footer printed by the Unity test framework, e.g.
//
//	-----------------------
//	12 Tests 2 Failures 1 Ignored
//	FAIL
var unityFooterRegex = regexp.MustCompile(`(?i)(\d+)\s+Tests\s+(\d+)\s+Failures\s+(\d+)\s+Ignored`)

// UnityParser parses raw Unity framework output, for runners that print the
// Unity footer instead of a PlatformIO summary.
type UnityParser struct{}

// Name returns the parser name.
func (p *UnityParser) Name() string {
	return "unity"
}

// Parse extracts counts from the first Unity footer. Ignored tests are reported
// as Skipped and excluded from Total.
func (p *UnityParser) Parse(output string) TestCounts {
	match := unityFooterRegex.FindStringSubmatch(stripansi.Strip(output))
	if match == nil {
		return TestCounts{}
	}

	tests, err1 := strconv.Atoi(match[1])
	failures, err2 := strconv.Atoi(match[2])
	ignored, err3 := strconv.Atoi(match[3])
	if err1 != nil || err2 != nil || err3 != nil {
		return TestCounts{Malformed: true}
	}

	total := tests - ignored
	return newCounts(total, total-failures, ignored)
}
