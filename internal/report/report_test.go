package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyAkinshin/suiterun/internal/aggregate"
	"github.com/AndreyAkinshin/suiterun/internal/model"
)

func suite(filter, desc string) model.SuiteSpec {
	return model.SuiteSpec{Environment: "test_runner_embedded_unity", Filter: filter, Description: desc}
}

func sampleOutcomes() []model.SuiteOutcome {
	return []model.SuiteOutcome{
		model.NewOutcome(suite("test_safety", "Safety Tests"), 0, 10, 10, "", "", time.Second),
		model.NewOutcome(suite("test_basic", "Basic Functionality Tests"), 1, 20, 15, "", "", 2*time.Second),
	}
}

func TestRender_MixedRun(t *testing.T) {
	t.Parallel()

	outcomes := sampleOutcomes()
	text, code := Render(outcomes, aggregate.Fold(outcomes), Options{})

	assert.Equal(t, ExitSomeFailed, code)
	assert.Contains(t, text, DefaultTitle)
	assert.Contains(t, text, "Safety Tests")
	assert.Contains(t, text, "Basic Functionality Tests")
	assert.Contains(t, text, StatusPass)
	assert.Contains(t, text, StatusFail)
	assert.Contains(t, text, "100.0%")
	assert.Contains(t, text, "75.0%")
	assert.Contains(t, text, "exit 1, tests failed")
	assert.Contains(t, text, "83.3%")
	assert.True(t, strings.HasSuffix(text, "1 test suite(s) failed.\n"))
}

func TestRender_AllSucceeded(t *testing.T) {
	t.Parallel()

	outcomes := []model.SuiteOutcome{
		model.NewOutcome(suite("a", "A"), 0, 3, 3, "", "", 0),
		model.NewOutcome(suite("b", "B"), 0, 4, 2, "", "", 0),
	}
	text, code := Render(outcomes, aggregate.Fold(outcomes), Options{})

	// Failing tests inside a cleanly exiting suite do not change the status.
	assert.Equal(t, ExitAllSucceeded, code)
	assert.Contains(t, text, "All 2 test suite(s) completed successfully.")
	assert.Contains(t, text, "tests failed")
}

func TestRender_ZeroTestsShowsNA(t *testing.T) {
	t.Parallel()

	outcomes := []model.SuiteOutcome{
		model.TimeoutOutcome(suite("slow", "Slow Tests"), time.Minute),
		model.LaunchFailureOutcome(suite("gone", "Gone Tests"), nil),
	}
	rep := aggregate.Fold(outcomes)
	text, code := Render(outcomes, rep, Options{})

	assert.Equal(t, ExitSomeFailed, code)
	assert.Contains(t, text, RateNA)
	assert.Contains(t, text, "timeout")
	assert.Contains(t, text, "launch failed")
	assert.NotContains(t, text, "Overall success rate")
	assert.Contains(t, text, "2 test suite(s) failed.")
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	text, code := Render(nil, aggregate.Fold(nil), Options{})

	assert.Equal(t, ExitAllSucceeded, code)
	assert.Contains(t, text, "All 0 test suite(s) completed successfully.")
	assert.NotContains(t, text, "Overall success rate")
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	outcomes := sampleOutcomes()
	first, _ := Render(outcomes, aggregate.Fold(outcomes), Options{})
	second, _ := Render(outcomes, aggregate.Fold(outcomes), Options{})
	require.Equal(t, first, second)

	// Durations are excluded unless requested.
	outcomes[0].Duration = time.Hour
	third, _ := Render(outcomes, aggregate.Fold(outcomes), Options{})
	assert.Equal(t, first, third)
}

func TestRender_Options(t *testing.T) {
	t.Parallel()

	outcomes := sampleOutcomes()
	text, _ := Render(outcomes, aggregate.Fold(outcomes), Options{Title: "NIGHTLY", ShowDurations: true})

	assert.True(t, strings.HasPrefix(text, "NIGHTLY\n=======\n"))
	assert.Contains(t, text, "Duration")
	assert.Contains(t, text, "2s")
}

func TestRender_TitleUnderlineMatchesWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"ÜBERSICHT", "ÜBERSICHT\n=========\n"},
		{"Résumé des tests", "Résumé des tests\n================\n"},
		{"测试", "测试\n====\n"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			got, _ := Render(nil, aggregate.Fold(nil), Options{Title: tt.title})
			assert.True(t, strings.HasPrefix(got, tt.want), "got %q", got)
		})
	}
}

func TestRender_GroupsLargeNumbers(t *testing.T) {
	t.Parallel()

	outcomes := []model.SuiteOutcome{model.NewOutcome(suite("big", "Big"), 0, 12345, 12345, "", "", 0)}
	text, _ := Render(outcomes, aggregate.Fold(outcomes), Options{})

	assert.Contains(t, text, "12,345")
}

func TestNote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		o    model.SuiteOutcome
		want string
	}{
		{"clean", model.NewOutcome(suite("a", ""), 0, 2, 2, "", "", 0), ""},
		{"exit only", model.NewOutcome(suite("a", ""), 2, 0, 0, "", "", 0), "exit 2"},
		{"tests only", model.NewOutcome(suite("a", ""), 0, 2, 1, "", "", 0), "tests failed"},
		{"timeout", model.TimeoutOutcome(suite("a", ""), 0), "timeout"},
		{"launch", model.LaunchFailureOutcome(suite("a", ""), nil), "launch failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Note(tt.o))
		})
	}
}

func TestFormatRate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "N/A", FormatRate(0, false))
	assert.Equal(t, "83.3%", FormatRate(83.3333, true))
	assert.Equal(t, "0.0%", FormatRate(0, true))
}
