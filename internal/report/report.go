// Package report renders run results as a plain-text summary and decides the
// process exit status.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AndreyAkinshin/suiterun/internal/aggregate"
	"github.com/AndreyAkinshin/suiterun/internal/model"
)

// DefaultTitle heads the summary.
const DefaultTitle = "TEST SUMMARY"

// Status cells.
const (
	StatusPass = "✅ PASS"
	StatusFail = "❌ FAIL"
	RateNA     = "N/A"
)

// Exit statuses returned by Render.
const (
	ExitAllSucceeded = 0
	ExitSomeFailed   = 1
)

// Options tunes rendering.
type Options struct {
	// Title replaces DefaultTitle when non-empty.
	Title string
	// ShowDurations adds a Duration column. Output is then no longer identical
	// between runs.
	ShowDurations bool
}

// Render builds the summary text and the exit status for a run. The exit status
// is 0 only when every suite process succeeded; failing test counts alone do
// not change it. Identical inputs always produce identical text.
func Render(outcomes []model.SuiteOutcome, rep aggregate.Report, opts Options) (string, int) {
	p := message.NewPrinter(language.English)

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", text.RuneWidthWithoutEscSequences(title)))
	sb.WriteString("\n\n")

	if len(outcomes) > 0 {
		sb.WriteString(suiteTable(p, outcomes, opts))
		sb.WriteString("\n\n")
	}

	writeAggregate(&sb, p, rep)
	sb.WriteString("\n")
	sb.WriteString(Verdict(rep))
	sb.WriteString("\n")

	return sb.String(), ExitCode(rep)
}

// ExitCode returns ExitAllSucceeded when every suite process succeeded.
func ExitCode(rep aggregate.Report) int {
	if rep.AllSucceeded() {
		return ExitAllSucceeded
	}
	return ExitSomeFailed
}

// Verdict is the closing line of the summary.
func Verdict(rep aggregate.Report) string {
	if rep.AllSucceeded() {
		return fmt.Sprintf("All %d test suite(s) completed successfully.", rep.SuiteCount)
	}
	return fmt.Sprintf("%d test suite(s) failed.", rep.FailedSuites())
}

func suiteTable(p *message.Printer, outcomes []model.SuiteOutcome, opts Options) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	header := table.Row{"Suite", "Status", "Tests", "Passed", "Failed", "Rate"}
	configs := []table.ColumnConfig{
		{Name: "Suite", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Rate", Align: text.AlignRight},
	}
	if opts.ShowDurations {
		header = append(header, "Duration")
		configs = append(configs, table.ColumnConfig{Name: "Duration", Align: text.AlignRight})
	}
	header = append(header, "Note")

	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for _, o := range outcomes {
		row := table.Row{
			label(o),
			status(o),
			p.Sprintf("%d", o.Total),
			p.Sprintf("%d", o.Passed),
			p.Sprintf("%d", o.Failed),
			FormatRate(o.SuccessRate()),
		}
		if opts.ShowDurations {
			row = append(row, o.Duration.Round(time.Millisecond).String())
		}
		row = append(row, Note(o))
		t.AppendRow(row)
	}

	return t.Render()
}

func writeAggregate(sb *strings.Builder, p *message.Printer, rep aggregate.Report) {
	line := func(name string, value string) {
		sb.WriteString(p.Sprintf("  %-27s %s\n", name+":", value))
	}

	sb.WriteString("Aggregate:\n")
	line("Total suites", p.Sprintf("%d", rep.SuiteCount))
	line("Successful suites", p.Sprintf("%d", rep.SuccessfulSuites))
	line("Failed suites", p.Sprintf("%d", rep.FailedSuites()))
	line("Suites with failing tests", p.Sprintf("%d", rep.SuitesWithTestFailures))
	line("Total tests", p.Sprintf("%d", rep.TotalTests))
	line("Passed", p.Sprintf("%d", rep.TotalPassed))
	line("Failed", p.Sprintf("%d", rep.TotalFailed))
	if rate, ok := rep.SuccessRate(); ok {
		line("Overall success rate", FormatRate(rate, ok))
	}
}

// FormatRate renders a percentage with one decimal, or RateNA when undefined.
func FormatRate(rate float64, ok bool) string {
	if !ok {
		return RateNA
	}
	return fmt.Sprintf("%.1f%%", rate)
}

// Note explains why a suite is not clean: process failures first, then
// failing tests. Empty for a clean suite.
func Note(o model.SuiteOutcome) string {
	var notes []string
	switch o.Kind {
	case model.TimedOut:
		notes = append(notes, "timeout")
	case model.LaunchFailed:
		notes = append(notes, "launch failed")
	default:
		if o.ExitCode != 0 {
			notes = append(notes, fmt.Sprintf("exit %d", o.ExitCode))
		}
	}
	if o.HasTestFailures() {
		notes = append(notes, "tests failed")
	}
	return strings.Join(notes, ", ")
}

func status(o model.SuiteOutcome) string {
	if o.Succeeded {
		return StatusPass
	}
	return StatusFail
}

func label(o model.SuiteOutcome) string {
	if o.Description != "" {
		return o.Description
	}
	return o.Name
}
