package testparser

import "testing"

func TestTestCountsAdd_NilReceiver(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on nil receiver, got none")
		}
	}()

	var tc *TestCounts
	tc.Add(&TestCounts{Passed: 1})
}

func TestTestCountsAdd(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		base     TestCounts
		add      *TestCounts
		expected TestCounts
	}{
		{
			name:     "add to zero",
			base:     TestCounts{},
			add:      &TestCounts{Total: 15, Passed: 10, Failed: 5, Parsed: true},
			expected: TestCounts{Total: 15, Passed: 10, Failed: 5, Parsed: true},
		},
		{
			name:     "add to existing",
			base:     TestCounts{Total: 8, Passed: 5, Failed: 3, Skipped: 2, Parsed: true},
			add:      &TestCounts{Total: 15, Passed: 10, Failed: 5, Skipped: 1, Parsed: true},
			expected: TestCounts{Total: 23, Passed: 15, Failed: 8, Skipped: 3, Parsed: true},
		},
		{
			name:     "add nil",
			base:     TestCounts{Total: 8, Passed: 5, Failed: 3, Parsed: true},
			add:      nil,
			expected: TestCounts{Total: 8, Passed: 5, Failed: 3, Parsed: true},
		},
		{
			name:     "add parsed to unparsed",
			base:     TestCounts{},
			add:      &TestCounts{Total: 2, Passed: 2, Parsed: true},
			expected: TestCounts{Total: 2, Passed: 2, Parsed: true},
		},
		{
			name:     "malformed is sticky",
			base:     TestCounts{Total: 2, Passed: 2, Parsed: true},
			add:      &TestCounts{Malformed: true},
			expected: TestCounts{Total: 2, Passed: 2, Parsed: true, Malformed: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := tt.base
			result.Add(tt.add)
			if result != tt.expected {
				t.Errorf("Add() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestNewCounts(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name                   string
		total, passed, skipped int
		expected               TestCounts
	}{
		{"consistent", 10, 8, 0, TestCounts{Total: 10, Passed: 8, Failed: 2, Parsed: true}},
		{"zero", 0, 0, 0, TestCounts{Parsed: true}},
		{"passed exceeds total", 5, 9, 0, TestCounts{Malformed: true}},
		{"negative total", -1, 0, 0, TestCounts{Malformed: true}},
		{"negative skipped", 1, 1, -1, TestCounts{Malformed: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := newCounts(tt.total, tt.passed, tt.skipped); got != tt.expected {
				t.Errorf("newCounts() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}
