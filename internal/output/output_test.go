package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestWriter(color bool) (*Writer, *bytes.Buffer, *bytes.Buffer) {
	var out, errBuf bytes.Buffer
	return NewWithWriters(&out, &errBuf, color), &out, &errBuf
}

func TestWriter_PrintGoesToStdout(t *testing.T) {
	t.Parallel()

	w, out, errBuf := newTestWriter(false)
	w.Print("a=%d", 1)
	w.Println(" b=%s", "x")

	if out.String() != "a=1 b=x\n" {
		t.Errorf("stdout = %q", out.String())
	}
	if errBuf.Len() != 0 {
		t.Errorf("stderr = %q, want empty", errBuf.String())
	}
}

func TestWriter_Info_Quiet(t *testing.T) {
	t.Parallel()

	w, _, errBuf := newTestWriter(false)
	w.Info("loading %s", "config")
	if errBuf.String() != "loading config\n" {
		t.Errorf("stderr = %q", errBuf.String())
	}

	errBuf.Reset()
	w.SetQuiet(true)
	w.Info("hidden")
	if errBuf.Len() != 0 {
		t.Errorf("quiet Info wrote %q", errBuf.String())
	}
}

func TestWriter_WarningAndError(t *testing.T) {
	t.Parallel()

	w, _, errBuf := newTestWriter(false)
	w.Warning("unknown field %q", "extra")
	w.ErrorPrefix("%v", errors.New("boom"))

	want := "warning: unknown field \"extra\"\nsuiterun: boom\n"
	if errBuf.String() != want {
		t.Errorf("stderr = %q, want %q", errBuf.String(), want)
	}
}

func TestWriter_Banner(t *testing.T) {
	t.Parallel()

	w, out, errBuf := newTestWriter(false)
	w.Banner("Safety Tests", "pio test -e native --filter test_safety")

	got := errBuf.String()
	rule := strings.Repeat("=", 60)
	want := "\n" + rule + "\nRunning: Safety Tests\nCommand: pio test -e native --filter test_safety\n" + rule + "\n"
	if got != want {
		t.Errorf("banner = %q, want %q", got, want)
	}
	if out.Len() != 0 {
		t.Errorf("banner wrote to stdout: %q", out.String())
	}

	errBuf.Reset()
	w.SetQuiet(true)
	w.Banner("x", "y")
	if errBuf.Len() != 0 {
		t.Errorf("quiet banner wrote %q", errBuf.String())
	}
}

func TestWriter_StepResult(t *testing.T) {
	t.Parallel()

	w, _, errBuf := newTestWriter(false)
	w.StepResult(true, "exit code %d", 0)
	w.StepResult(false, "timed out")

	if errBuf.String() != "✓ exit code 0\n✗ timed out\n" {
		t.Errorf("stderr = %q", errBuf.String())
	}

	errBuf.Reset()
	w.SetQuiet(true)
	w.StepResult(true, "hidden")
	w.StepResult(false, "shown")
	if errBuf.String() != "✗ shown\n" {
		t.Errorf("quiet stderr = %q", errBuf.String())
	}
}

func TestWriter_Detail(t *testing.T) {
	t.Parallel()

	w, _, errBuf := newTestWriter(false)
	w.Detail("STDERR", "line one\nline two\n")
	w.Detail("EMPTY", "\n")

	if errBuf.String() != "STDERR:\n  line one\n  line two\n" {
		t.Errorf("stderr = %q", errBuf.String())
	}
}

func TestWriter_SummaryAction(t *testing.T) {
	t.Parallel()

	w, out, _ := newTestWriter(false)
	w.SummaryAction("esp32", true, "1.2s", "")
	w.SummaryAction("native", false, "0.4s", "exit 1")

	want := "  + esp32        1.2s\n  x native       0.4s  (exit 1)\n"
	if out.String() != want {
		t.Errorf("stdout = %q, want %q", out.String(), want)
	}
}

func TestWriter_ColorAddsEscapes(t *testing.T) {
	t.Parallel()

	w, _, errBuf := newTestWriter(true)
	w.FinalFailure("2 test suite(s) failed.")
	if !strings.Contains(errBuf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes, got %q", errBuf.String())
	}

	w, _, errBuf = newTestWriter(false)
	w.FinalFailure("2 test suite(s) failed.")
	if strings.Contains(errBuf.String(), "\x1b[") {
		t.Errorf("unexpected ANSI escapes in %q", errBuf.String())
	}
}

func TestWriter_SectionAndList(t *testing.T) {
	t.Parallel()

	w, out, _ := newTestWriter(false)
	w.Section("Documentation")
	w.List([]string{"docs/api.md"})

	if out.String() != "\n=== Documentation ===\n  - docs/api.md\n" {
		t.Errorf("stdout = %q", out.String())
	}
}
