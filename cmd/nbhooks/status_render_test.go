package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"nbhooks/internal/findings"
	"nbhooks/internal/hooks"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Git", statusError, "git not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Git:", "[ERROR] git not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Repository root", statusOK, "/src (read/write ok)", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestFailureKindsDeduplicates(t *testing.T) {
	errs := []error{
		findings.New(findings.ErrBadgeMismatch, "first-cell-badges", "a"),
		findings.New(findings.ErrBadgeMismatch, "first-cell-badges", "b"),
		findings.New(findings.ErrWrongCellType, "second-cell-markdown", "c"),
		errors.New("plain"),
	}
	if got, want := failureKinds(errs), "badge mismatch, wrong cell type, other"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRenderReportTable(t *testing.T) {
	out := renderReportTable(&hooks.Report{Files: []hooks.FileResult{
		{Path: "a.ipynb", Header: hooks.HeaderReformatted},
		{Path: "b.ipynb", Failures: []error{findings.New(findings.ErrTooFewCells, "min-cells", "x")}},
	}})
	for _, want := range []string{"a.ipynb", "reformatted", "b.ipynb", "too few cells"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty render without headers")
	}
}
