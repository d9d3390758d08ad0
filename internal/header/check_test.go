package header

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nbhooks/internal/findings"
	"nbhooks/internal/notebook"
)

const pkg = "PySDM"

func baseNotebook(extra ...*notebook.Cell) *notebook.Notebook {
	cells := []*notebook.Cell{
		notebook.NewMarkdownCell("badges"),
		notebook.NewMarkdownCell("description"),
	}
	return notebook.New(append(cells, extra...)...)
}

func TestCheckCanonicalHeaderIsUnchanged(t *testing.T) {
	nb := baseNotebook(notebook.NewCodeCell(Build(pkg, "==1.0")), notebook.NewCodeCell("x = 1"))

	res, err := Check(nb, Options{Package: pkg})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if res.Modified() {
		t.Fatalf("expected no modification, got %+v", res)
	}
	if res.Found != Index || res.Version != "==1.0" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestCheckTooFewCells(t *testing.T) {
	nb := notebook.New(notebook.NewMarkdownCell("only"))
	_, err := Check(nb, Options{Package: pkg, Fix: true})
	if !errors.Is(err, findings.ErrTooFewCells) {
		t.Fatalf("expected ErrTooFewCells, got %v", err)
	}
}

func TestCheckInsertsMissingHeaderWithoutFix(t *testing.T) {
	nb := baseNotebook(notebook.NewCodeCell("x = 1"))

	res, err := Check(nb, Options{Package: pkg, Version: "==9.9"})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !res.Inserted || !res.Modified() {
		t.Fatalf("expected insertion, got %+v", res)
	}
	if nb.Len() != 4 {
		t.Fatalf("expected 4 cells, got %d", nb.Len())
	}
	if got := nb.Cells[Index].Source; got != Build(pkg, "==9.9") {
		t.Fatalf("unexpected inserted source:\n%s", got)
	}
	if nb.Cells[3].Source != "x = 1" {
		t.Fatalf("expected original cell to shift down, got %q", nb.Cells[3].Source)
	}
}

func TestCheckInsertedHeaderWithoutVersion(t *testing.T) {
	nb := baseNotebook(notebook.NewCodeCell("x = 1"))
	if _, err := Check(nb, Options{Package: pkg}); err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if got := nb.Cells[Index].Source; got != Build(pkg, "") {
		t.Fatalf("unexpected inserted source:\n%s", got)
	}
}

func TestCheckMalformedHeader(t *testing.T) {
	broken := "import sys\nif 'google.colab' in sys.modules:\n    !pip --quiet install open-atmos-jupyter-utils\n    pip_install_on_colab('Other-examples', 'Other')"
	nb := baseNotebook(notebook.NewCodeCell(broken))
	_, err := Check(nb, Options{Package: pkg, Fix: true})
	if !errors.Is(err, findings.ErrMalformedHeader) {
		t.Fatalf("expected ErrMalformedHeader, got %v", err)
	}
}

func TestCheckVersionMismatchIgnoresFix(t *testing.T) {
	mismatched := "import os, sys\nif 'google.colab' in sys.modules:\n    !pip --quiet install open-atmos-jupyter-utils\n    pip_install_on_colab('PySDM-examples1.0', 'PySDM2.0')"
	for _, fix := range []bool{false, true} {
		nb := baseNotebook(
			notebook.NewCodeCell("a = 1"),
			notebook.NewCodeCell("b = 2"),
			notebook.NewCodeCell("c = 3"),
			notebook.NewCodeCell(mismatched),
		)
		before := snapshot(nb)
		_, err := Check(nb, Options{Package: pkg, Fix: fix})
		if !errors.Is(err, findings.ErrVersionMismatch) {
			t.Fatalf("fix=%v: expected ErrVersionMismatch, got %v", fix, err)
		}
		if diff := cmp.Diff(before, snapshot(nb)); diff != "" {
			t.Fatalf("fix=%v: notebook mutated on failure (-before +after):\n%s", fix, diff)
		}
	}
}

func TestCheckIncorrectHeaderWithoutFix(t *testing.T) {
	stale := Build(pkg, "==1.0") + "\n# local tweak"
	nb := baseNotebook(notebook.NewCodeCell(stale))
	_, err := Check(nb, Options{Package: pkg})
	if !errors.Is(err, findings.ErrIncorrectHeader) {
		t.Fatalf("expected ErrIncorrectHeader, got %v", err)
	}
	if nb.Cells[Index].Source != stale {
		t.Fatal("expected source to be left alone without fix")
	}
}

func TestCheckRewritesWithFixKeepingExistingVersion(t *testing.T) {
	stale := Build(pkg, "==1.2") + "\n# local tweak"
	nb := baseNotebook(notebook.NewCodeCell(stale))
	res, err := Check(nb, Options{Package: pkg, Version: "==9.9", Fix: true})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !res.Rewritten || res.Relocated {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := nb.Cells[Index].Source; got != Build(pkg, "==1.2") {
		t.Fatalf("expected existing version to win, got:\n%s", got)
	}
}

func TestCheckFallbackVersionAppliesToUnversionedHeader(t *testing.T) {
	nb := baseNotebook(notebook.NewCodeCell(Build(pkg, "")))
	_, err := Check(nb, Options{Package: pkg, Version: "==9.9"})
	if !errors.Is(err, findings.ErrIncorrectHeader) {
		t.Fatalf("expected ErrIncorrectHeader without fix, got %v", err)
	}
	res, err := Check(nb, Options{Package: pkg, Version: "==9.9", Fix: true})
	if err != nil || !res.Rewritten {
		t.Fatalf("expected rewrite with fix, got %+v, %v", res, err)
	}
	if nb.Cells[Index].Source != Build(pkg, "==9.9") {
		t.Fatalf("unexpected source:\n%s", nb.Cells[Index].Source)
	}
}

func TestCheckRelocatesHeaderFromLaterIndex(t *testing.T) {
	nb := baseNotebook(
		notebook.NewCodeCell("a = 1"),
		notebook.NewCodeCell("b = 2"),
		notebook.NewCodeCell(Build(pkg, "==1.0")),
	)
	res, err := Check(nb, Options{Package: pkg})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !res.Relocated || res.Rewritten || res.Found != 4 {
		t.Fatalf("unexpected result %+v", res)
	}
	want := []string{"badges", "description", Build(pkg, "==1.0"), "a = 1", "b = 2"}
	if diff := cmp.Diff(want, snapshot(nb)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestCheckIsIdempotent(t *testing.T) {
	stale := Build(pkg, "==3.0") + "\n"
	nb := baseNotebook(
		notebook.NewCodeCell("a = 1"),
		notebook.NewCodeCell(stale),
	)
	opts := Options{Package: pkg, Version: "==9.9", Fix: true}

	first, err := Check(nb, opts)
	if err != nil || !first.Modified() {
		t.Fatalf("expected first run to modify, got %+v, %v", first, err)
	}
	after := snapshot(nb)

	second, err := Check(nb, opts)
	if err != nil {
		t.Fatalf("second run returned error: %v", err)
	}
	if second.Modified() {
		t.Fatalf("expected second run to be a no-op, got %+v", second)
	}
	if diff := cmp.Diff(after, snapshot(nb)); diff != "" {
		t.Fatalf("second run changed notebook (-first +second):\n%s", diff)
	}
}

func TestCheckDetectsHeaderOnlyInCodeCells(t *testing.T) {
	nb := baseNotebook(notebook.NewMarkdownCell(Build(pkg, "")))
	res, err := Check(nb, Options{Package: pkg})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !res.Inserted {
		t.Fatalf("expected markdown lookalike to be ignored, got %+v", res)
	}
}

func snapshot(nb *notebook.Notebook) []string {
	out := make([]string, 0, nb.Len())
	for _, c := range nb.Cells {
		out = append(out, c.Source)
	}
	return out
}
