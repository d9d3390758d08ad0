package hooks

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"

	"nbhooks/internal/badges"
	"nbhooks/internal/checks"
	"nbhooks/internal/findings"
	"nbhooks/internal/header"
	"nbhooks/internal/notebook"
	"nbhooks/internal/repo"
	"nbhooks/internal/testsupport"
)

const testPackage = "devops_tests"

var testRepo = badges.Repo{Owner: "open-atmos", Name: testPackage}

type fixture struct {
	root repo.Root
	dir  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	root, err := repo.Resolve(context.Background(), repo.Options{Root: cfg.Repo.Root})
	if err != nil {
		t.Fatalf("resolve root: %v", err)
	}
	return fixture{root: root, dir: root.Path}
}

func (f fixture) write(t *testing.T, rel string, nb *notebook.Notebook) string {
	t.Helper()
	return testsupport.WriteNotebook(t, f.dir, rel, nb)
}

func (f fixture) options(fix bool) BadgeOptions {
	return BadgeOptions{
		Root:   f.root,
		Repo:   testRepo,
		Order:  checks.BadgeOrderStrict,
		Header: header.Options{Package: testPackage, Fix: fix},
	}
}

func canonicalNotebook(rel string) *notebook.Notebook {
	return testsupport.PublishedNotebook(rel, testRepo)
}

func newTestRunner(t *testing.T, out *bytes.Buffer) *Runner {
	return NewRunner(out, WithLockDir(t.TempDir()), WithLockTimeout(200*time.Millisecond))
}

func kinds(result FileResult) []error {
	out := make([]error, 0, len(result.Failures))
	for _, err := range result.Failures {
		out = append(out, findings.KindOf(err))
	}
	return out
}

func TestCheckBadgesCleanNotebookPasses(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "examples/clean.ipynb", canonicalNotebook("examples/clean.ipynb"))

	var out bytes.Buffer
	report := newTestRunner(t, &out).CheckBadges(context.Background(), []string{path}, f.options(false))

	if code := report.ExitCode(); code != ExitOK {
		t.Fatalf("got exit %d want %d; output:\n%s", code, ExitOK, out.String())
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
	if diff := cmp.Diff([]string{path}, report.Unchanged()); diff != "" {
		t.Fatalf("unchanged mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckBadgesSynthesizesMissingHeaderIdempotently(t *testing.T) {
	f := newFixture(t)
	rel := "demo.ipynb"
	nb := canonicalNotebook(rel)
	if _, err := nb.Remove(2); err != nil {
		t.Fatal(err)
	}
	nb.Cells = append(nb.Cells, notebook.NewExecutedCodeCell("print(1)", 1))
	path := f.write(t, rel, nb)

	var out bytes.Buffer
	runner := newTestRunner(t, &out)
	first := runner.CheckBadges(context.Background(), []string{path}, f.options(false))
	if code := first.ExitCode(); code != ExitFailed {
		t.Fatalf("got exit %d want %d after rewrite", code, ExitFailed)
	}
	if diff := cmp.Diff([]string{path}, first.Reformatted()); diff != "" {
		t.Fatalf("reformatted mismatch (-want +got):\n%s", diff)
	}

	saved, err := notebook.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if saved.Len() != 4 {
		t.Fatalf("got %d cells want 4", saved.Len())
	}
	if got := saved.Cells[header.Index].Source; got != header.Build(testPackage, "") {
		t.Fatalf("header not inserted at index %d: %q", header.Index, got)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	second := runner.CheckBadges(context.Background(), []string{path}, f.options(false))
	if code := second.ExitCode(); code != ExitOK {
		t.Fatalf("second run exit %d want %d", code, ExitOK)
	}
	if diff := cmp.Diff([]string{path}, second.Unchanged()); diff != "" {
		t.Fatalf("second run unchanged mismatch (-want +got):\n%s", diff)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Fatal("second run modified the file")
	}
}

func TestCheckBadgesTooFewCellsReportedOnce(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "one.ipynb", notebook.New(notebook.NewMarkdownCell(badges.Markdown("one.ipynb", testRepo))))

	var out bytes.Buffer
	report := newTestRunner(t, &out).CheckBadges(context.Background(), []string{path}, f.options(true))

	result := report.Files[0]
	if result.Header != HeaderFailed {
		t.Fatalf("got header status %q want %q", result.Header, HeaderFailed)
	}
	if got := strings.Count(out.String(), "at least 3 cells"); got != 1 {
		t.Fatalf("expected one too-few-cells line, got %d in %q", got, out.String())
	}
	if !errors.Is(result.Failures[0], findings.ErrTooFewCells) {
		t.Fatalf("first failure %v is not ErrTooFewCells", result.Failures[0])
	}
	if report.ExitCode() != ExitFailed {
		t.Fatalf("got exit %d want %d", report.ExitCode(), ExitFailed)
	}
}

func TestCheckBadgesReportsBadgeMismatch(t *testing.T) {
	f := newFixture(t)
	nb := canonicalNotebook("x.ipynb")
	nb.Cells[0].Source = "line one\nline two\nline three"
	path := f.write(t, "x.ipynb", nb)

	var out bytes.Buffer
	report := newTestRunner(t, &out).CheckBadges(context.Background(), []string{path}, f.options(false))

	if diff := cmp.Diff([]error{findings.ErrBadgeMismatch}, kinds(report.Files[0]), cmp.Comparer(func(a, b error) bool { return a == b })); diff != "" {
		t.Fatalf("failure kinds mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(out.String(), path+": ") {
		t.Fatalf("failure line not attributed to file: %q", out.String())
	}
}

func TestCheckBadgesVersionMismatchIgnoresFix(t *testing.T) {
	f := newFixture(t)
	nb := canonicalNotebook("v.ipynb")
	if _, err := nb.Remove(2); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		nb.Cells = append(nb.Cells, notebook.NewExecutedCodeCell("x = 1", i+1))
	}
	bad := strings.Replace(header.Build(testPackage, "==1.0"), "'"+testPackage+"==1.0'", "'"+testPackage+"==2.0'", 1)
	nb.Cells = append(nb.Cells, notebook.NewCodeCell(bad))
	path := f.write(t, "v.ipynb", nb)
	before, _ := os.ReadFile(path)

	for _, fix := range []bool{false, true} {
		var out bytes.Buffer
		report := newTestRunner(t, &out).CheckBadges(context.Background(), []string{path}, f.options(fix))
		result := report.Files[0]
		if result.Header != HeaderFailed {
			t.Fatalf("fix=%v: got header status %q", fix, result.Header)
		}
		if !errors.Is(result.Failures[0], findings.ErrVersionMismatch) {
			t.Fatalf("fix=%v: got %v want version mismatch", fix, result.Failures[0])
		}
	}
	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Fatal("notebook with version mismatch must not be rewritten")
	}
}

func TestCheckBadgesInvalidNotebookDoesNotStopBatch(t *testing.T) {
	f := newFixture(t)
	broken := filepath.Join(f.dir, "broken.ipynb")
	testsupport.WriteFile(t, broken, "{not json")
	good := f.write(t, "good.ipynb", canonicalNotebook("good.ipynb"))

	var out bytes.Buffer
	report := newTestRunner(t, &out).CheckBadges(context.Background(), []string{broken, good}, f.options(false))

	if len(report.Files) != 2 {
		t.Fatalf("got %d results want 2", len(report.Files))
	}
	if !errors.Is(report.Files[0].Failures[0], findings.ErrInvalidNotebook) {
		t.Fatalf("got %v want invalid notebook", report.Files[0].Failures[0])
	}
	if !report.Files[1].Passed() {
		t.Fatalf("good notebook failed: %v", report.Files[1].Failures)
	}
	if report.ExitCode() != ExitFailed {
		t.Fatalf("got exit %d want %d", report.ExitCode(), ExitFailed)
	}
}

func TestCheckBadgesLockContentionIsRepairFailure(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "locked.ipynb", canonicalNotebook("locked.ipynb"))
	lockDir := t.TempDir()

	held, err := lockPath(lockDir, path)
	if err != nil {
		t.Fatal(err)
	}
	other := flock.New(held)
	if ok, err := other.TryLock(); err != nil || !ok {
		t.Fatalf("hold lock: ok=%v err=%v", ok, err)
	}
	defer other.Unlock()

	var out bytes.Buffer
	runner := NewRunner(&out, WithLockDir(lockDir), WithLockTimeout(100*time.Millisecond))
	report := runner.CheckBadges(context.Background(), []string{path}, f.options(false))

	if code := report.ExitCode(); code != ExitRepairFailed {
		t.Fatalf("got exit %d want %d", code, ExitRepairFailed)
	}
}

func TestCheckBadgesUnwritableNotebookIsRepairFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses file permissions")
	}
	f := newFixture(t)
	nb := canonicalNotebook("ro.ipynb")
	nb.Cells[2].Source = "import sys\nif 'google.colab' in sys.modules:\n    !pip --quiet install open-atmos-jupyter-utils\n    from open_atmos_jupyter_utils import pip_install_on_colab\n    pip_install_on_colab('devops_tests-examples', 'devops_tests')"
	path := f.write(t, "ro.ipynb", nb)
	if err := os.Chmod(path, 0o444); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	report := newTestRunner(t, &out).CheckBadges(context.Background(), []string{path}, f.options(true))

	if code := report.ExitCode(); code != ExitRepairFailed {
		t.Fatalf("got exit %d want %d; output %q", code, ExitRepairFailed, out.String())
	}
	if !strings.Contains(out.String(), "not writable") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestCheckNotebooksExecutionAndOutputs(t *testing.T) {
	f := newFixture(t)
	base := func() *notebook.Notebook {
		return notebook.New(
			notebook.NewMarkdownCell("badges"),
			notebook.NewMarkdownCell("intro"),
		)
	}

	unexecuted := base()
	unexecuted.Cells = append(unexecuted.Cells, notebook.NewCodeCell("x = 1"))

	joblib := base()
	joblib.Cells = append(joblib.Cells, notebook.NewExecutedCodeCell("run()", 1,
		notebook.NewStreamOutput("stderr", "[Parallel(n_jobs=4)]: Done 4 tasks")))

	traceback := base()
	traceback.Cells = append(traceback.Cells, notebook.NewExecutedCodeCell("run()", 1,
		notebook.NewStreamOutput("stderr", "Traceback (most recent call last):")))

	paths := []string{
		f.write(t, "unexecuted.ipynb", unexecuted),
		f.write(t, "joblib.ipynb", joblib),
		f.write(t, "traceback.ipynb", traceback),
	}

	var out bytes.Buffer
	report := newTestRunner(t, &out).CheckNotebooks(context.Background(), paths, NotebookOptions{
		StderrAllowPrefixes: checks.DefaultStderrAllowPrefixes,
	})

	same := cmp.Comparer(func(a, b error) bool { return a == b })
	want := [][]error{
		{findings.ErrMissingExecutionCount},
		{},
		{findings.ErrUnexpectedOutput},
	}
	for i, result := range report.Files {
		if diff := cmp.Diff(want[i], kinds(result), same); diff != "" {
			t.Fatalf("%s kinds mismatch (-want +got):\n%s", filepath.Base(result.Path), diff)
		}
	}
	if report.FailedFiles() != 2 {
		t.Fatalf("got %d failed files want 2", report.FailedFiles())
	}
	if report.ExitCode() != ExitFailed {
		t.Fatalf("got exit %d want %d", report.ExitCode(), ExitFailed)
	}
}

func TestWriteSummary(t *testing.T) {
	report := &Report{Files: []FileResult{
		{Path: "a.ipynb", Header: HeaderReformatted},
		{Path: "b.ipynb", Header: HeaderUnchanged},
		{Path: "c.ipynb", Header: HeaderUnchanged},
		{Path: "d.ipynb", Header: HeaderFailed},
	}}
	var buf bytes.Buffer
	if err := WriteSummary(&buf, report); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{
		"\nreformatted a.ipynb\n",
		"All done!",
		"1 file reformatted, 2 files left unchanged.\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary %q missing %q", got, want)
		}
	}

	buf.Reset()
	if err := WriteSummary(&buf, &Report{Files: []FileResult{{Path: "b.ipynb", Header: HeaderUnchanged}}}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no summary without rewrites, got %q", buf.String())
	}
}

func TestExitCodeRepairTakesPrecedence(t *testing.T) {
	report := &Report{Files: []FileResult{
		{Path: "a", Failures: []error{findings.New(findings.ErrBadgeMismatch, "first-cell-badges", "x")}},
		{Path: "b", Failures: []error{findings.Wrap(findings.ErrRepair, "colab-header", "write", errors.New("disk full"))}},
	}}
	if got := report.ExitCode(); got != ExitRepairFailed {
		t.Fatalf("got %d want %d", got, ExitRepairFailed)
	}
}
