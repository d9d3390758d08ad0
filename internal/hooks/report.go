package hooks

import (
	"fmt"
	"io"

	"nbhooks/internal/findings"
	"nbhooks/internal/textutil"
)

// Exit codes returned by the hook commands.
const (
	ExitOK           = 0
	ExitFailed       = 1
	ExitRepairFailed = 2
)

// HeaderStatus records what the header step did to a file.
type HeaderStatus string

const (
	HeaderSkipped     HeaderStatus = ""
	HeaderUnchanged   HeaderStatus = "unchanged"
	HeaderReformatted HeaderStatus = "reformatted"
	HeaderFailed      HeaderStatus = "failed"
)

// FileResult is the outcome for one notebook.
type FileResult struct {
	Path     string
	Header   HeaderStatus
	Failures []error
}

// Passed reports whether the file produced no failures.
func (r FileResult) Passed() bool {
	return len(r.Failures) == 0
}

func (r *FileResult) fail(err error) {
	r.Failures = append(r.Failures, err)
}

// Report aggregates per-file results of one hook run.
type Report struct {
	Files []FileResult
}

// Reformatted lists files whose header was rewritten on disk.
func (r *Report) Reformatted() []string {
	return r.withHeader(HeaderReformatted)
}

// Unchanged lists files whose header was already canonical.
func (r *Report) Unchanged() []string {
	return r.withHeader(HeaderUnchanged)
}

func (r *Report) withHeader(status HeaderStatus) []string {
	var out []string
	for _, f := range r.Files {
		if f.Header == status {
			out = append(out, f.Path)
		}
	}
	return out
}

// FailedFiles counts files with at least one failure.
func (r *Report) FailedFiles() int {
	n := 0
	for _, f := range r.Files {
		if !f.Passed() {
			n++
		}
	}
	return n
}

// ExitCode maps the report onto the process exit status. A repair that could
// not be written wins over ordinary failures; a rewritten file counts as a
// failure so the user re-stages it.
func (r *Report) ExitCode() int {
	code := ExitOK
	for _, f := range r.Files {
		for _, err := range f.Failures {
			if findings.IsRepairFailure(err) {
				return ExitRepairFailed
			}
			code = ExitFailed
		}
		if f.Header == HeaderReformatted {
			code = ExitFailed
		}
	}
	return code
}

// WriteSummary prints the reformat summary in the style of code formatters.
// Nothing beyond the per-file lines is printed when no file was rewritten.
func WriteSummary(w io.Writer, r *Report) error {
	reformatted := r.Reformatted()
	for _, path := range reformatted {
		if _, err := fmt.Fprintf(w, "\nreformatted %s\n", path); err != nil {
			return err
		}
	}
	if len(reformatted) == 0 {
		return nil
	}
	unchanged := len(r.Unchanged())
	_, err := fmt.Fprintf(w, "\nAll done! ✨ \U0001F370 ✨\n%d %s reformatted, %d %s left unchanged.\n",
		len(reformatted), textutil.Plural(len(reformatted), "file"),
		unchanged, textutil.Plural(unchanged, "file"))
	return err
}
