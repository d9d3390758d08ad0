package checks

import (
	"fmt"
	"strings"

	"nbhooks/internal/findings"
	"nbhooks/internal/notebook"
)

// DefaultStderrAllowPrefixes lists stderr stream prefixes that are accepted:
// joblib's parallel-progress diagnostics.
var DefaultStderrAllowPrefixes = []string{"[Parallel(n_jobs="}

// CellsExecuted fails on the first code cell with source but no recorded
// execution count.
func CellsExecuted(nb *notebook.Notebook) error {
	for i, cell := range nb.Cells {
		if !cell.IsCode() || cell.Source == "" {
			continue
		}
		if cell.ExecutionCount == nil {
			return findings.Newf(findings.ErrMissingExecutionCount, "cells-executed",
				"Cell %d does not contain output!", i)
		}
	}
	return nil
}

// ExecutionCountKeys fails on the first code cell whose execution_count key
// is absent altogether. Such notebooks fail to open in some IDEs
// (JetBrains PY-66491).
func ExecutionCountKeys(nb *notebook.Notebook) error {
	for i, cell := range nb.Cells {
		if cell.IsCode() && !cell.HasExecutionCount {
			return findings.Newf(findings.ErrMissingExecutionCount, "execution-count-key",
				"Notebook cell %d missing execution_count attribute", i)
		}
	}
	return nil
}

// CleanOutputs returns a validator rejecting error outputs and stderr stream
// outputs that do not start with one of allowPrefixes.
func CleanOutputs(allowPrefixes []string) func(*notebook.Notebook) error {
	allowed := append([]string(nil), allowPrefixes...)
	return func(nb *notebook.Notebook) error {
		for i, cell := range nb.Cells {
			if !cell.IsCode() {
				continue
			}
			for _, out := range cell.Outputs {
				if out.OutputType == "error" {
					return findings.Newf(findings.ErrUnexpectedOutput, "clean-outputs",
						"Cell %d has an error output", i)
				}
				if out.Name == "stderr" && !hasAnyPrefix(out.Text, allowed) {
					return findings.Newf(findings.ErrUnexpectedOutput, "clean-outputs",
						"Cell %d has stderr output: %s", i, firstLine(out.Text))
				}
			}
		}
		return nil
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	if len(line) > 120 {
		return fmt.Sprintf("%s...", line[:117])
	}
	return line
}
