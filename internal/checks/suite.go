package checks

import (
	"nbhooks/internal/badges"
	"nbhooks/internal/notebook"
)

// Check is a named validator.
type Check struct {
	Name string
	Run  func(*notebook.Notebook) error
}

// BadgeOptions parameterize the badge suite for one notebook.
type BadgeOptions struct {
	// Path is the notebook path relative to the repository root, with
	// forward slashes, as it appears in badge URLs.
	Path  string
	Repo  badges.Repo
	Order BadgeOrder
}

// BadgeSuite returns the structural checks run by check-badges.
func BadgeSuite(opts BadgeOptions) []Check {
	expected := badges.Expected(opts.Path, opts.Repo)
	return []Check{
		{Name: "min-cells", Run: AtLeastThreeCells},
		{Name: "first-cell-badges", Run: func(nb *notebook.Notebook) error {
			return FirstCellBadges(nb, expected, opts.Order)
		}},
		{Name: "second-cell-markdown", Run: SecondCellMarkdown},
	}
}

// NotebookOptions parameterize the output/plotting suite.
type NotebookOptions struct {
	StderrAllowPrefixes []string
}

// NotebookSuite returns the execution and output checks run by
// check-notebooks.
func NotebookSuite(opts NotebookOptions) []Check {
	allow := opts.StderrAllowPrefixes
	if allow == nil {
		allow = DefaultStderrAllowPrefixes
	}
	return []Check{
		{Name: "cells-executed", Run: CellsExecuted},
		{Name: "execution-count-key", Run: ExecutionCountKeys},
		{Name: "clean-outputs", Run: CleanOutputs(allow)},
		{Name: "show-plot", Run: ShowPlotUsed},
		{Name: "show-anim", Run: ShowAnimUsed},
	}
}
