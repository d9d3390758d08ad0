package testsupport

import (
	"nbhooks/internal/badges"
	"nbhooks/internal/header"
	"nbhooks/internal/notebook"
)

// NotebookOption customizes PublishedNotebook.
type NotebookOption func(*notebookBuilder)

type notebookBuilder struct {
	header  bool
	version string
	extra   []*notebook.Cell
}

// WithoutHeader leaves out the Colab header cell.
func WithoutHeader() NotebookOption {
	return func(b *notebookBuilder) { b.header = false }
}

// WithHeaderVersion pins the header to version, e.g. "==2.31".
func WithHeaderVersion(version string) NotebookOption {
	return func(b *notebookBuilder) { b.version = version }
}

// WithCells appends cells after the standard preamble.
func WithCells(cells ...*notebook.Cell) NotebookOption {
	return func(b *notebookBuilder) { b.extra = append(b.extra, cells...) }
}

// PublishedNotebook builds a notebook that passes check-badges for rel in
// repo: badges, a descriptive markdown cell, and the canonical header for the
// repository's package.
func PublishedNotebook(rel string, repo badges.Repo, opts ...NotebookOption) *notebook.Notebook {
	b := &notebookBuilder{header: true}
	for _, opt := range opts {
		opt(b)
	}
	cells := []*notebook.Cell{
		notebook.NewMarkdownCell(badges.Markdown(rel, repo)),
		notebook.NewMarkdownCell("Describes what the example shows."),
	}
	if b.header {
		cells = append(cells, notebook.NewCodeCell(header.Build(repo.Name, b.version)))
	}
	return notebook.New(append(cells, b.extra...)...)
}
