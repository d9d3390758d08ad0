package header

import (
	"fmt"

	"nbhooks/internal/findings"
	"nbhooks/internal/notebook"
)

const (
	// Index is where the header cell belongs.
	Index = 2
	// MinCells is the smallest notebook the header check accepts.
	MinCells = 3

	checkName = "colab-header"
)

// Options parameterize Check.
type Options struct {
	// Package is the project name embedded in the install call.
	Package string
	// Version is the fallback version used when the notebook has none.
	Version string
	// Fix allows rewriting a present but non-canonical header.
	Fix bool
}

// Result describes what Check changed.
type Result struct {
	// Found is the index the header was discovered at, or -1.
	Found     int
	Inserted  bool
	Rewritten bool
	Relocated bool
	Version   string
}

// Modified reports whether the notebook was changed in memory.
func (r Result) Modified() bool {
	return r.Inserted || r.Rewritten || r.Relocated
}

// Find returns the index of the first code cell that looks like the header.
func Find(nb *notebook.Notebook) (int, bool) {
	for i, cell := range nb.Cells {
		if cell.IsCode() && Looks(cell.Source) {
			return i, true
		}
	}
	return -1, false
}

// Check validates the bootstrap header of nb and repairs it in memory.
//
// A missing header is always synthesized at Index. A present header with
// unparseable or disagreeing versions fails regardless of opts.Fix. A
// non-canonical header fails with ErrIncorrectHeader unless opts.Fix is set,
// in which case its source is rewritten. A header elsewhere is moved to Index.
func Check(nb *notebook.Notebook, opts Options) (Result, error) {
	result := Result{Found: -1}
	if nb.Len() < MinCells {
		return result, findings.Newf(findings.ErrTooFewCells, checkName,
			"Notebook should have at least %d cells, got %d", MinCells, nb.Len())
	}

	idx, ok := Find(nb)
	if !ok {
		result.Version = ResolveVersion("", opts.Version)
		cell := notebook.NewCodeCell(Build(opts.Package, result.Version))
		if err := nb.Insert(Index, cell); err != nil {
			return result, fmt.Errorf("insert header: %w", err)
		}
		result.Inserted = true
		return result, nil
	}
	result.Found = idx

	cell := nb.Cells[idx]
	examples, main, ok := ExtractVersions(cell.Source, opts.Package)
	if !ok {
		return result, findings.New(findings.ErrMalformedHeader, checkName, "Colab header is malformed")
	}
	if examples != main {
		return result, findings.Newf(findings.ErrVersionMismatch, checkName,
			"Version mismatch in header: %q != %q", examples, main)
	}

	result.Version = ResolveVersion(main, opts.Version)
	canonical := Build(opts.Package, result.Version)
	if cell.Source != canonical {
		if !opts.Fix {
			return result, findings.New(findings.ErrIncorrectHeader, checkName, "Colab header is incorrect")
		}
		cell.Source = canonical
		result.Rewritten = true
	}

	if idx != Index {
		if err := nb.Move(idx, Index); err != nil {
			return result, fmt.Errorf("relocate header: %w", err)
		}
		result.Relocated = true
	}
	return result, nil
}
