// Package header recognizes, builds, and repairs the Colab bootstrap cell.
//
// The bootstrap cell is a code cell that pins the threading layer, detects
// the hosted Colab runtime, installs the open-atmos-jupyter-utils helper, and
// calls pip_install_on_colab with two version-qualified package names: the
// "-examples" package and the main package. Published notebooks carry it at
// index 2, right after the badge cell and the description cell.
//
// Each step is a separate function so it can be tested alone:
//
//	Looks            content-based recognition (no fixed position)
//	Build            canonical source for (package, version)
//	ExtractVersions  the two version suffixes of an existing cell
//	ResolveVersion   existing version, then supplied fallback, then ""
//	Check            validate, optionally rewrite, and relocate
//
// Check only mutates the in-memory notebook; persisting is the caller's job.
package header
