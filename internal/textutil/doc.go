// Package textutil provides small text helpers shared by the notebook model
// and the checks.
//
// The primary use cases are:
//   - Splitting cell sources into lines the way nbformat stores them
//   - Extracting the non-blank lines of a markdown cell
//   - Normalizing text to NFC so macOS-decomposed file names compare equal
//     to badge lines typed by hand
package textutil
