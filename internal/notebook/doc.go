// Package notebook models Jupyter notebooks as an ordered list of cells and
// reads and writes them in the nbformat v4 JSON layout.
//
// Only the fields the hooks inspect are decoded into typed values: cell type,
// source, execution count, and the output type/name/text of each output.
// Every other key (metadata, ids, attachments, rich output bundles) is kept
// as raw JSON and written back untouched, so a repaired notebook differs from
// the original only where a cell was actually changed.
//
// Files are checked against an embedded subset of the nbformat v4 schema
// before decoding; anything that fails is reported as findings.ErrInvalidNotebook.
package notebook
