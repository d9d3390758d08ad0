package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"nbhooks/internal/fileutil"
	"nbhooks/internal/findings"
)

// Read parses a notebook document from r.
func Read(r io.Reader) (*Notebook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, findings.Wrap(findings.ErrInvalidNotebook, "", "read notebook", err)
	}
	return Parse(data)
}

// Parse validates data against the nbformat schema and decodes it.
func Parse(data []byte) (*Notebook, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, findings.Wrap(findings.ErrInvalidNotebook, "", "parse notebook JSON", err)
	}
	if err := validateSchema(doc); err != nil {
		return nil, findings.Wrap(findings.ErrInvalidNotebook, "", "notebook does not match nbformat v4", err)
	}
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, findings.Wrap(findings.ErrInvalidNotebook, "", "decode notebook", err)
	}
	return &nb, nil
}

// Load reads and parses the notebook at path.
func Load(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, findings.Wrap(findings.ErrInvalidNotebook, "", "open notebook", err)
	}
	return Parse(data)
}

// Encode serializes nb the way nbformat writes files: one-space indent,
// sorted keys, non-ASCII kept literal, trailing newline.
func Encode(nb *Notebook) ([]byte, error) {
	compact, err := nb.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode notebook: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", " "); err != nil {
		return nil, fmt.Errorf("indent notebook: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write serializes nb to w.
func Write(w io.Writer, nb *Notebook) error {
	data, err := Encode(nb)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Save serializes nb and replaces the file at path. The file is written to a
// sibling temporary and renamed into place, so readers see either the old or
// the new document.
func Save(path string, nb *Notebook) error {
	data, err := Encode(nb)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("save notebook %s: %w", path, err)
	}
	return nil
}
