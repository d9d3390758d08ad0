package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"nbhooks/internal/textutil"
)

// multiline decodes an nbformat multiline string, which is stored either as
// a single string or as a list of line fragments.
func multiline(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '[' {
		var parts []string
		if err := json.Unmarshal(raw, &parts); err != nil {
			return "", err
		}
		return strings.Join(parts, ""), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

func splitSource(s string) []string {
	lines := textutil.SplitLinesKeepEnds(s)
	if lines == nil {
		return []string{}
	}
	return lines
}

// UnmarshalJSON decodes the inspected fields and keeps the raw message for
// write-back.
func (o *Output) UnmarshalJSON(data []byte) error {
	var fields struct {
		OutputType string          `json:"output_type"`
		Name       string          `json:"name"`
		Text       json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	text, err := multiline(fields.Text)
	if err != nil {
		return fmt.Errorf("output text: %w", err)
	}
	o.OutputType = fields.OutputType
	o.Name = fields.Name
	o.Text = text
	o.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the original bytes when the output was decoded from a
// file, otherwise a minimal stream output.
func (o Output) MarshalJSON() ([]byte, error) {
	if len(o.raw) > 0 {
		return o.raw, nil
	}
	fields := map[string]any{"output_type": o.OutputType}
	if o.OutputType == "stream" {
		fields["name"] = o.Name
		fields["text"] = splitSource(o.Text)
	}
	return marshalNoEscape(fields)
}

// UnmarshalJSON decodes a cell, keeping unknown keys verbatim.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var cellType string
	if raw, ok := fields["cell_type"]; ok {
		if err := json.Unmarshal(raw, &cellType); err != nil {
			return fmt.Errorf("cell_type: %w", err)
		}
		delete(fields, "cell_type")
	}
	source, err := multiline(fields["source"])
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	delete(fields, "source")

	*c = Cell{Type: CellType(cellType), Source: source}

	if raw, ok := fields["execution_count"]; ok {
		c.HasExecutionCount = true
		if !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			var n int
			if err := json.Unmarshal(raw, &n); err != nil {
				return fmt.Errorf("execution_count: %w", err)
			}
			c.ExecutionCount = &n
		}
		delete(fields, "execution_count")
	}
	if raw, ok := fields["outputs"]; ok {
		if err := json.Unmarshal(raw, &c.Outputs); err != nil {
			return fmt.Errorf("outputs: %w", err)
		}
		if c.Outputs == nil {
			c.Outputs = []Output{}
		}
		delete(fields, "outputs")
	}
	c.extra = fields
	return nil
}

// MarshalJSON encodes the cell with source split into lines.
func (c *Cell) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(c.extra)+4)
	for k, v := range c.extra {
		fields[k] = v
	}
	if _, ok := fields["metadata"]; !ok {
		fields["metadata"] = json.RawMessage(`{}`)
	}
	fields["cell_type"] = string(c.Type)
	fields["source"] = splitSource(c.Source)
	if c.Type == CellCode {
		if c.HasExecutionCount {
			fields["execution_count"] = c.ExecutionCount
		}
		outputs := c.Outputs
		if outputs == nil {
			outputs = []Output{}
		}
		fields["outputs"] = outputs
	}
	return marshalNoEscape(fields)
}

// UnmarshalJSON decodes the notebook envelope and its cells.
func (n *Notebook) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*n = Notebook{}
	if raw, ok := fields["cells"]; ok {
		if err := json.Unmarshal(raw, &n.Cells); err != nil {
			return fmt.Errorf("cells: %w", err)
		}
		delete(fields, "cells")
	}
	if raw, ok := fields["nbformat"]; ok {
		if err := json.Unmarshal(raw, &n.NBFormat); err != nil {
			return fmt.Errorf("nbformat: %w", err)
		}
		delete(fields, "nbformat")
	}
	if raw, ok := fields["nbformat_minor"]; ok {
		if err := json.Unmarshal(raw, &n.NBFormatMinor); err != nil {
			return fmt.Errorf("nbformat_minor: %w", err)
		}
		delete(fields, "nbformat_minor")
	}
	n.extra = fields
	return nil
}

// MarshalJSON encodes the notebook envelope.
func (n *Notebook) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(n.extra)+3)
	for k, v := range n.extra {
		fields[k] = v
	}
	if _, ok := fields["metadata"]; !ok {
		fields["metadata"] = json.RawMessage(`{}`)
	}
	cells := n.Cells
	if cells == nil {
		cells = []*Cell{}
	}
	fields["cells"] = cells
	fields["nbformat"] = n.NBFormat
	fields["nbformat_minor"] = n.NBFormatMinor
	return marshalNoEscape(fields)
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
