package notebook

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CellType names the kind of a notebook cell.
type CellType string

const (
	CellMarkdown CellType = "markdown"
	CellCode     CellType = "code"
	CellRaw      CellType = "raw"
)

// Output is one recorded output of a code cell.
type Output struct {
	OutputType string
	// Name is "stdout" or "stderr" for stream outputs.
	Name string
	// Text is the stream text with list form joined.
	Text string

	raw json.RawMessage
}

// Cell is a single notebook cell.
type Cell struct {
	Type   CellType
	Source string
	// ExecutionCount is nil when the cell was never run.
	ExecutionCount *int
	// HasExecutionCount reports whether the execution_count key is present
	// at all, independent of its value.
	HasExecutionCount bool
	Outputs           []Output

	extra map[string]json.RawMessage
}

// Notebook is an ordered sequence of cells plus document-level fields.
type Notebook struct {
	Cells         []*Cell
	NBFormat      int
	NBFormatMinor int

	extra map[string]json.RawMessage
}

// New returns an empty nbformat 4.5 notebook.
func New(cells ...*Cell) *Notebook {
	return &Notebook{
		Cells:         cells,
		NBFormat:      4,
		NBFormatMinor: 5,
		extra:         map[string]json.RawMessage{"metadata": json.RawMessage(`{}`)},
	}
}

// NewMarkdownCell builds a markdown cell with empty metadata.
func NewMarkdownCell(source string) *Cell {
	return &Cell{
		Type:   CellMarkdown,
		Source: source,
		extra:  map[string]json.RawMessage{"metadata": json.RawMessage(`{}`)},
	}
}

// NewCodeCell builds an unexecuted code cell with no outputs.
func NewCodeCell(source string) *Cell {
	return &Cell{
		Type:              CellCode,
		Source:            source,
		HasExecutionCount: true,
		Outputs:           []Output{},
		extra:             map[string]json.RawMessage{"metadata": json.RawMessage(`{}`)},
	}
}

// NewExecutedCodeCell builds a code cell that records execution count n.
func NewExecutedCodeCell(source string, n int, outputs ...Output) *Cell {
	cell := NewCodeCell(source)
	cell.ExecutionCount = &n
	if outputs != nil {
		cell.Outputs = outputs
	}
	return cell
}

// NewStreamOutput builds a stream output on the named stream.
func NewStreamOutput(name, text string) Output {
	return Output{OutputType: "stream", Name: name, Text: text}
}

// NewErrorOutput builds an error output.
func NewErrorOutput(ename, evalue string) Output {
	raw, _ := json.Marshal(map[string]any{
		"output_type": "error",
		"ename":       ename,
		"evalue":      evalue,
		"traceback":   []string{},
	})
	return Output{OutputType: "error", raw: raw}
}

// Clone returns a copy of the cell that shares no mutable state with c.
func (c *Cell) Clone() *Cell {
	out := *c
	if c.ExecutionCount != nil {
		n := *c.ExecutionCount
		out.ExecutionCount = &n
	}
	if c.Outputs != nil {
		out.Outputs = append([]Output(nil), c.Outputs...)
	}
	if c.extra != nil {
		out.extra = make(map[string]json.RawMessage, len(c.extra))
		for k, v := range c.extra {
			out.extra[k] = v
		}
	}
	return &out
}

// IsCode reports whether the cell is a code cell.
func (c *Cell) IsCode() bool { return c.Type == CellCode }

// IsMarkdown reports whether the cell is a markdown cell.
func (c *Cell) IsMarkdown() bool { return c.Type == CellMarkdown }

// Len returns the number of cells.
func (n *Notebook) Len() int { return len(n.Cells) }

// Insert places cell at index i, shifting later cells. A new cell receives an
// id when the notebook format requires one.
func (n *Notebook) Insert(i int, cell *Cell) error {
	if i < 0 || i > len(n.Cells) {
		return fmt.Errorf("insert cell: index %d out of range [0,%d]", i, len(n.Cells))
	}
	n.ensureCellID(cell)
	n.Cells = append(n.Cells, nil)
	copy(n.Cells[i+1:], n.Cells[i:])
	n.Cells[i] = cell
	return nil
}

// Remove deletes and returns the cell at index i.
func (n *Notebook) Remove(i int) (*Cell, error) {
	if i < 0 || i >= len(n.Cells) {
		return nil, fmt.Errorf("remove cell: index %d out of range [0,%d)", i, len(n.Cells))
	}
	cell := n.Cells[i]
	n.Cells = append(n.Cells[:i], n.Cells[i+1:]...)
	return cell, nil
}

// Move relocates the cell at index from to index to by removing and then
// reinserting it.
func (n *Notebook) Move(from, to int) error {
	if from == to {
		return nil
	}
	cell, err := n.Remove(from)
	if err != nil {
		return err
	}
	if to > len(n.Cells) {
		to = len(n.Cells)
	}
	n.Cells = append(n.Cells, nil)
	copy(n.Cells[to+1:], n.Cells[to:])
	n.Cells[to] = cell
	return nil
}

// ensureCellID assigns an 8-character id to cells that lack one in
// notebooks at format 4.5 or later.
func (n *Notebook) ensureCellID(cell *Cell) {
	if n.NBFormat < 4 || (n.NBFormat == 4 && n.NBFormatMinor < 5) {
		return
	}
	if cell.extra == nil {
		cell.extra = map[string]json.RawMessage{}
	}
	if _, ok := cell.extra["id"]; ok {
		return
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	raw, _ := json.Marshal(id)
	cell.extra["id"] = raw
}

// ID returns the cell id, or "" when absent.
func (c *Cell) ID() string {
	raw, ok := c.extra["id"]
	if !ok {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return ""
	}
	return id
}
