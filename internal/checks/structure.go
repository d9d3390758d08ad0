package checks

import (
	"strings"

	"nbhooks/internal/badges"
	"nbhooks/internal/findings"
	"nbhooks/internal/notebook"
	"nbhooks/internal/textutil"
)

// MinCells is the minimum number of cells a published notebook carries.
const MinCells = 3

// BadgeOrder selects how first-cell badges are compared.
type BadgeOrder string

const (
	// BadgeOrderStrict requires preview, mybinder, Colab in that order.
	BadgeOrderStrict BadgeOrder = "strict"
	// BadgeOrderAny accepts the three badges in any order.
	BadgeOrderAny BadgeOrder = "any"
)

// ParseBadgeOrder maps a config or flag value onto a BadgeOrder.
func ParseBadgeOrder(value string) (BadgeOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "strict", "ordered":
		return BadgeOrderStrict, true
	case "any", "tolerant", "unordered":
		return BadgeOrderAny, true
	default:
		return "", false
	}
}

// AtLeastThreeCells fails when nb has fewer than MinCells cells.
func AtLeastThreeCells(nb *notebook.Notebook) error {
	if nb.Len() < MinCells {
		return findings.Newf(findings.ErrTooFewCells, "min-cells",
			"Notebook should have at least %d cells, got %d", MinCells, nb.Len())
	}
	return nil
}

// FirstCellBadges checks that cell 0 is markdown whose non-blank lines are
// exactly the expected badges.
func FirstCellBadges(nb *notebook.Notebook, expected []string, order BadgeOrder) error {
	const check = "first-cell-badges"
	if nb.Len() < 1 {
		return findings.New(findings.ErrTooFewCells, check, "Notebook has no cells")
	}
	cell := nb.Cells[0]
	if !cell.IsMarkdown() {
		return findings.New(findings.ErrWrongCellType, check, "First cell is not a markdown cell")
	}

	lines := textutil.NonBlankLines(textutil.NFC(cell.Source))
	if len(lines) != len(expected) {
		return findings.Newf(findings.ErrBadgeMismatch, check,
			"First cell does not contain exactly %d lines (badges), got %d", len(expected), len(lines))
	}

	if order == BadgeOrderAny {
		present := make(map[string]struct{}, len(lines))
		for _, line := range lines {
			present[line] = struct{}{}
		}
		var missing []string
		for i, badge := range expected {
			if _, ok := present[textutil.NFC(badge)]; !ok {
				missing = append(missing, badgeLabel(i))
			}
		}
		if len(missing) > 0 {
			return findings.Newf(findings.ErrBadgeMismatch, check,
				"Missing badges: %s", strings.Join(missing, ", "))
		}
		return nil
	}

	for i, badge := range expected {
		if lines[i] != textutil.NFC(badge) {
			return findings.Newf(findings.ErrBadgeMismatch, check,
				"%s badge does not match %s badge", ordinal(i), badgeLabel(i))
		}
	}
	return nil
}

// SecondCellMarkdown checks that cell 1 is markdown; it is meant to describe
// what the example is about.
func SecondCellMarkdown(nb *notebook.Notebook) error {
	const check = "second-cell-markdown"
	if nb.Len() < 2 {
		return findings.New(findings.ErrTooFewCells, check, "Notebook has no second cell")
	}
	if cell := nb.Cells[1]; !cell.IsMarkdown() {
		return findings.Newf(findings.ErrWrongCellType, check,
			"Second cell is not a markdown cell (got %s)", cell.Type)
	}
	return nil
}

func badgeLabel(i int) string {
	if i >= 0 && i < len(badges.Labels) {
		return badges.Labels[i]
	}
	return "expected"
}

func ordinal(i int) string {
	switch i {
	case 0:
		return "First"
	case 1:
		return "Second"
	case 2:
		return "Third"
	default:
		return "Next"
	}
}
