package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SplitLinesKeepEnds splits s after every newline, keeping the terminator on
// each element. The final element has no newline unless s ended with one, in
// which case no empty trailing element is produced. Returns nil for "".
func SplitLinesKeepEnds(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// NonBlankLines returns the lines of s with surrounding whitespace removed,
// skipping lines that are empty after trimming.
func NonBlankLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// NFC returns s in Unicode normalization form C.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// Plural returns word with an "s" appended unless n is exactly one.
func Plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
