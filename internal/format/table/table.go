// Package table pads rows of cells into aligned columns.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each
// column. Widths are measured in terminal cells.
func Format(rows [][]string, alignments []Alignment) []string {
	return FormatMax(rows, alignments, 0)
}

// FormatMax behaves like Format but caps every column except the last at
// maxColumn cells, truncating longer entries. A non-positive maxColumn
// disables the cap.
func FormatMax(rows [][]string, alignments []Alignment, maxColumn int) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			width := runewidth.StringWidth(cell)
			if maxColumn > 0 && c < colCount-1 && width > maxColumn {
				width = maxColumn
			}
			if width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(" ")
			}
			if c < colCount-1 && runewidth.StringWidth(cell) > widths[c] {
				cell = runewidth.Truncate(cell, widths[c], "…")
			}
			pad := widths[c] - runewidth.StringWidth(cell)
			if c < len(alignments) && alignments[c] == AlignRight {
				writeSpaces(&b, pad)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if c < len(row)-1 {
					writeSpaces(&b, pad)
				}
			}
		}
		out[i] = b.String()
	}
	return out
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
