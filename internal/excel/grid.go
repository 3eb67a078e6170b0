package excel

import (
	"strings"
	"unicode"
)

// Grid is a sheet read row by row. Rows may be ragged until resolved.
type Grid [][]string

// Cell returns the value at (row, col) or "" when out of range.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}

// Width returns the length of the longest row.
func (g Grid) Width() int {
	w := 0
	for _, r := range g {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// MergeRegion is a rectangular merge, zero-based and inclusive on both ends.
type MergeRegion struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// ResolveMerges copies the top-left value of every region into each empty
// cell it covers and returns a rectangular grid. Cells that already hold a
// value are left alone; a region whose top-left cell is empty is skipped.
func ResolveMerges(g Grid, regions []MergeRegion) Grid {
	height := len(g)
	width := g.Width()
	for _, m := range regions {
		if m.EndRow+1 > height {
			height = m.EndRow + 1
		}
		if m.EndCol+1 > width {
			width = m.EndCol + 1
		}
	}

	out := make(Grid, height)
	for r := range out {
		row := make([]string, width)
		if r < len(g) {
			copy(row, g[r])
		}
		out[r] = row
	}

	for _, m := range regions {
		if m.StartRow < 0 || m.StartCol < 0 || m.EndRow < m.StartRow || m.EndCol < m.StartCol {
			continue
		}
		seed := out[m.StartRow][m.StartCol]
		if seed == "" {
			continue
		}
		for r := m.StartRow; r <= m.EndRow; r++ {
			for c := m.StartCol; c <= m.EndCol; c++ {
				if out[r][c] == "" {
					out[r][c] = seed
				}
			}
		}
	}
	return out
}

// stripSpace removes every whitespace rune, so "현 재 고" compares equal to "현재고".
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// StripSpace is exported for callers that match names the same way the parsers do.
func StripSpace(s string) string { return stripSpace(s) }

func findHeaderRow(g Grid, match func(row []string) bool) int {
	for i, row := range g {
		if match(row) {
			return i
		}
	}
	return -1
}

func rowContains(row []string, marker string) bool {
	for _, c := range row {
		if strings.Contains(c, marker) {
			return true
		}
	}
	return false
}

// columnIndex returns the first column whose whitespace-stripped header
// contains any of the keywords, or -1.
func columnIndex(header []string, keywords ...string) int {
	for i, cell := range header {
		n := stripSpace(cell)
		for _, k := range keywords {
			if strings.Contains(n, k) {
				return i
			}
		}
	}
	return -1
}

// ColumnIndex is columnIndex for other importers sharing the header rules.
func ColumnIndex(header []string, keywords ...string) int {
	return columnIndex(header, keywords...)
}

// FindHeaderRow returns the first row containing every marker, or -1.
func FindHeaderRow(g Grid, markers ...string) int {
	return findHeaderRow(g, func(row []string) bool {
		for _, m := range markers {
			if !rowContains(row, m) {
				return false
			}
		}
		return true
	})
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
