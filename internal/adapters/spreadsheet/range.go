package spreadsheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CellRange is a zero-based, inclusive rectangular window over a sheet,
// parsed from an "A2:C12" style range string.
type CellRange struct {
	StartRow int
	EndRow   int
	StartCol int
	EndCol   int
}

var cellPattern = regexp.MustCompile(`^([A-Z]+)([0-9]+)$`)

// ParseRange parses "A2:C12" or "A2-C12" into a CellRange. A single cell
// like "A2" is a one-cell range.
func ParseRange(s string) (CellRange, error) {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", ":"))
	if s == "" {
		return CellRange{}, fmt.Errorf("empty range")
	}

	parts := strings.SplitN(s, ":", 2)
	startCol, startRow, err := parseCell(parts[0])
	if err != nil {
		return CellRange{}, err
	}

	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		endCol, endRow, err = parseCell(parts[1])
		if err != nil {
			return CellRange{}, err
		}
	}

	if endRow < startRow || endCol < startCol {
		return CellRange{}, fmt.Errorf("range %q is inverted", s)
	}

	return CellRange{
		StartRow: startRow,
		EndRow:   endRow,
		StartCol: startCol,
		EndCol:   endCol,
	}, nil
}

func parseCell(cell string) (col, row int, err error) {
	matches := cellPattern.FindStringSubmatch(strings.TrimSpace(cell))
	if matches == nil {
		return 0, 0, fmt.Errorf("malformed cell reference %q, expected e.g. A2", cell)
	}

	for _, c := range matches[1] {
		col = col*26 + int(c-'A') + 1
	}
	col--

	row, err = strconv.Atoi(matches[2])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("malformed row in cell reference %q", cell)
	}
	return col, row - 1, nil
}

// Rows returns the number of rows the range spans.
func (r CellRange) Rows() int {
	return r.EndRow - r.StartRow + 1
}

// Cell returns the value of the range's first column in the given sheet
// row (zero-based, absolute), or "" when the sheet is short.
func (r CellRange) Cell(sheet [][]string, row int) string {
	if row >= len(sheet) {
		return ""
	}
	cells := sheet[row]
	if r.StartCol >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[r.StartCol])
}
