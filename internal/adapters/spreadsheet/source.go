package spreadsheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"rollcall/internal/domain"
	"rollcall/internal/ports"
)

// Source reads roster rows out of a spreadsheet file. The name range
// selects the cells holding display names; the optional ID range selects
// the matching IDs row by row. With no ranges, the sheet is read as
// name,id[,alias...] columns from the first row.
type Source struct {
	path      string
	nameRange string
	idRange   string
	read      func(path string) ([][]string, error)
}

// Ensure Source implements RosterSource
var _ ports.RosterSource = (*Source)(nil)

// New creates a roster source for the given spreadsheet, choosing the
// reader by file extension (.csv, .xlsx, .xlsm).
func New(path, nameRange, idRange string) (*Source, error) {
	var read func(string) ([][]string, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		read = readCSV
	case ".xlsx", ".xlsm":
		read = readXLSX
	default:
		return nil, fmt.Errorf("unsupported roster format %q (want .csv, .xlsx, or .xlsm)", filepath.Ext(path))
	}

	if nameRange == "" && idRange != "" {
		return nil, fmt.Errorf("ID range given without a name range")
	}

	return &Source{
		path:      path,
		nameRange: nameRange,
		idRange:   idRange,
		read:      read,
	}, nil
}

// Path returns the spreadsheet location.
func (s *Source) Path() string { return s.path }

// Rows reads the raw roster rows. Rows where both the name and ID cell are
// empty are skipped (trailing padding in a selected range); rows with only
// one of the two are kept, so roster validation can reject them loudly.
func (s *Source) Rows() ([]domain.RosterRow, error) {
	sheet, err := s.read(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	if s.nameRange == "" {
		return columnRows(sheet), nil
	}
	return s.rangeRows(sheet)
}

// rangeRows pairs the name range against the ID range row by row, the way
// the instructor selected them in the sheet.
func (s *Source) rangeRows(sheet [][]string) ([]domain.RosterRow, error) {
	names, err := ParseRange(s.nameRange)
	if err != nil {
		return nil, fmt.Errorf("name range: %w", err)
	}

	var ids CellRange
	hasIDs := s.idRange != ""
	if hasIDs {
		ids, err = ParseRange(s.idRange)
		if err != nil {
			return nil, fmt.Errorf("ID range: %w", err)
		}
		if ids.Rows() != names.Rows() {
			return nil, fmt.Errorf("name range spans %d rows but ID range spans %d", names.Rows(), ids.Rows())
		}
	}

	rows := make([]domain.RosterRow, 0, names.Rows())
	for i := 0; i < names.Rows(); i++ {
		name := names.Cell(sheet, names.StartRow+i)
		var id string
		if hasIDs {
			id = ids.Cell(sheet, ids.StartRow+i)
		}
		if name == "" && id == "" {
			continue
		}
		rows = append(rows, domain.RosterRow{
			Name: name,
			ID:   id,
			Line: names.StartRow + i + 1,
		})
	}
	return rows, nil
}

// columnRows reads the whole sheet as name,id[,alias...] columns. A
// leading header row is recognized by its literal column names.
func columnRows(sheet [][]string) []domain.RosterRow {
	rows := make([]domain.RosterRow, 0, len(sheet))
	for i, cells := range sheet {
		name, id := cellAt(cells, 0), cellAt(cells, 1)
		if i == 0 && strings.EqualFold(name, "name") && strings.EqualFold(id, "id") {
			continue
		}
		if name == "" && id == "" {
			continue
		}

		var aliases []string
		for _, alias := range cells[min(len(cells), 2):] {
			if alias = strings.TrimSpace(alias); alias != "" {
				aliases = append(aliases, alias)
			}
		}
		rows = append(rows, domain.RosterRow{
			Name:    name,
			ID:      id,
			Aliases: aliases,
			Line:    i + 1,
		})
	}
	return rows
}

func cellAt(cells []string, i int) string {
	if i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}
