package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"os"
)

// readCSV loads an entire CSV file as a sheet. Ragged rows are fine; range
// and column selection treat missing cells as empty.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return records, nil
}
