package spreadsheet

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}
	return path
}

func TestSource_ColumnMode(t *testing.T) {
	path := writeCSV(t, "name,id\nJane Doe,001,Janey\nJohn Doe,002\n\n")

	source, err := New(path, "", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rows, err := source.Rows()
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(rows), rows)
	}
	if rows[0].Name != "Jane Doe" || rows[0].ID != "001" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if len(rows[0].Aliases) != 1 || rows[0].Aliases[0] != "Janey" {
		t.Errorf("row 0 aliases = %v", rows[0].Aliases)
	}
	if rows[1].Line != 3 {
		t.Errorf("row 1 line = %d, want 3", rows[1].Line)
	}
}

func TestSource_RangeMode(t *testing.T) {
	path := writeCSV(t, "Class Roster,,\nJane Doe,,001\nJohn Doe,,002\n,,\n")

	source, err := New(path, "A2:A4", "C2:C4")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rows, err := source.Rows()
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows (empty tail skipped), got %d: %+v", len(rows), rows)
	}
	if rows[0].Name != "Jane Doe" || rows[0].ID != "001" || rows[0].Line != 2 {
		t.Errorf("row 0 = %+v", rows[0])
	}
}

func TestSource_RangeMode_NameOnly(t *testing.T) {
	path := writeCSV(t, "Jane Doe\nJohn Doe\n")

	source, err := New(path, "A1:A2", "")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rows, err := source.Rows()
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestSource_MismatchedRanges(t *testing.T) {
	path := writeCSV(t, "Jane Doe,001\n")

	source, err := New(path, "A1:A5", "B1:B3")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := source.Rows(); err == nil {
		t.Error("expected error for mismatched range spans")
	}
}

func TestSource_PartialRowSurvivesToValidation(t *testing.T) {
	path := writeCSV(t, "Jane Doe,,\nJohn Doe,,002\n")

	source, err := New(path, "A1:A2", "C1:C2")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rows, err := source.Rows()
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	// Jane has a name but no ID: the source must hand it on so roster
	// validation can reject it, not swallow it.
	if len(rows) != 2 || rows[0].ID != "" || rows[0].Name != "Jane Doe" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New("roster.ods", "", ""); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := New("roster.csv", "", "C2:C12"); err == nil {
		t.Error("expected error for ID range without name range")
	}
}
