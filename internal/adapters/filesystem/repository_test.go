package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"rollcall/internal/domain"
	"rollcall/internal/ports"
)

func setupTestDir(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("content"), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return dir
}

func TestList_FiltersByExtension(t *testing.T) {
	dir := setupTestDir(t, "a.docx", "b.PDF", "c.txt", "d.docx")
	repo := NewRepository()

	names, err := repo.List(dir, []string{"docx", "pdf"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"a.docx", "b.PDF", "d.docx"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestList_NoFilterReturnsFiles(t *testing.T) {
	dir := setupTestDir(t, "a.docx", "b.txt")
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}

	names, err := NewRepository().List(dir, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("directories should be excluded: %v", names)
	}
}

func TestApply_RenamesAndReports(t *testing.T) {
	dir := setupTestDir(t, "HW1-JaneDoe.docx", "random.docx")
	repo := NewRepository()

	entries := []domain.PlanEntry{
		{SourcePath: "HW1-JaneDoe.docx", TargetPath: "001_Jane Doe.docx", Action: domain.ActionRename},
		{SourcePath: "random.docx", Action: domain.ActionSkipUnmatched},
	}

	results := repo.Apply(context.Background(), dir, entries)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Err != nil || !results[0].Renamed {
		t.Errorf("rename result = %+v", results[0])
	}
	if results[1].Renamed || results[1].Err != nil {
		t.Errorf("skip result = %+v", results[1])
	}

	if _, err := os.Stat(filepath.Join(dir, "001_Jane Doe.docx")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "HW1-JaneDoe.docx")); !os.IsNotExist(err) {
		t.Error("source file still present after rename")
	}
	if _, err := os.Stat(filepath.Join(dir, lockFileName)); !os.IsNotExist(err) {
		t.Error("lock file left behind")
	}
}

func TestApply_NeverOverwrites(t *testing.T) {
	dir := setupTestDir(t, "HW1-JaneDoe.docx", "001_Jane Doe.docx")
	repo := NewRepository()

	entries := []domain.PlanEntry{
		{SourcePath: "HW1-JaneDoe.docx", TargetPath: "001_Jane Doe.docx", Action: domain.ActionRename},
	}

	results := repo.Apply(context.Background(), dir, entries)
	if results[0].Err == nil {
		t.Fatal("expected error renaming onto an existing file")
	}
	if _, err := os.Stat(filepath.Join(dir, "HW1-JaneDoe.docx")); err != nil {
		t.Errorf("source must be untouched after refused rename: %v", err)
	}
}

func TestApply_ContinuesPastFailures(t *testing.T) {
	dir := setupTestDir(t, "b.docx")
	repo := NewRepository()

	entries := []domain.PlanEntry{
		{SourcePath: "a.docx", TargetPath: "001_A.docx", Action: domain.ActionRename}, // vanished
		{SourcePath: "b.docx", TargetPath: "002_B.docx", Action: domain.ActionRename},
	}

	results := repo.Apply(context.Background(), dir, entries)
	if results[0].Err == nil {
		t.Error("expected failure for missing source")
	}
	if results[1].Err != nil || !results[1].Renamed {
		t.Errorf("batch should continue past a failure: %+v", results[1])
	}
}

func TestApply_NoOpLeavesFileAlone(t *testing.T) {
	dir := setupTestDir(t, "001_Jane Doe.docx")
	repo := NewRepository()

	entries := []domain.PlanEntry{
		{SourcePath: "001_Jane Doe.docx", TargetPath: "001_Jane Doe.docx", Action: domain.ActionRename, NoOp: true},
	}

	results := repo.Apply(context.Background(), dir, entries)
	if results[0].Err != nil || results[0].Renamed {
		t.Errorf("no-op result = %+v", results[0])
	}
	if _, err := os.Stat(filepath.Join(dir, "001_Jane Doe.docx")); err != nil {
		t.Errorf("file missing after no-op: %v", err)
	}
}

func TestApply_CancelledContext(t *testing.T) {
	dir := setupTestDir(t, "a.docx")
	repo := NewRepository()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries := []domain.PlanEntry{
		{SourcePath: "a.docx", TargetPath: "001_A.docx", Action: domain.ActionRename},
	}
	results := repo.Apply(ctx, dir, entries)
	if results[0].Err == nil {
		t.Error("expected cancellation error")
	}
	if _, err := os.Stat(filepath.Join(dir, "a.docx")); err != nil {
		t.Errorf("file must be untouched after cancellation: %v", err)
	}
}

func TestRevert(t *testing.T) {
	dir := setupTestDir(t, "001_Jane Doe.docx")
	repo := NewRepository()

	batch := ports.Batch{
		ID:  "batch-1",
		Dir: dir,
		Entries: []ports.BatchEntry{
			{SourcePath: "HW1-JaneDoe.docx", TargetPath: "001_Jane Doe.docx"},
		},
	}

	results := repo.Revert(context.Background(), batch)
	if results[0].Err != nil || !results[0].Renamed {
		t.Fatalf("revert result = %+v", results[0])
	}
	if _, err := os.Stat(filepath.Join(dir, "HW1-JaneDoe.docx")); err != nil {
		t.Errorf("original name not restored: %v", err)
	}
}
