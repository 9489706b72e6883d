package commands

import (
	"context"
	"errors"
	"testing"

	"rollcall/internal/application"
	"rollcall/internal/domain"
)

func planEntries(t *testing.T, repo *fakeRepo, template string) []domain.PlanEntry {
	t.Helper()
	cmd := NewPlanCommand(defaultSource(), repo, "/submissions", template)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	return result.Entries
}

func TestApplyCommand_Execute(t *testing.T) {
	repo := newFakeRepo("HW1-JaneDoe.docx", "HW2-JohnDoe.docx", "random.docx")
	journal := &fakeJournal{}
	entries := planEntries(t, repo, "{id}_{name}{originalExt}")

	result, err := NewApplyCommand(repo, journal, "/submissions", entries).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Renamed != 2 || result.Failed != 0 || result.Skipped != 1 {
		t.Errorf("result = %+v", result)
	}
	if !repo.files["001_Jane Doe.docx"] || !repo.files["002_John Doe.docx"] {
		t.Errorf("files after apply: %v", repo.files)
	}
	if !repo.files["random.docx"] {
		t.Error("skipped file should be untouched")
	}

	if journal.batch == nil {
		t.Fatal("expected batch journaled")
	}
	if journal.batch.ID != result.BatchID || len(journal.batch.Entries) != 2 {
		t.Errorf("journaled batch = %+v", journal.batch)
	}
	if journal.batch.Dir != "/submissions" {
		t.Errorf("batch dir = %q", journal.batch.Dir)
	}
}

func TestApplyCommand_PerEntryFailure(t *testing.T) {
	repo := newFakeRepo("HW1-JaneDoe.docx", "HW2-JohnDoe.docx")
	repo.failOn = "HW1-JaneDoe.docx"
	journal := &fakeJournal{}
	entries := planEntries(t, repo, "{id}_{name}{originalExt}")

	result, err := NewApplyCommand(repo, journal, "/submissions", entries).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	// One failure must not abort the rest of the batch.
	if result.Renamed != 1 || result.Failed != 1 {
		t.Errorf("result = %+v", result)
	}
	if len(journal.batch.Entries) != 1 {
		t.Errorf("only successful renames belong in the journal: %+v", journal.batch)
	}
}

func TestApplyCommand_EmptyPlan(t *testing.T) {
	entries := []domain.PlanEntry{
		{SourcePath: "random.docx", Action: domain.ActionSkipUnmatched},
		{SourcePath: "ok.docx", TargetPath: "ok.docx", Action: domain.ActionRename, NoOp: true},
	}

	_, err := NewApplyCommand(newFakeRepo(), &fakeJournal{}, "/submissions", entries).Execute(context.Background())
	if !errors.Is(err, application.ErrEmptyPlan) {
		t.Errorf("expected ErrEmptyPlan, got %v", err)
	}
}

func TestApplyCommand_JournalFailureSurfaces(t *testing.T) {
	repo := newFakeRepo("HW1-JaneDoe.docx")
	journal := &fakeJournal{err: errors.New("disk full")}
	entries := planEntries(t, repo, "{id}_{name}{originalExt}")

	result, err := NewApplyCommand(repo, journal, "/submissions", entries).Execute(context.Background())
	if err == nil {
		t.Fatal("expected journal failure to surface")
	}
	if result == nil || result.Renamed != 1 {
		t.Errorf("renames happened and must still be reported: %+v", result)
	}
}
