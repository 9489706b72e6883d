package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rollcall/internal/application"
	"rollcall/internal/domain"
	"rollcall/internal/ports"
)

// ApplyResult contains the per-entry outcomes of executing a plan.
type ApplyResult struct {
	BatchID string
	Results []ports.EntryResult
	Renamed int
	Failed  int
	Skipped int
	Message string
}

// ApplyCommand executes a computed rename plan against the filesystem and
// journals the applied batch so it can be undone.
type ApplyCommand struct {
	repo    ports.SubmissionRepository
	journal ports.BatchJournal

	Dir     string
	Entries []domain.PlanEntry
}

// NewApplyCommand creates a new ApplyCommand
func NewApplyCommand(repo ports.SubmissionRepository, journal ports.BatchJournal, dir string, entries []domain.PlanEntry) *ApplyCommand {
	return &ApplyCommand{
		repo:    repo,
		journal: journal,
		Dir:     dir,
		Entries: entries,
	}
}

// Validate checks if the apply operation is valid
func (c *ApplyCommand) Validate() error {
	if err := application.ValidateRequired("directory", c.Dir); err != nil {
		return err
	}
	for _, e := range c.Entries {
		if e.Action == domain.ActionRename && !e.NoOp {
			return nil
		}
	}
	return application.ErrEmptyPlan
}

// Execute runs the apply command
func (c *ApplyCommand) Execute(ctx context.Context) (*ApplyResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	results := c.repo.Apply(ctx, c.Dir, c.Entries)

	out := &ApplyResult{
		BatchID: uuid.NewString(),
		Results: results,
	}
	batch := ports.Batch{
		ID:        out.BatchID,
		Dir:       c.Dir,
		AppliedAt: time.Now(),
	}
	for _, r := range results {
		switch {
		case r.Err != nil:
			out.Failed++
		case r.Renamed:
			out.Renamed++
			batch.Entries = append(batch.Entries, ports.BatchEntry{
				SourcePath: r.Entry.SourcePath,
				TargetPath: r.Entry.TargetPath,
			})
		default:
			out.Skipped++
		}
	}

	if len(batch.Entries) > 0 && c.journal != nil {
		if err := c.journal.Record(batch); err != nil {
			// Renames already happened; losing the undo record must not
			// hide that from the caller.
			return out, fmt.Errorf("renamed %d files but failed to journal batch: %w", out.Renamed, err)
		}
	}

	out.Message = fmt.Sprintf("Renamed %d of %d files (%d skipped, %d failed)",
		out.Renamed, len(results), out.Skipped, out.Failed)
	return out, nil
}
