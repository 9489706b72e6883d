package commands

import (
	"context"
	"fmt"

	"rollcall/internal/application"
	"rollcall/internal/ports"
)

// UndoResult contains the outcome of reverting the last applied batch.
type UndoResult struct {
	BatchID  string
	Results  []ports.EntryResult
	Reverted int
	Failed   int
	Message  string
}

// UndoCommand reverses the most recently applied batch, entry by entry.
type UndoCommand struct {
	repo    ports.SubmissionRepository
	journal ports.BatchJournal
}

// NewUndoCommand creates a new UndoCommand
func NewUndoCommand(repo ports.SubmissionRepository, journal ports.BatchJournal) *UndoCommand {
	return &UndoCommand{repo: repo, journal: journal}
}

// Execute runs the undo command
func (c *UndoCommand) Execute(ctx context.Context) (*UndoResult, error) {
	batch, err := c.journal.Last()
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	if batch == nil || len(batch.Entries) == 0 {
		return nil, application.ErrNothingToUndo
	}

	results := c.repo.Revert(ctx, *batch)

	out := &UndoResult{BatchID: batch.ID, Results: results}
	for _, r := range results {
		if r.Err != nil {
			out.Failed++
		} else if r.Renamed {
			out.Reverted++
		}
	}

	// The batch is spent either way: a partial revert cannot be replayed
	// safely, and per-entry failures were already surfaced.
	if err := c.journal.Clear(); err != nil {
		return out, fmt.Errorf("failed to clear journal: %w", err)
	}

	out.Message = fmt.Sprintf("Reverted %d of %d renames", out.Reverted, len(batch.Entries))
	return out, nil
}
