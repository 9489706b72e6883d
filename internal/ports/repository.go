package ports

import (
	"context"

	"rollcall/internal/domain"
)

// EntryResult is the per-entry outcome of executing one plan entry.
// Renamed is false for skips, no-ops, and failures.
type EntryResult struct {
	Entry   domain.PlanEntry
	Renamed bool
	Err     error
}

// SubmissionRepository defines the interface for the filesystem
// collaborator: enumerating submission files and applying rename plans.
type SubmissionRepository interface {
	// List returns submission filenames in dir whose extension is in
	// extensions (case-insensitive, leading dot optional; empty means
	// everything), sorted by name.
	List(dir string, extensions []string) ([]string, error)

	// Names returns every entry name in dir, for collision detection
	// against files the matcher never saw.
	Names(dir string) ([]string, error)

	// Apply executes a plan entry by entry. Each rename is independent:
	// a failure is recorded in its result and the batch continues.
	// Cancellation is honored between entries, never mid-rename.
	Apply(ctx context.Context, dir string, entries []domain.PlanEntry) []EntryResult

	// Revert undoes a previously applied batch, renaming targets back to
	// their sources with the same per-entry discipline as Apply.
	Revert(ctx context.Context, batch Batch) []EntryResult
}
