package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"rollcall/internal/domain"
	"rollcall/internal/ports"
)

// lockFileName is created inside the batch directory while a batch is
// being applied or reverted, so two rollcall processes cannot interleave
// renames in the same directory.
const lockFileName = ".rollcall.lock"

// Repository implements ports.SubmissionRepository on the local filesystem
type Repository struct{}

// Ensure Repository implements SubmissionRepository
var _ ports.SubmissionRepository = (*Repository)(nil)

// NewRepository creates a new filesystem repository
func NewRepository() *Repository {
	return &Repository{}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}

// List returns submission filenames in dir whose extension is in
// extensions, sorted by name. Directories and the batch lock file are
// never submissions.
func (r *Repository) List(dir string, extensions []string) ([]string, error) {
	dir = ExpandPath(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == lockFileName {
			continue
		}
		if len(allowed) > 0 {
			ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
			if !allowed[ext] {
				continue
			}
		}
		names = append(names, entry.Name())
	}

	sort.Strings(names)
	return names, nil
}

// Names returns every entry name in dir, files and directories alike.
func (r *Repository) Names(dir string) ([]string, error) {
	entries, err := os.ReadDir(ExpandPath(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Apply executes the plan entry by entry. Failures are per-entry and never
// abort the batch; cancellation is honored between entries only.
func (r *Repository) Apply(ctx context.Context, dir string, entries []domain.PlanEntry) []ports.EntryResult {
	dir = ExpandPath(dir)
	results := make([]ports.EntryResult, 0, len(entries))

	lock := flock.New(filepath.Join(dir, lockFileName))
	locked, err := lock.TryLock()
	if err == nil && !locked {
		err = fmt.Errorf("directory %s is locked by another batch", dir)
	}
	if err != nil {
		for _, e := range entries {
			results = append(results, ports.EntryResult{Entry: e, Err: err})
		}
		return results
	}
	defer func() {
		lock.Unlock()
		os.Remove(lock.Path())
	}()

	for _, e := range entries {
		if ctx.Err() != nil {
			results = append(results, ports.EntryResult{Entry: e, Err: ctx.Err()})
			continue
		}
		results = append(results, r.applyEntry(dir, e))
	}
	return results
}

func (r *Repository) applyEntry(dir string, e domain.PlanEntry) ports.EntryResult {
	if e.Action.IsSkip() {
		return ports.EntryResult{Entry: e}
	}
	if e.NoOp {
		return ports.EntryResult{Entry: e}
	}
	err := renameNoClobber(
		filepath.Join(dir, filepath.Base(e.SourcePath)),
		filepath.Join(dir, filepath.Base(e.TargetPath)),
	)
	if err != nil {
		return ports.EntryResult{Entry: e, Err: err}
	}
	return ports.EntryResult{Entry: e, Renamed: true}
}

// Revert renames batch targets back to their sources, with the same
// per-entry discipline as Apply.
func (r *Repository) Revert(ctx context.Context, batch ports.Batch) []ports.EntryResult {
	plan := make([]domain.PlanEntry, 0, len(batch.Entries))
	for _, e := range batch.Entries {
		plan = append(plan, domain.PlanEntry{
			SourcePath: e.TargetPath,
			TargetPath: e.SourcePath,
			Action:     domain.ActionRename,
			Reason:     "undo",
		})
	}
	return r.Apply(ctx, batch.Dir, plan)
}

// renameNoClobber renames source to target, refusing to overwrite. The
// planner already screens collisions; this guards against files that
// appeared between planning and execution.
func renameNoClobber(source, target string) error {
	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("target already exists: %s", filepath.Base(target))
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat target: %w", err)
	}
	if err := os.Rename(source, target); err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}
	return nil
}
