package commands

import (
	"context"
	"errors"
	"sort"
	"strings"

	"rollcall/internal/domain"
	"rollcall/internal/ports"
)

// fakeSource serves canned roster rows.
type fakeSource struct {
	rows []domain.RosterRow
	err  error
}

func (s *fakeSource) Rows() ([]domain.RosterRow, error) { return s.rows, s.err }
func (s *fakeSource) Path() string                      { return "roster.csv" }

func defaultSource() *fakeSource {
	return &fakeSource{rows: []domain.RosterRow{
		{Name: "Jane Doe", ID: "001"},
		{Name: "John Doe", ID: "002"},
	}}
}

// fakeRepo simulates a directory of files in memory.
type fakeRepo struct {
	files map[string]bool // name -> present

	applied  []domain.PlanEntry
	reverted []ports.BatchEntry
	failOn   string // source name whose rename should fail
}

func newFakeRepo(names ...string) *fakeRepo {
	r := &fakeRepo{files: make(map[string]bool)}
	for _, n := range names {
		r.files[n] = true
	}
	return r
}

func (r *fakeRepo) List(dir string, extensions []string) ([]string, error) {
	var out []string
	for name := range r.files {
		if len(extensions) == 0 {
			out = append(out, name)
			continue
		}
		for _, ext := range extensions {
			if strings.HasSuffix(name, "."+ext) {
				out = append(out, name)
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeRepo) Names(dir string) ([]string, error) {
	return r.List(dir, nil)
}

func (r *fakeRepo) Apply(ctx context.Context, dir string, entries []domain.PlanEntry) []ports.EntryResult {
	results := make([]ports.EntryResult, 0, len(entries))
	for _, e := range entries {
		r.applied = append(r.applied, e)
		if e.Action != domain.ActionRename || e.NoOp {
			results = append(results, ports.EntryResult{Entry: e})
			continue
		}
		if e.SourcePath == r.failOn {
			results = append(results, ports.EntryResult{Entry: e, Err: errors.New("permission denied")})
			continue
		}
		delete(r.files, e.SourcePath)
		r.files[e.TargetPath] = true
		results = append(results, ports.EntryResult{Entry: e, Renamed: true})
	}
	return results
}

func (r *fakeRepo) Revert(ctx context.Context, batch ports.Batch) []ports.EntryResult {
	results := make([]ports.EntryResult, 0, len(batch.Entries))
	for _, e := range batch.Entries {
		r.reverted = append(r.reverted, e)
		delete(r.files, e.TargetPath)
		r.files[e.SourcePath] = true
		results = append(results, ports.EntryResult{
			Entry:   domain.PlanEntry{SourcePath: e.TargetPath, TargetPath: e.SourcePath, Action: domain.ActionRename},
			Renamed: true,
		})
	}
	return results
}

// fakeJournal holds at most one batch in memory.
type fakeJournal struct {
	batch *ports.Batch
	err   error
}

func (j *fakeJournal) Open(path string) error { return nil }
func (j *fakeJournal) Close() error           { return nil }

func (j *fakeJournal) Record(batch ports.Batch) error {
	if j.err != nil {
		return j.err
	}
	j.batch = &batch
	return nil
}

func (j *fakeJournal) Last() (*ports.Batch, error) { return j.batch, j.err }

func (j *fakeJournal) Clear() error {
	j.batch = nil
	return nil
}
