package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"rollcall/internal/application"
	"rollcall/internal/domain"
	"rollcall/internal/ports"
)

// PlanSummary counts entries per terminal state.
type PlanSummary struct {
	Renames    int
	NoOps      int
	Unmatched  int
	Ambiguous  int
	Conflicts  int
	Collisions int
}

// PlanResult contains a computed rename plan plus the inputs it was derived
// from, so the caller can re-plan after resolving ambiguities.
type PlanResult struct {
	Roster  *domain.Roster
	Entries []domain.PlanEntry
	Matches []domain.MatchResult
	Summary PlanSummary
}

// PlanCommand computes a rename plan for one directory of submissions.
// The plan is a pure function of (roster, filenames, template,
// resolutions); nothing is touched on disk.
type PlanCommand struct {
	source ports.RosterSource
	repo   ports.SubmissionRepository

	Dir         string
	Template    string
	Extensions  []string
	Resolutions map[string]string // source filename -> chosen identity ID
}

// NewPlanCommand creates a new PlanCommand
func NewPlanCommand(source ports.RosterSource, repo ports.SubmissionRepository, dir, template string) *PlanCommand {
	return &PlanCommand{
		source:   source,
		repo:     repo,
		Dir:      dir,
		Template: template,
	}
}

// Validate checks if the plan operation is valid
func (c *PlanCommand) Validate() error {
	if err := application.ValidateRequired("directory", c.Dir); err != nil {
		return err
	}
	if err := application.ValidateRequired("template", c.Template); err != nil {
		return err
	}
	return nil
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) (*PlanResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	tmpl, err := domain.ParseTemplate(c.Template)
	if err != nil {
		return nil, err
	}

	rows, err := c.source.Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster %s: %w", c.source.Path(), err)
	}
	roster, err := domain.BuildRoster(rows)
	if err != nil {
		return nil, err
	}

	names, err := c.repo.List(c.Dir, c.Extensions)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	if len(names) == 0 {
		return nil, application.ErrNoSubmissions
	}

	allNames, err := c.repo.Names(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	files := make([]domain.SourceFile, len(names))
	for i, name := range names {
		files[i] = domain.NewSourceFile(name)
	}

	extractor := domain.NewExtractor(roster)
	matches := domain.MatchAll(files, roster, extractor)

	if len(c.Resolutions) > 0 {
		matches, err = applyResolutions(matches, c.Resolutions)
		if err != nil {
			return nil, err
		}
	}

	entries := domain.BuildPlan(matches, tmpl, allNames)

	return &PlanResult{
		Roster:  roster,
		Entries: entries,
		Matches: matches,
		Summary: summarize(entries),
	}, nil
}

// applyResolutions replaces ambiguous matches with the user's choices.
// A resolution naming an unknown file or a non-candidate identity is an
// error rather than being silently ignored.
func applyResolutions(matches []domain.MatchResult, resolutions map[string]string) ([]domain.MatchResult, error) {
	bySource := make(map[string]int, len(matches))
	for i, m := range matches {
		bySource[m.File.OriginalPath] = i
	}

	// Deterministic application order for stable error reporting.
	sources := make([]string, 0, len(resolutions))
	for source := range resolutions {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	out := make([]domain.MatchResult, len(matches))
	copy(out, matches)
	for _, source := range sources {
		i, ok := bySource[source]
		if !ok {
			return nil, &application.ResolveError{
				Source: source,
				ID:     resolutions[source],
				Reason: "no such file in this batch",
			}
		}
		resolved, err := out[i].Resolve(resolutions[source])
		if err != nil {
			return nil, &application.ResolveError{
				Source: source,
				ID:     resolutions[source],
				Reason: err.Error(),
			}
		}
		out[i] = resolved
	}
	return out, nil
}

func summarize(entries []domain.PlanEntry) PlanSummary {
	var s PlanSummary
	for _, e := range entries {
		switch e.Action {
		case domain.ActionRename:
			if e.NoOp {
				s.NoOps++
			} else {
				s.Renames++
			}
		case domain.ActionSkipUnmatched:
			s.Unmatched++
		case domain.ActionSkipAmbiguous:
			s.Ambiguous++
		case domain.ActionSkipConflict:
			s.Conflicts++
		case domain.ActionSkipCollision:
			s.Collisions++
		}
	}
	return s
}

// String renders a one-line summary for messages and reports.
func (s PlanSummary) String() string {
	parts := []string{fmt.Sprintf("%d to rename", s.Renames)}
	if s.NoOps > 0 {
		parts = append(parts, fmt.Sprintf("%d already named", s.NoOps))
	}
	if s.Unmatched > 0 {
		parts = append(parts, fmt.Sprintf("%d unmatched", s.Unmatched))
	}
	if s.Ambiguous > 0 {
		parts = append(parts, fmt.Sprintf("%d ambiguous", s.Ambiguous))
	}
	if s.Conflicts > 0 {
		parts = append(parts, fmt.Sprintf("%d conflicting", s.Conflicts))
	}
	if s.Collisions > 0 {
		parts = append(parts, fmt.Sprintf("%d collisions", s.Collisions))
	}
	return strings.Join(parts, ", ")
}
