package domain

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Template placeholders recognized by ParseTemplate.
const (
	PlaceholderName = "name"
	PlaceholderID   = "id"
	PlaceholderExt  = "originalExt"
	PlaceholderSeq  = "seq"
)

// templateSegment is either a literal run or a placeholder name.
type templateSegment struct {
	literal     string
	placeholder string
}

// NameTemplate is a parsed output-name pattern, e.g. "{id}_{name}{originalExt}".
type NameTemplate struct {
	raw      string
	segments []templateSegment
	hasSeq   bool
}

// ParseTemplate validates a template string. Unknown placeholders and
// unbalanced braces fail with *InvalidTemplateError before any file is
// touched.
func ParseTemplate(raw string) (*NameTemplate, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &InvalidTemplateError{Template: raw, Reason: "template is empty"}
	}

	t := &NameTemplate{raw: raw}
	rest := raw
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if strings.IndexByte(rest, '}') >= 0 {
				return nil, &InvalidTemplateError{Template: raw, Reason: "unbalanced '}'"}
			}
			if rest != "" {
				t.segments = append(t.segments, templateSegment{literal: rest})
			}
			break
		}
		if open > 0 {
			t.segments = append(t.segments, templateSegment{literal: rest[:open]})
		}
		rest = rest[open+1:]
		closing := strings.IndexByte(rest, '}')
		if closing < 0 {
			return nil, &InvalidTemplateError{Template: raw, Reason: "unbalanced '{'"}
		}
		name := rest[:closing]
		switch name {
		case PlaceholderName, PlaceholderID, PlaceholderExt:
		case PlaceholderSeq:
			t.hasSeq = true
		default:
			return nil, &InvalidTemplateError{Template: raw, Reason: fmt.Sprintf("unknown placeholder {%s}", name)}
		}
		t.segments = append(t.segments, templateSegment{placeholder: name})
		rest = rest[closing+1:]
	}

	return t, nil
}

// HasSeq reports whether the template declares the {seq} disambiguator.
func (t *NameTemplate) HasSeq() bool { return t.hasSeq }

// String returns the raw template.
func (t *NameTemplate) String() string { return t.raw }

// Render produces the target filename for an identity. seq is the 1-based
// claim number on a contended target: the first claimant renders {seq} as
// nothing, later ones as " (n)". The result is scrubbed of characters that
// are illegal in filenames.
func (t *NameTemplate) Render(ident Identity, ext string, seq int) string {
	var b strings.Builder
	for _, seg := range t.segments {
		switch seg.placeholder {
		case "":
			b.WriteString(seg.literal)
		case PlaceholderName:
			b.WriteString(ident.DisplayName)
		case PlaceholderID:
			b.WriteString(ident.ID)
		case PlaceholderExt:
			b.WriteString(ext)
		case PlaceholderSeq:
			if seq > 1 {
				fmt.Fprintf(&b, " (%d)", seq)
			}
		}
	}
	return SanitizeFileName(b.String())
}

// Action is the terminal state of one plan entry.
type Action int

const (
	ActionRename Action = iota
	ActionSkipUnmatched
	ActionSkipAmbiguous
	ActionSkipConflict
	ActionSkipCollision
)

func (a Action) String() string {
	switch a {
	case ActionRename:
		return "Rename"
	case ActionSkipUnmatched:
		return "SkipUnmatched"
	case ActionSkipAmbiguous:
		return "SkipAmbiguous"
	case ActionSkipConflict:
		return "SkipConflict"
	case ActionSkipCollision:
		return "SkipCollision"
	default:
		return "Unknown"
	}
}

// IsSkip reports whether the action excludes the entry from execution.
func (a Action) IsSkip() bool { return a != ActionRename }

// PlanEntry maps one source file to its planned outcome. For ActionRename,
// TargetPath is set and NoOp marks an already-correctly-named file the
// executor can satisfy without touching the filesystem.
type PlanEntry struct {
	SourcePath string
	TargetPath string
	Identity   *Identity
	Action     Action
	Reason     string
	NoOp       bool
}

// BuildPlan turns match results into a deterministic rename plan.
//
// existingNames are the names currently present in the target directory
// (including files the matcher never saw); a rendered target that lands on
// one of them, or on another entry's source, is a collision — never an
// overwrite. Contended targets are disambiguated with {seq} when the
// template declares it, otherwise every contender is downgraded to
// SkipCollision. Entries come back sorted by SourcePath.
func BuildPlan(matches []MatchResult, tmpl *NameTemplate, existingNames []string) []PlanEntry {
	entries := make([]PlanEntry, 0, len(matches))

	// Deterministic processing order regardless of enumeration order.
	ordered := make([]MatchResult, len(matches))
	copy(ordered, matches)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].File.OriginalPath < ordered[j].File.OriginalPath
	})

	type renameCandidate struct {
		index int // position in entries
		match MatchResult
	}
	var renames []renameCandidate

	for _, m := range ordered {
		entry := PlanEntry{SourcePath: m.File.OriginalPath, Reason: m.Reason}
		switch m.Status {
		case UniqueMatch:
			entry.Identity = m.Identity()
			entry.Action = ActionRename
			renames = append(renames, renameCandidate{index: len(entries), match: m})
		case AmbiguousMatch:
			entry.Action = ActionSkipAmbiguous
			entry.Reason = fmt.Sprintf("%s: %s", m.Reason, describeCandidates(m.Candidates))
		case ConflictingTokens:
			entry.Action = ActionSkipConflict
		default:
			entry.Action = ActionSkipUnmatched
		}
		entries = append(entries, entry)
	}

	sources := make(map[string]bool, len(entries))
	for _, e := range entries {
		sources[e.SourcePath] = true
	}

	// First pass: tentative targets without the ordinal.
	claims := make(map[string][]int) // target -> indices into renames
	for i, rc := range renames {
		target := renderTarget(rc.match, tmpl, 1)
		claims[target] = append(claims[target], i)
	}

	targets := make([]string, len(renames))
	for target, idxs := range claims {
		if len(idxs) == 1 {
			targets[idxs[0]] = target
			continue
		}
		if !tmpl.HasSeq() {
			for _, i := range idxs {
				e := &entries[renames[i].index]
				e.Action = ActionSkipCollision
				e.Reason = fmt.Sprintf("%d files contend for %q and template has no {seq}", len(idxs), filepath.Base(target))
			}
			continue
		}
		// Claimants are already in SourcePath order; number them 1..n.
		for seq, i := range idxs {
			targets[i] = renderTarget(renames[i].match, tmpl, seq+1)
		}
	}

	// Second pass: reject targets that land on foreign files. A target
	// equal to another plan source would need swap sequencing in the
	// executor; those are rejected as collisions instead.
	finalClaims := make(map[string]int)
	for i, rc := range renames {
		e := &entries[rc.index]
		if e.Action != ActionRename {
			continue
		}
		target := targets[i]

		if prev, taken := finalClaims[target]; taken {
			for _, j := range []int{prev, i} {
				pe := &entries[renames[j].index]
				pe.Action = ActionSkipCollision
				pe.Reason = fmt.Sprintf("target %q claimed twice even with {seq}", filepath.Base(target))
			}
			continue
		}
		finalClaims[target] = i

		if target == rc.match.File.OriginalPath {
			e.TargetPath = target
			e.NoOp = true
			e.Reason = "already correctly named"
			continue
		}
		if sources[target] {
			e.Action = ActionSkipCollision
			e.Reason = fmt.Sprintf("target %q is another file in this batch", filepath.Base(target))
			continue
		}
		if containsName(existingNames, filepath.Base(target)) {
			e.Action = ActionSkipCollision
			e.Reason = fmt.Sprintf("target %q already exists", filepath.Base(target))
			continue
		}
		e.TargetPath = target
	}

	return entries
}

// renderTarget renders the target path next to the source file.
func renderTarget(m MatchResult, tmpl *NameTemplate, seq int) string {
	name := tmpl.Render(*m.Identity(), m.File.Ext, seq)
	return filepath.Join(filepath.Dir(m.File.OriginalPath), name)
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
