package domain

import (
	"fmt"
	"strings"
)

// MatchStatus classifies how a filename relates to the roster.
type MatchStatus int

const (
	Unmatched MatchStatus = iota
	UniqueMatch
	AmbiguousMatch
	ConflictingTokens
)

func (s MatchStatus) String() string {
	switch s {
	case Unmatched:
		return "Unmatched"
	case UniqueMatch:
		return "UniqueMatch"
	case AmbiguousMatch:
		return "AmbiguousMatch"
	case ConflictingTokens:
		return "ConflictingTokens"
	default:
		return "Unknown"
	}
}

// MatchResult is the outcome of matching one SourceFile against the roster.
// Candidates is empty for Unmatched, exactly one identity for UniqueMatch,
// and more than one (roster order) for AmbiguousMatch and ConflictingTokens.
type MatchResult struct {
	File       SourceFile
	Status     MatchStatus
	Candidates []Identity
	Reason     string
}

// Identity returns the matched identity for a UniqueMatch, or nil.
func (m MatchResult) Identity() *Identity {
	if m.Status != UniqueMatch || len(m.Candidates) != 1 {
		return nil
	}
	return &m.Candidates[0]
}

// Resolve turns an AmbiguousMatch into a UniqueMatch by picking one of the
// recorded candidates. Picking an identity that was never a candidate is an
// error: resolution chooses, it never invents.
func (m MatchResult) Resolve(identityID string) (MatchResult, error) {
	if m.Status != AmbiguousMatch {
		return m, fmt.Errorf("cannot resolve %s result for %s", m.Status, m.File.OriginalPath)
	}
	for _, c := range m.Candidates {
		if c.ID == identityID {
			return MatchResult{
				File:       m.File,
				Status:     UniqueMatch,
				Candidates: []Identity{c},
				Reason:     fmt.Sprintf("resolved manually to %s", c.DisplayName),
			}, nil
		}
	}
	return m, fmt.Errorf("identity %q is not a candidate for %s", identityID, m.File.OriginalPath)
}

// Match classifies a single file against the roster. Every call yields
// exactly one result, and the same inputs always yield the same result.
//
// Name candidates are tried longest-first. The first candidate whose lookup
// yields exactly one identity wins; the first whose lookup yields several
// identities makes the file ambiguous, with no automatic tie-breaking. A
// second unique name hit that does not overlap the first, or an embedded
// roster ID pointing at a different identity, marks the filename as
// carrying conflicting tokens.
func Match(file SourceFile, roster *Roster, ex *Extractor) MatchResult {
	candidates := ex.Extract(file)

	var (
		nameHit    *Identity
		nameWindow Candidate
		ambiguous  []*Identity
		ambigText  string
	)

scan:
	for _, cand := range candidates {
		found := roster.Lookup(cand.Text)
		switch {
		case len(found) == 0:
			continue
		case len(found) == 1:
			if nameHit == nil {
				nameHit = found[0]
				nameWindow = cand
				continue
			}
			if found[0] != nameHit && !cand.Overlaps(nameWindow) {
				// Two different identities spelled out in one filename.
				return conflictResult(file, roster, nameHit, found[0],
					fmt.Sprintf("conflicting names %q and %q", nameWindow.Text, cand.Text))
			}
		default:
			if nameHit == nil {
				ambiguous = found
				ambigText = cand.Text
				break scan
			}
		}
	}

	idHits := matchIDs(file, roster, ex)

	if nameHit != nil {
		for _, h := range idHits {
			if h.ident != nameHit {
				return conflictResult(file, roster, nameHit, h.ident,
					fmt.Sprintf("name %q and ID %s point at different identities", nameWindow.Text, h.run))
			}
		}
		return MatchResult{
			File:       file,
			Status:     UniqueMatch,
			Candidates: []Identity{*nameHit},
			Reason:     fmt.Sprintf("name match: %q", nameWindow.Text),
		}
	}

	if len(ambiguous) > 0 {
		// Surfaced for manual resolution, never guessed.
		return MatchResult{
			File:       file,
			Status:     AmbiguousMatch,
			Candidates: inRosterOrder(roster, ambiguous),
			Reason:     fmt.Sprintf("ambiguous name %q (%d candidates)", ambigText, len(ambiguous)),
		}
	}

	if len(idHits) > 1 {
		// Two embedded IDs naming different people: the same conflict as
		// two spelled-out names.
		return conflictResult(file, roster, idHits[0].ident, idHits[1].ident,
			fmt.Sprintf("conflicting IDs %s and %s", idHits[0].run, idHits[1].run))
	}

	if len(idHits) == 1 {
		return MatchResult{
			File:       file,
			Status:     UniqueMatch,
			Candidates: []Identity{*idHits[0].ident},
			Reason:     fmt.Sprintf("ID match: %s", idHits[0].run),
		}
	}

	return MatchResult{
		File:   file,
		Status: Unmatched,
		Reason: "no roster match",
	}
}

// idHit pairs a roster identity with the digit run that named it.
type idHit struct {
	ident *Identity
	run   string
}

// matchIDs looks embedded digit runs up against roster IDs. Roster IDs are
// unique, so a run resolves to at most one identity; hits for distinct
// identities are all returned, in order of appearance, so the caller can
// tell a clean ID match from a conflicting one.
func matchIDs(file SourceFile, roster *Roster, ex *Extractor) []idHit {
	var hits []idHit
	for _, digits := range ex.ExtractIDs(file) {
		ident := roster.LookupID(digits)
		if ident == nil {
			continue
		}
		dup := false
		for _, h := range hits {
			if h.ident == ident {
				dup = true
				break
			}
		}
		if !dup {
			hits = append(hits, idHit{ident: ident, run: digits})
		}
	}
	return hits
}

func conflictResult(file SourceFile, roster *Roster, a, b *Identity, reason string) MatchResult {
	return MatchResult{
		File:       file,
		Status:     ConflictingTokens,
		Candidates: inRosterOrder(roster, []*Identity{a, b}),
		Reason:     reason,
	}
}

// inRosterOrder copies candidate identities into a deterministic,
// roster-ordered slice.
func inRosterOrder(roster *Roster, found []*Identity) []Identity {
	member := make(map[*Identity]bool, len(found))
	for _, f := range found {
		member[f] = true
	}
	out := make([]Identity, 0, len(found))
	for i := range roster.identities {
		if member[&roster.identities[i]] {
			out = append(out, roster.identities[i])
		}
	}
	return out
}

// MatchAll classifies every file, preserving input order. No file is ever
// dropped: the result count always equals the file count.
func MatchAll(files []SourceFile, roster *Roster, ex *Extractor) []MatchResult {
	results := make([]MatchResult, len(files))
	for i, f := range files {
		results[i] = Match(f, roster, ex)
	}
	return results
}

// describeCandidates renders a candidate list for reasons and reports.
func describeCandidates(candidates []Identity) string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.DisplayName
	}
	return strings.Join(names, ", ")
}
