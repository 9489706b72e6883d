package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

// SourceFile represents one input document. It is read-only once built.
type SourceFile struct {
	OriginalPath   string
	Stem           string // filename without extension
	Ext            string // extension including the leading dot
	NormalizedStem string
}

// NewSourceFile derives the stem and normalized stem from a path.
func NewSourceFile(path string) SourceFile {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return SourceFile{
		OriginalPath:   path,
		Stem:           stem,
		Ext:            ext,
		NormalizedStem: NormalizeName(stem),
	}
}

// Candidate is a normalized substring of a filename that might denote a
// roster name. Start and Tokens locate it within the tokenized stem so the
// matcher can detect disjoint hits.
type Candidate struct {
	Text   string // normalized, space-joined window
	Start  int    // index of the first token in the stem
	Tokens int    // window length in tokens
}

// Overlaps reports whether two candidates share any token position.
func (c Candidate) Overlaps(other Candidate) bool {
	return c.Start < other.Start+other.Tokens && other.Start < c.Start+c.Tokens
}

// idRunPattern captures digit runs long enough to be student IDs.
var idRunPattern = regexp.MustCompile(`\d{4,12}`)

// Extractor produces candidate name substrings from filenames. MaxWindow is
// the longest roster name's token count; windows never exceed it, which
// bounds the cost at O(tokens × MaxWindow) regardless of input shape.
type Extractor struct {
	MaxWindow int
}

// NewExtractor builds an extractor sized to the given roster.
func NewExtractor(roster *Roster) *Extractor {
	return &Extractor{MaxWindow: roster.MaxNameTokens()}
}

// Extract returns every contiguous token window of the normalized stem,
// longest windows first, ties broken by start offset. Longest-match-first
// keeps a short surname fragment from shadowing a full name that also
// appears in the filename.
func (e *Extractor) Extract(file SourceFile) []Candidate {
	tokens := strings.Fields(file.NormalizedStem)
	if len(tokens) == 0 {
		return nil
	}

	max := e.MaxWindow
	if max < 1 {
		max = 1
	}
	if max > len(tokens) {
		max = len(tokens)
	}

	candidates := make([]Candidate, 0, max*len(tokens))
	for size := max; size >= 1; size-- {
		for start := 0; start+size <= len(tokens); start++ {
			candidates = append(candidates, Candidate{
				Text:   strings.Join(tokens[start:start+size], " "),
				Start:  start,
				Tokens: size,
			})
		}
	}
	return candidates
}

// ExtractIDs returns digit runs from the raw stem that could be roster IDs,
// in order of appearance. Runs shorter than four digits are ignored; they
// are overwhelmingly assignment or version numbers.
func (e *Extractor) ExtractIDs(file SourceFile) []string {
	return idRunPattern.FindAllString(file.Stem, -1)
}
