package domain

import (
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// separatorRunes are characters that commonly stand in for spaces in
// filenames and spreadsheet cells. They are folded to a single space
// before tokenization.
const separatorRunes = "-_.,;+&'’()[]{}【】（）#"

// unicodeFolder maps fullwidth forms and compatibility characters to their
// canonical equivalents, so "ＨＷ３" and "HW3" normalize identically.
var unicodeFolder = transform.Chain(width.Fold, norm.NFKC)

// NormalizeName canonicalizes a name or filename stem for matching:
// unicode compatibility folding, lowercasing, separator punctuation folded
// to spaces, and internal whitespace runs collapsed to a single space.
func NormalizeName(s string) string {
	folded, _, err := transform.String(unicodeFolder, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if strings.ContainsRune(separatorRunes, r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// LookupKey converts a normalized name to its index key. Keys drop internal
// spaces so that "Jane Doe", "jane-doe", and "JaneDoe" all resolve to the
// same roster entry.
func LookupKey(normalized string) string {
	return strings.ReplaceAll(normalized, " ", "")
}

// fileNameReplacer folds filesystem-unsafe characters out of rendered
// target names. Path separators and colons become underscores; the rest
// are dropped.
var fileNameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"<", "",
	">", "",
	"\"", "",
	"|", "",
	"?", "",
	"*", "",
)

// SanitizeFileName scrubs characters that are illegal in filenames on
// common filesystems from a rendered target name.
func SanitizeFileName(name string) string {
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}
