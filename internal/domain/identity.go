package domain

import (
	"fmt"
	"strings"
)

// RosterRow is one raw record from a roster source (spreadsheet cell pair)
// before validation.
type RosterRow struct {
	Name    string
	ID      string
	Aliases []string
	Line    int // 1-based row position in the source, for error messages
}

// Identity is one validated roster entry. Identities are immutable after
// roster construction.
type Identity struct {
	ID          string
	DisplayName string
	Aliases     []string
}

// Roster is the authoritative set of identities filenames are matched
// against. Lookup goes through a normalized-name index built once at
// construction; multiple identities may share a name fragment.
type Roster struct {
	identities []Identity
	byName     map[string][]*Identity
	byID       map[string]*Identity
	maxTokens  int
}

// BuildRoster validates raw rows into a Roster. A row lacking a name or ID,
// or carrying an ID already seen, fails with *MalformedRosterError:
// duplicate IDs indicate a corrupted source and are never silently
// deduplicated.
func BuildRoster(rows []RosterRow) (*Roster, error) {
	r := &Roster{
		identities: make([]Identity, 0, len(rows)),
		byName:     make(map[string][]*Identity, len(rows)),
		byID:       make(map[string]*Identity, len(rows)),
	}

	// byID is only filled once the identities slice stops growing, so
	// duplicate detection needs its own set during validation.
	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		line := row.Line
		if line == 0 {
			line = i + 1
		}

		name := strings.TrimSpace(row.Name)
		id := strings.TrimSpace(row.ID)
		if name == "" {
			return nil, &MalformedRosterError{Row: line, Reason: "missing name"}
		}
		if id == "" {
			return nil, &MalformedRosterError{Row: line, Reason: fmt.Sprintf("missing ID for %q", name)}
		}
		if seen[id] {
			return nil, &MalformedRosterError{Row: line, Reason: fmt.Sprintf("duplicate ID %q", id)}
		}
		seen[id] = true

		r.identities = append(r.identities, Identity{
			ID:          id,
			DisplayName: name,
			Aliases:     row.Aliases,
		})
	}

	// Index after the slice is final: the map holds pointers into it.
	for i := range r.identities {
		ident := &r.identities[i]
		r.byID[ident.ID] = ident
		r.indexName(ident.DisplayName, ident)
		for _, alias := range ident.Aliases {
			r.indexName(alias, ident)
		}
	}

	return r, nil
}

// indexName registers every contiguous token window of a name under the
// identity, so that full names, surname fragments, and concatenated
// spellings all resolve. Identities sharing a fragment (two students named
// Doe) end up listed together under that key, which is what makes a
// fragment ambiguous.
func (r *Roster) indexName(name string, ident *Identity) {
	normalized := NormalizeName(name)
	if normalized == "" {
		return
	}
	tokens := strings.Fields(normalized)
	if len(tokens) > r.maxTokens {
		r.maxTokens = len(tokens)
	}
	for size := len(tokens); size >= 1; size-- {
		for start := 0; start+size <= len(tokens); start++ {
			r.addKey(LookupKey(strings.Join(tokens[start:start+size], " ")), ident)
		}
	}
}

func (r *Roster) addKey(key string, ident *Identity) {
	for _, existing := range r.byName[key] {
		if existing == ident {
			return
		}
	}
	r.byName[key] = append(r.byName[key], ident)
}

// Lookup returns the identities registered under a normalized candidate,
// in roster order. The candidate may contain spaces; they are ignored.
func (r *Roster) Lookup(candidate string) []*Identity {
	return r.byName[LookupKey(candidate)]
}

// LookupID returns the identity with the given roster ID, or nil.
func (r *Roster) LookupID(id string) *Identity {
	return r.byID[strings.TrimSpace(id)]
}

// All returns the identities in roster order.
func (r *Roster) All() []Identity {
	return r.identities
}

// Len returns the number of identities.
func (r *Roster) Len() int {
	return len(r.identities)
}

// MaxNameTokens returns the token count of the longest indexed name or
// alias. It bounds the extractor's candidate window.
func (r *Roster) MaxNameTokens() int {
	if r.maxTokens == 0 {
		return 1
	}
	return r.maxTokens
}
