package commands

import (
	"context"
	"fmt"

	"rollcall/internal/application"
	"rollcall/internal/domain"
	"rollcall/internal/ports"
)

// MatchExplanation shows how a single filename was classified, including
// the candidate windows that were tried. Diagnostic surface for working
// out why a file did not match.
type MatchExplanation struct {
	File       domain.SourceFile
	Candidates []domain.Candidate
	IDRuns     []string
	Result     domain.MatchResult
}

// MatchCommand classifies one filename against the roster and explains the
// outcome.
type MatchCommand struct {
	source ports.RosterSource

	Filename string
}

// NewMatchCommand creates a new MatchCommand
func NewMatchCommand(source ports.RosterSource, filename string) *MatchCommand {
	return &MatchCommand{source: source, Filename: filename}
}

// Validate checks if the match operation is valid
func (c *MatchCommand) Validate() error {
	return application.ValidateRequired("filename", c.Filename)
}

// Execute runs the match command
func (c *MatchCommand) Execute(ctx context.Context) (*MatchExplanation, error) {
	if err := c.Validate(); err != nil {
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

	extractor := domain.NewExtractor(roster)
	file := domain.NewSourceFile(c.Filename)

	return &MatchExplanation{
		File:       file,
		Candidates: extractor.Extract(file),
		IDRuns:     extractor.ExtractIDs(file),
		Result:     domain.Match(file, roster, extractor),
	}, nil
}
