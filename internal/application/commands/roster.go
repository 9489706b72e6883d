package commands

import (
	"context"
	"fmt"

	"rollcall/internal/domain"
	"rollcall/internal/ports"
)

// RosterResult contains a validated roster.
type RosterResult struct {
	Roster  *domain.Roster
	Source  string
	Message string
}

// RosterCommand loads and validates the roster, without matching anything.
// Used by the `roster` CLI surface to check a spreadsheet before a batch.
type RosterCommand struct {
	source ports.RosterSource
}

// NewRosterCommand creates a new RosterCommand
func NewRosterCommand(source ports.RosterSource) *RosterCommand {
	return &RosterCommand{source: source}
}

// Execute runs the roster command
func (c *RosterCommand) Execute(ctx context.Context) (*RosterResult, error) {
	rows, err := c.source.Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster %s: %w", c.source.Path(), err)
	}

	roster, err := domain.BuildRoster(rows)
	if err != nil {
		return nil, err
	}

	return &RosterResult{
		Roster:  roster,
		Source:  c.source.Path(),
		Message: fmt.Sprintf("Loaded %d identities from %s", roster.Len(), c.source.Path()),
	}, nil
}
