package commands

import (
	"context"
	"errors"
	"testing"

	"rollcall/internal/domain"
)

func TestMatchCommand_Validate(t *testing.T) {
	cmd := NewMatchCommand(defaultSource(), "")
	if err := cmd.Validate(); err == nil {
		t.Error("expected error for empty filename")
	}
}

func TestMatchCommand_Execute(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		wantStatus domain.MatchStatus
	}{
		{name: "unique", filename: "HW1-JaneDoe.docx", wantStatus: domain.UniqueMatch},
		{name: "ambiguous", filename: "HW1-Doe.docx", wantStatus: domain.AmbiguousMatch},
		{name: "unmatched", filename: "random.docx", wantStatus: domain.Unmatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			explanation, err := NewMatchCommand(defaultSource(), tt.filename).Execute(context.Background())
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if explanation.Result.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", explanation.Result.Status, tt.wantStatus)
			}
			if len(explanation.Candidates) == 0 {
				t.Error("expected candidate windows in the explanation")
			}
		})
	}
}

func TestRosterCommand_Execute(t *testing.T) {
	result, err := NewRosterCommand(defaultSource()).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Roster.Len() != 2 {
		t.Errorf("roster size = %d", result.Roster.Len())
	}

	bad := &fakeSource{rows: []domain.RosterRow{{Name: "", ID: "001"}}}
	if _, err := NewRosterCommand(bad).Execute(context.Background()); !errors.Is(err, domain.ErrMalformedRoster) {
		t.Errorf("expected ErrMalformedRoster, got %v", err)
	}
}
