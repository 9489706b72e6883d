package application

import "rollcall/internal/domain"

// Re-export match statuses for use by adapters
type MatchStatus = domain.MatchStatus

const (
	Unmatched         = domain.Unmatched
	UniqueMatch       = domain.UniqueMatch
	AmbiguousMatch    = domain.AmbiguousMatch
	ConflictingTokens = domain.ConflictingTokens
)

// Re-export plan actions for use by adapters
type Action = domain.Action

const (
	ActionRename        = domain.ActionRename
	ActionSkipUnmatched = domain.ActionSkipUnmatched
	ActionSkipAmbiguous = domain.ActionSkipAmbiguous
	ActionSkipConflict  = domain.ActionSkipConflict
	ActionSkipCollision = domain.ActionSkipCollision
)

// Re-export domain types for use by adapters
type (
	Identity    = domain.Identity
	Roster      = domain.Roster
	SourceFile  = domain.SourceFile
	MatchResult = domain.MatchResult
	PlanEntry   = domain.PlanEntry
)
