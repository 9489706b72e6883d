package ports

import "rollcall/internal/domain"

// RosterSource defines the interface for reading raw roster rows from a
// spreadsheet collaborator. Validation happens later, at roster
// construction; a source only reports rows it could physically read.
type RosterSource interface {
	// Rows returns the raw roster rows in sheet order.
	Rows() ([]domain.RosterRow, error)

	// Path returns the location of the underlying spreadsheet, for
	// reports and error messages.
	Path() string
}
