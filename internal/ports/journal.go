package ports

import "time"

// BatchEntry records one executed rename inside a batch.
type BatchEntry struct {
	SourcePath string
	TargetPath string
}

// Batch is the undo record for one applied rename operation. Only the most
// recent batch is ever retained.
type Batch struct {
	ID        string
	Dir       string
	AppliedAt time.Time
	Entries   []BatchEntry
}

// BatchJournal persists the last applied batch so it can be undone.
// Recording a new batch replaces the previous one.
type BatchJournal interface {
	Open(path string) error
	Close() error

	// Record stores a batch, replacing any previously stored one.
	Record(batch Batch) error

	// Last returns the most recently recorded batch, or nil when the
	// journal is empty.
	Last() (*Batch, error)

	// Clear removes the stored batch.
	Clear() error
}
