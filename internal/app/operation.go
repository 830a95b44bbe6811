package app

import "time"

// Operation identifies one CLI invocation in the log: every line it writes
// carries the operation ID, so a capture and its follow-up rescan can be
// correlated across the shared log file.
type Operation struct {
	ID        string
	Name      string
	StartedAt time.Time
}

// NewOperation creates an operation record for a CLI command.
func NewOperation(id, name string, startedAt time.Time) *Operation {
	return &Operation{ID: id, Name: name, StartedAt: startedAt}
}
