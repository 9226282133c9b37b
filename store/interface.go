package store

import "github.com/taskdeck/taskdeck/models"

// Stats summarizes the collection for the statistics view.
type Stats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	CompletionRate float64 `json:"completion_rate"` // percent, one decimal, 0.0 for an empty collection
}

// TaskStore defines the contract for the ordered task collection and
// its persistence. Positions are 1-based indexes into the current
// List() result; they are transient and shift as the list mutates.
// Every mutating operation persists the full collection to the backing
// file before returning.
type TaskStore interface {
	// Add appends a new pending task with the given title and optional
	// description and returns it. An empty or whitespace-only title
	// fails with a validation error and leaves the collection
	// unchanged.
	Add(title, description string) (models.Task, error)

	// List returns a snapshot of the collection in insertion order.
	// Mutating the returned slice does not affect the store.
	List() []models.Task

	// Complete marks the task at the given 1-based position as
	// completed and returns the updated task. It fails with a
	// not-found error when the position is out of range and with an
	// invalid-state error when the task is already completed.
	Complete(position int) (models.Task, error)

	// Delete removes and returns the task at the given 1-based
	// position. It fails with a not-found error when the position is
	// out of range.
	Delete(position int) (models.Task, error)

	// ClearAll removes every task. The operation is irreversible; any
	// confirmation must have happened at the calling layer.
	ClearAll() error

	// Stats returns counts and the completion rate for the current
	// collection.
	Stats() Stats

	// Export writes the collection to path as a JSON array of task
	// records. An empty path selects a timestamped default filename.
	// The written path is returned. Failures leave the collection
	// unchanged.
	Export(path string) (string, error)

	// Import reads a JSON array of task records from path and replaces
	// the collection with it. A file that is not a well-formed array
	// of valid records fails with a validation error; an unreadable
	// file fails with an I/O error. On any failure the in-memory
	// collection is left unchanged.
	Import(path string) error

	// DedupeByTitle removes tasks whose title duplicates an earlier
	// task's title, keeping the first occurrence and preserving order.
	// It returns the number of tasks removed.
	DedupeByTitle() (int, error)

	// Close releases resources held by the store, such as the session
	// file lock.
	Close() error
}
