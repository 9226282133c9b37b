package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/types"
)

// Task represents a single to-do item.
//
// The JSON shape is the persisted record: exactly title, description,
// completed, created_at and completed_at (RFC 3339, null while
// pending). ID is runtime-only and never written to disk; tasks are
// addressed by their 1-based list position in user-facing operations,
// the ID exists so in-process callers have a stable handle across
// mutations.
type Task struct {
	ID          string     `json:"-"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at" validate:"required"`
	CompletedAt *time.Time `json:"completed_at"`
}

// global validator instance, caches struct info
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// New creates a pending Task with the given title and optional
// description. The title is trimmed; an empty or whitespace-only title
// fails with a validation error.
func New(title, description string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, types.NewValidationError("task title cannot be empty", nil)
	}

	t := Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := validate.Struct(t); err != nil {
		return Task{}, types.NewValidationError("task failed validation", err)
	}
	return t, nil
}

// Complete transitions the task from pending to completed and stamps
// CompletedAt. The transition is one-way: completing an already
// completed task fails with an invalid-state error so the first
// completion timestamp is never overwritten.
func (t *Task) Complete() error {
	if t.Completed {
		return types.NewInvalidStateError("task is already completed")
	}
	now := time.Now()
	t.Completed = true
	t.CompletedAt = &now
	return nil
}

// Validate checks a task decoded from an external source against the
// record invariants: non-blank title, and completed_at set if and only
// if the task is completed.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return types.NewValidationError("task title cannot be empty", nil)
	}
	if err := validate.Struct(*t); err != nil {
		return types.NewValidationError("task failed validation", err)
	}
	if t.Completed && t.CompletedAt == nil {
		return types.NewValidationError("completed task is missing completed_at", nil)
	}
	if !t.Completed && t.CompletedAt != nil {
		return types.NewValidationError("pending task has completed_at set", nil)
	}
	if t.CompletedAt != nil && t.CompletedAt.Before(t.CreatedAt) {
		return types.NewValidationError("completed_at precedes created_at", nil)
	}
	return nil
}

// EnsureID assigns a fresh runtime ID if the task does not have one,
// e.g. after being decoded from the data file.
func (t *Task) EnsureID() {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
}
