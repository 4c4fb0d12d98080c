package store

import "errors"

var (
	// ErrTaskNotFound is returned when a task id has no matching row.
	ErrTaskNotFound = errors.New("store: task not found")

	// ErrMessageNotFound is returned when a message id has no matching row.
	ErrMessageNotFound = errors.New("store: message not found")

	// ErrPresetNotFound is returned when a file preset id has no matching row
	// visible to the given principal.
	ErrPresetNotFound = errors.New("store: file preset not found")

	// ErrOriginalTextNotFound is returned when a file id has no stored
	// segmented original text.
	ErrOriginalTextNotFound = errors.New("store: original text not found")
)
