package orchestrator

import "errors"

var (
	// ErrTaskBusy is returned when a run is requested against a task already IN_PROGRESS.
	ErrTaskBusy = errors.New("orchestrator: task already running an action")

	// ErrInvalidTaskState is returned when a task's status does not allow starting a run.
	ErrInvalidTaskState = errors.New("orchestrator: task not in a valid state")

	// ErrMessageNotHITL is returned by a HITL resume against a message not awaiting one.
	ErrMessageNotHITL = errors.New("orchestrator: message is not awaiting human input")

	// ErrMissingPreset is a validation failure: the referenced FilePreset does not exist.
	ErrMissingPreset = errors.New("orchestrator: file preset not found")

	// ErrMissingOriginalText is a validation failure: no stored segmented source text.
	ErrMissingOriginalText = errors.New("orchestrator: original text not found")
)
