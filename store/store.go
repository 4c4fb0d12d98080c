package store

import "context"

// Store is the thin persistence contract the orchestrator depends on. It
// has no knowledge of HTTP, Redis, or the agent runtime.
type Store interface {
	GetTask(ctx context.Context, taskID string) (*Task, error)
	GetMessage(ctx context.Context, messageID string) (*Message, error)
	GetFilePreset(ctx context.Context, principal, presetID string) (*FilePreset, error)
	GetOriginalText(ctx context.Context, fileID string) (map[string]any, error)

	UpdateTaskRunID(ctx context.Context, taskID, runID string) error
	UpdateMessageThread(ctx context.Context, messageID, threadID string) error
	SetMessageStatus(ctx context.Context, messageID string, status MessageStatus, message string) error
	SetTaskStatus(ctx context.Context, taskID string, status TaskStatus) error
	FinalizeTranslation(ctx context.Context, messageID, translatedText string, agentData AIAgentData, status TaskStatus, message string) error
}
