// Package store presents the task/message state contract the orchestrator
// depends on, backed by Postgres, with CachedStore as a read-through cache
// for the mostly-static file preset lookups.
package store

import "time"

// TaskStatus is the lifecycle state of a ChatbotTask.
type TaskStatus string

const (
	TaskReady      TaskStatus = "READY"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskHITL       TaskStatus = "HITL"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskFailed     TaskStatus = "FAILED"
	TaskCancelled  TaskStatus = "CANCELLED"
	TaskAbandoned  TaskStatus = "ABANDONED"
)

// MessageStatus is the lifecycle state of a ChatbotMessage.
type MessageStatus string

const (
	MessagePending    MessageStatus = "PENDING"
	MessageProcessing MessageStatus = "PROCESSING"
	MessageHITL       MessageStatus = "HITL"
	MessageCompleted  MessageStatus = "COMPLETED"
	MessageFailed     MessageStatus = "FAILED"
	MessageCancelled  MessageStatus = "CANCELLED"
	MessageAbandoned  MessageStatus = "ABANDONED"
)

// Task mirrors the ChatbotTask record the orchestrator drives.
type Task struct {
	TaskID      string
	UserID      string
	Name        string
	Email       string
	ThreadID    string
	Title       string
	Description string
	Status      TaskStatus
	LastRunID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MessageFile is one attachment on a message.
type MessageFile struct {
	URL       string
	Name      string
	MimeType  string
	Extension string
	Size      int64
}

// Message mirrors the ChatbotMessage record the orchestrator drives.
type Message struct {
	MessageID string
	TaskID    string
	UserID    string
	ThreadID  string
	Content   string
	Files     []MessageFile
	Status    MessageStatus
	TranslatedText string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FilePreset holds the translation configuration for a file-translation run.
type FilePreset struct {
	PresetID          string
	OwnerID           string
	TranslationMemory string
	TranslationRole   string
	Rules             string
	ModelID           string
	Temperature       float64
	AgentID           string
}

// AIAgentData is the agent-run bookkeeping record persisted alongside a
// translation artifact.
type AIAgentData struct {
	AgentID        string
	ThreadID       string
	LastRunID      string
	RSMQChannelID  string
}
