package queue

import (
	"context"
	"time"
)

// DefaultPurgeAge is how long a completed or failed chatbot_message.run /
// file_translation.run job is kept around before PurgeCompleted/PurgeFailed
// drop it. Failed jobs are kept longer than completed ones since they're
// the ones an operator is most likely to want to inspect after the fact.
const (
	DefaultPurgeAge       = 24 * time.Hour
	DefaultFailedPurgeAge = 7 * 24 * time.Hour
)

// Storage defines the interface for queue storage backends. streamcore ships
// two implementations: queue/memory (process-local, used in tests and
// single-instance deployments) and queue/redis (shared storage so the host
// binary can run with more than one worker process against the same
// chatbot_message.run / file_translation.run job stream).
type Storage interface {
	// Ping checks if the storage is available.
	Ping(ctx context.Context) error

	// Put stores a job in the storage.
	Put(ctx context.Context, job *Job) error

	// Get retrieves a job by ID.
	Get(ctx context.Context, id string) (*Job, error)

	// Update updates a job in the storage.
	Update(ctx context.Context, job *Job) error

	// Delete removes a job from the storage.
	Delete(ctx context.Context, id string) error

	// FetchDue retrieves due jobs ready for processing,
	// up to the specified limit, marking them as processing.
	FetchDue(ctx context.Context, limit int) ([]*Job, error)

	// FetchByStatus retrieves jobs with the specified status,
	// up to the specified limit.
	FetchByStatus(ctx context.Context, status JobStatus, limit int) ([]*Job, error)

	// PurgeCompleted removes completed jobs older than the specified duration.
	PurgeCompleted(ctx context.Context, olderThan time.Duration) error

	// PurgeFailed removes failed jobs older than the specified duration.
	PurgeFailed(ctx context.Context, olderThan time.Duration) error

	// Size returns the total number of jobs in the storage.
	Size(ctx context.Context) (int, error)

	// Close closes the storage connection.
	Close(ctx context.Context) error
}
