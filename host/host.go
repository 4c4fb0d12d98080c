// Package host boots the background execution layer: one queue.Queue per
// process, with the orchestrator's two run variants registered as typed job
// handlers. HTTP handlers enqueue; this package only ever runs them.
package host

import (
	"context"
	"log/slog"

	"github.com/aurorah/streamcore/orchestrator"
	"github.com/aurorah/streamcore/queue"
)

const (
	// TaskRunJob processes one chatbot-message run.
	TaskRunJob = "chatbot_message.run"

	// TranslationRunJob processes one file-translation run.
	TranslationRunJob = "file_translation.run"
)

// Host owns the job queue and the orchestrator driving its handlers.
type Host struct {
	queue queue.Queue
	orch  *orchestrator.Orchestrator
	log   *slog.Logger
}

// Option configures a Host at construction time.
type Option func(*Host)

// WithLogger overrides the host's logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// New builds a Host and registers its job handlers. q must not yet be
// running; callers start it with Run after New returns.
func New(q queue.Queue, orch *orchestrator.Orchestrator, opts ...Option) (*Host, error) {
	h := &Host{queue: q, orch: orch, log: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}

	if err := q.AddHandler(TaskRunJob, h.handleTaskRun); err != nil {
		return nil, err
	}
	if err := q.AddHandler(TranslationRunJob, h.handleTranslationRun); err != nil {
		return nil, err
	}
	return h, nil
}

// Run blocks processing jobs until ctx is cancelled. Start it in its own
// goroutine at process boot, exactly once.
func (h *Host) Run(ctx context.Context) error {
	return h.queue.Run(ctx)
}

// Stop gracefully drains in-flight jobs.
func (h *Host) Stop(ctx context.Context) error {
	return h.queue.Stop(ctx)
}

// EnqueueTaskRun schedules a chatbot-message run for background processing.
func (h *Host) EnqueueTaskRun(ctx context.Context, req orchestrator.RunRequest) (string, error) {
	return h.queue.Enqueue(ctx, TaskRunJob, req)
}

// EnqueueTranslationRun schedules a file-translation run for background processing.
func (h *Host) EnqueueTranslationRun(ctx context.Context, req orchestrator.TranslationRunRequest) (string, error) {
	return h.queue.Enqueue(ctx, TranslationRunJob, req)
}

func (h *Host) handleTaskRun(ctx context.Context, req orchestrator.RunRequest) error {
	if err := h.orch.Run(ctx, req); err != nil {
		h.log.ErrorContext(ctx, "host: task run failed", "task_id", req.TaskID, "message_id", req.MessageID, "error", err)
		return err
	}
	return nil
}

func (h *Host) handleTranslationRun(ctx context.Context, req orchestrator.TranslationRunRequest) error {
	if err := h.orch.RunTranslation(ctx, req); err != nil {
		h.log.ErrorContext(ctx, "host: translation run failed", "task_id", req.TaskID, "message_id", req.MessageID, "error", err)
		return err
	}
	return nil
}
