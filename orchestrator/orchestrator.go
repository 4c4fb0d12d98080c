// Package orchestrator drives one request's agent run to completion or to
// HITL suspension: thread selection, attachment ingestion, the chunk
// run-and-parse loop, and terminal state resolution.
package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aurorah/streamcore/agentclient"
	"github.com/aurorah/streamcore/apperr"
	"github.com/aurorah/streamcore/collector"
	"github.com/aurorah/streamcore/feature"
	"github.com/aurorah/streamcore/mqueue"
	"github.com/aurorah/streamcore/privacy"
	"github.com/aurorah/streamcore/storage"
	"github.com/aurorah/streamcore/store"
	"github.com/aurorah/streamcore/webhook"
)

// continueAfterInterruptFlag gates the redesigned stream-continuation
// behavior (SPEC_FULL §4.E) against the source's early-return. Left
// unconfigured, IsEnabled returns ErrFlagNotFound and the orchestrator
// defaults to continuing, per the redesign decision.
const continueAfterInterruptFlag = "continue_after_interrupt"

// Agent is the subset of agentclient.Client the orchestrator depends on,
// narrowed here so tests can substitute a fake run sequence.
type Agent interface {
	CreateThread(ctx context.Context) (string, error)
	RunNewTask(ctx context.Context, threadID string, assistantID agentclient.AssistantID, prompt string) (<-chan agentclient.ParsedChunk, <-chan error)
	RunHITLTask(ctx context.Context, threadID string, assistantID agentclient.AssistantID, resumeMsg string) (<-chan agentclient.ParsedChunk, <-chan error)
}

// Orchestrator wires together the queue, agent runtime, collector
// selection, and state store to drive one run per call.
type Orchestrator struct {
	queue      *mqueue.Queue
	agent      Agent
	store      store.Store
	features   feature.Provider
	webhook    webhook.WebhookSender
	webhookURL string
	httpClient *http.Client
	mirror     storage.Storage
	emailMask  *privacy.EmailMasker
	log        *slog.Logger
}

// Option configures an Orchestrator at construction time.
type Option func(*Orchestrator)

// WithWebhook configures best-effort terminal-state notification.
func WithWebhook(sender webhook.WebhookSender, url string) Option {
	return func(o *Orchestrator) {
		o.webhook = sender
		o.webhookURL = url
	}
}

// WithFeatures overrides the feature.Provider (default: always continue).
func WithFeatures(p feature.Provider) Option {
	return func(o *Orchestrator) {
		if p != nil {
			o.features = p
		}
	}
}

// WithHTTPClient overrides the client used for attachment ingestion.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *Orchestrator) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}

// WithAttachmentMirror configures a best-effort copy of fetched `.txt`
// attachments into st, guarding against the source attachment URL expiring
// or disappearing before a HITL resume reruns ingestion. Omit to skip
// mirroring entirely (the default: fetch from the URL only).
func WithAttachmentMirror(st storage.Storage) Option {
	return func(o *Orchestrator) {
		o.mirror = st
	}
}

// WithLogger overrides the orchestrator's logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.log = l
		}
	}
}

// New creates an Orchestrator.
func New(q *mqueue.Queue, agent Agent, st store.Store, opts ...Option) *Orchestrator {
	emailMask, _ := privacy.NewEmailMasker()
	o := &Orchestrator{
		queue:      q,
		agent:      agent,
		store:      st,
		features:   feature.NewStaticProvider(nil),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		emailMask:  emailMask,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunRequest describes one chatbot-message run.
type RunRequest struct {
	TaskID      string
	MessageID   string
	AssistantID agentclient.AssistantID
	HITLMode    bool
	HITLMessage string // human reply text, required when HITLMode is true
}

// Run drives req to completion or HITL suspension. The RSMQ channel is the
// message id.
func (o *Orchestrator) Run(ctx context.Context, req RunRequest) error {
	task, msg, err := o.guardAndStart(ctx, req.TaskID, req.MessageID, req.HITLMode)
	if err != nil {
		return err
	}

	threadID, err := o.selectThread(ctx, task, msg, req.AssistantID, req.HITLMode)
	if err != nil {
		return o.fail(ctx, task.TaskID, msg.MessageID, err)
	}

	prompt := o.buildPrompt(ctx, msg)

	var chunks <-chan agentclient.ParsedChunk
	var errc <-chan error
	if req.HITLMode {
		chunks, errc = o.agent.RunHITLTask(ctx, threadID, req.AssistantID, req.HITLMessage)
	} else {
		chunks, errc = o.agent.RunNewTask(ctx, threadID, req.AssistantID, prompt)
	}

	col, err := collector.Get(req.AssistantID, o.log)
	if err != nil {
		return o.fail(ctx, task.TaskID, msg.MessageID, err)
	}

	isInterrupted, _, runErr := o.consume(ctx, msg.MessageID, task.TaskID, col, chunks)
	if runErr == nil {
		runErr = <-errc
	}
	if runErr != nil {
		return o.fail(ctx, task.TaskID, msg.MessageID, runErr)
	}

	return o.resolveTerminal(ctx, task.TaskID, msg.MessageID, isInterrupted)
}

// guardAndStart enforces the state-transition guard matrix and, on success,
// marks task IN_PROGRESS and message PROCESSING.
func (o *Orchestrator) guardAndStart(ctx context.Context, taskID, messageID string, hitlMode bool) (*store.Task, *store.Message, error) {
	task, err := o.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	msg, err := o.store.GetMessage(ctx, messageID)
	if err != nil {
		return nil, nil, err
	}

	switch task.Status {
	case store.TaskInProgress:
		return nil, nil, ErrTaskBusy
	case store.TaskReady, store.TaskHITL, store.TaskCompleted, store.TaskFailed, store.TaskCancelled, store.TaskAbandoned:
		// allowed
	default:
		return nil, nil, ErrInvalidTaskState
	}

	if hitlMode && msg.Status != store.MessageHITL {
		return nil, nil, ErrMessageNotHITL
	}

	if err := o.store.SetTaskStatus(ctx, taskID, store.TaskInProgress); err != nil {
		return nil, nil, err
	}
	if err := o.store.SetMessageStatus(ctx, messageID, store.MessageProcessing, ""); err != nil {
		return nil, nil, err
	}

	task.Status = store.TaskInProgress
	msg.Status = store.MessageProcessing
	return task, msg, nil
}

// selectThread picks which agent thread a run streams onto: the task's
// shared thread for a task-scoped assistant, the message's existing thread
// when resuming a HITL reply, or a freshly created thread persisted onto
// the message before streaming starts.
func (o *Orchestrator) selectThread(ctx context.Context, task *store.Task, msg *store.Message, assistantID agentclient.AssistantID, hitlMode bool) (string, error) {
	if assistantID == agentclient.TaskAssistant {
		return task.ThreadID, nil
	}
	if hitlMode {
		return msg.ThreadID, nil
	}

	threadID, err := o.agent.CreateThread(ctx)
	if err != nil {
		return "", err
	}
	if err := o.store.UpdateMessageThread(ctx, msg.MessageID, threadID); err != nil {
		return "", err
	}
	return threadID, nil
}

// consume runs the chunk loop, returning whether an interrupt was observed
// and the last run_id seen on a Metadata chunk.
func (o *Orchestrator) consume(ctx context.Context, channelID, taskID string, col collector.Collector, chunks <-chan agentclient.ParsedChunk) (bool, string, error) {
	isInterrupted := false
	lastRunID := ""
	lastMessageType := agentclient.MessageUnknown

	for chunk := range chunks {
		col.AddChunk(chunk)

		switch chunk.Kind {
		case agentclient.ChunkMetadata, agentclient.ChunkTasks, agentclient.ChunkUpdates:
			if err := o.queue.Broadcast(ctx, channelID, "langgraph_stream_chunk", map[string]any{
				"type": string(chunk.Kind),
				"data": chunk.Raw,
			}); err != nil {
				o.log.WarnContext(ctx, "orchestrator: broadcast failed", "channel", channelID, "error", err)
			}
			if chunk.Kind == agentclient.ChunkMetadata && chunk.RunID != "" {
				lastRunID = chunk.RunID
				if err := o.store.UpdateTaskRunID(ctx, taskID, chunk.RunID); err != nil {
					return isInterrupted, lastRunID, err
				}
			}

		case agentclient.ChunkEvents:
			switch chunk.EventName {
			case "on_chat_model_stream":
				lastMessageType = classifyMessageType(chunk)
				if chunk.IsAIMessage {
					col.AppendAIContent(chunk.ChunkData)
				}
				if err := o.queue.Broadcast(ctx, channelID, "model_stream_chunk", map[string]any{
					"type":    string(lastMessageType),
					"message": chunk.ChunkData,
					"status":  string(store.MessageProcessing),
				}); err != nil {
					o.log.WarnContext(ctx, "orchestrator: broadcast failed", "channel", channelID, "error", err)
				}
			case "on_chat_model_end":
				if err := o.queue.Broadcast(ctx, channelID, "model_stream_chunk", map[string]any{
					"type":    string(lastMessageType),
					"message": "",
					"status":  string(store.MessageCompleted),
				}); err != nil {
					o.log.WarnContext(ctx, "orchestrator: broadcast failed", "channel", channelID, "error", err)
				}
			}
		}

		if chunk.IsInterrupted {
			isInterrupted = true
			if err := o.queue.Broadcast(ctx, channelID, "ai_message", map[string]any{
				"type":       "ai",
				"message":    chunk.InterruptMsg,
				"status":     string(store.MessageHITL),
				"message_id": channelID,
			}); err != nil {
				o.log.WarnContext(ctx, "orchestrator: broadcast failed", "channel", channelID, "error", err)
			}

			if !o.shouldContinueAfterInterrupt(ctx) {
				return isInterrupted, lastRunID, nil
			}
		}
	}

	return isInterrupted, lastRunID, nil
}

// shouldContinueAfterInterrupt defaults to true (the redesign decision);
// an explicitly-disabled flag restores the source's early-return behavior.
func (o *Orchestrator) shouldContinueAfterInterrupt(ctx context.Context) bool {
	enabled, err := o.features.IsEnabled(ctx, continueAfterInterruptFlag)
	if errors.Is(err, feature.ErrFlagNotFound) {
		return true
	}
	if err != nil {
		return true
	}
	return enabled
}

func classifyMessageType(chunk agentclient.ParsedChunk) agentclient.LastMessageType {
	switch {
	case chunk.IsAIMessage:
		return agentclient.MessageAI
	case chunk.IsToolCall:
		return agentclient.MessageTool
	default:
		return agentclient.MessageUnknown
	}
}

// resolveTerminal applies the terminal-resolution rule: HITL suspension
// sends no "done"; normal completion does.
func (o *Orchestrator) resolveTerminal(ctx context.Context, taskID, channelID string, isInterrupted bool) error {
	if isInterrupted {
		if err := o.store.SetMessageStatus(ctx, channelID, store.MessageHITL, ""); err != nil {
			return err
		}
		if err := o.store.SetTaskStatus(ctx, taskID, store.TaskHITL); err != nil {
			return err
		}
		o.notifyWebhook(ctx, taskID, channelID, store.TaskHITL)
		return nil
	}

	if err := o.store.SetMessageStatus(ctx, channelID, store.MessageCompleted, ""); err != nil {
		return err
	}
	if err := o.store.SetTaskStatus(ctx, taskID, store.TaskCompleted); err != nil {
		return err
	}
	if _, err := o.queue.Send(ctx, channelID, map[string]any{"type": "done"}); err != nil {
		o.log.WarnContext(ctx, "orchestrator: failed to send done frame", "channel", channelID, "error", err)
	}
	o.notifyWebhook(ctx, taskID, channelID, store.TaskCompleted)
	return nil
}

// fail stores the terminal FAILED state. Systemic errors are stored as an
// opaque message; validation failures keep their raw diagnostic text.
func (o *Orchestrator) fail(ctx context.Context, taskID, messageID string, cause error) error {
	message := apperr.Opaque(errorKind(cause))
	if isValidationFailure(cause) {
		message = cause.Error()
	}

	if err := o.store.SetMessageStatus(ctx, messageID, store.MessageFailed, message); err != nil {
		o.log.ErrorContext(ctx, "orchestrator: failed to record message failure", "error", err)
	}
	if err := o.store.SetTaskStatus(ctx, taskID, store.TaskFailed); err != nil {
		o.log.ErrorContext(ctx, "orchestrator: failed to record task failure", "error", err)
	}
	o.logFailureOwner(ctx, taskID)
	o.notifyWebhook(ctx, taskID, messageID, store.TaskFailed)
	return cause
}

// logFailureOwner logs the masked email of a failed task's owner, for
// support correlation without writing raw addresses to log storage.
func (o *Orchestrator) logFailureOwner(ctx context.Context, taskID string) {
	task, err := o.store.GetTask(ctx, taskID)
	if err != nil || task.Email == "" || o.emailMask == nil {
		return
	}
	masked, err := o.emailMask.Mask(ctx, task.Email)
	if err != nil {
		return
	}
	o.log.InfoContext(ctx, "orchestrator: task failed", "task_id", taskID, "owner_email", masked)
}

func isValidationFailure(err error) bool {
	return errors.Is(err, ErrMissingPreset) ||
		errors.Is(err, ErrMissingOriginalText) ||
		errors.Is(err, agentclient.ErrUnsupportedAssistant) ||
		errors.Is(err, collector.ErrUnsupportedAgent)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, agentclient.ErrTimeout):
		return "Upstream.Timeout"
	case errors.Is(err, agentclient.ErrUnavailable), errors.Is(err, agentclient.ErrCircuitOpen):
		return "Upstream.Unavailable"
	default:
		return "Internal"
	}
}

func (o *Orchestrator) notifyWebhook(ctx context.Context, taskID, messageID string, status store.TaskStatus) {
	if o.webhook == nil || o.webhookURL == "" {
		return
	}
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if _, err := o.webhook.Send(notifyCtx, o.webhookURL, map[string]any{
		"task_id":    taskID,
		"message_id": messageID,
		"status":     string(status),
	}); err != nil {
		o.log.WarnContext(ctx, "orchestrator: webhook notify failed", "task_id", taskID, "error", err)
	}
}
