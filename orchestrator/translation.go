package orchestrator

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aurorah/streamcore/agentclient"
	"github.com/aurorah/streamcore/collector"
	"github.com/aurorah/streamcore/store"
)

// TranslationRunRequest describes one file-translation run. Principal
// scopes the FilePreset lookup to its owner.
type TranslationRunRequest struct {
	TaskID      string
	MessageID   string
	Principal   string
	PresetID    string
	FileID      string
	HITLMode    bool
	HITLMessage string
}

// RunTranslation is the translation variant of Run: the prompt is the
// JSON-encoded stored segments, a FilePreset configures the agent, and
// terminal success writes the collector's artifact as the translated_text
// column alongside an ai_agent_data record.
func (o *Orchestrator) RunTranslation(ctx context.Context, req TranslationRunRequest) error {
	task, msg, err := o.guardAndStart(ctx, req.TaskID, req.MessageID, req.HITLMode)
	if err != nil {
		return err
	}

	preset, err := o.store.GetFilePreset(ctx, req.Principal, req.PresetID)
	if err != nil {
		if errors.Is(err, store.ErrPresetNotFound) {
			return o.fail(ctx, task.TaskID, msg.MessageID, ErrMissingPreset)
		}
		return o.fail(ctx, task.TaskID, msg.MessageID, err)
	}

	assistantID := agentclient.AssistantID(preset.AgentID)

	threadID, err := o.selectThread(ctx, task, msg, assistantID, req.HITLMode)
	if err != nil {
		return o.fail(ctx, task.TaskID, msg.MessageID, err)
	}

	prompt, err := o.buildTranslationPrompt(ctx, req.FileID)
	if err != nil {
		return o.fail(ctx, task.TaskID, msg.MessageID, err)
	}

	var chunks <-chan agentclient.ParsedChunk
	var errc <-chan error
	if req.HITLMode {
		chunks, errc = o.agent.RunHITLTask(ctx, threadID, assistantID, req.HITLMessage)
	} else {
		chunks, errc = o.agent.RunNewTask(ctx, threadID, assistantID, prompt)
	}

	col, err := collector.Get(assistantID, o.log)
	if err != nil {
		return o.fail(ctx, task.TaskID, msg.MessageID, err)
	}

	isInterrupted, lastRunID, runErr := o.consume(ctx, msg.MessageID, task.TaskID, col, chunks)
	if runErr == nil {
		runErr = <-errc
	}
	if runErr != nil {
		return o.fail(ctx, task.TaskID, msg.MessageID, runErr)
	}

	agentData := store.AIAgentData{
		AgentID:       preset.AgentID,
		ThreadID:      threadID,
		LastRunID:     lastRunID,
		RSMQChannelID: msg.MessageID,
	}

	return o.resolveTranslationTerminal(ctx, task.TaskID, msg.MessageID, isInterrupted, col, agentData)
}

func (o *Orchestrator) buildTranslationPrompt(ctx context.Context, fileID string) (string, error) {
	segments, err := o.store.GetOriginalText(ctx, fileID)
	if err != nil {
		if errors.Is(err, store.ErrOriginalTextNotFound) {
			return "", ErrMissingOriginalText
		}
		return "", err
	}
	b, err := json.Marshal(segments)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (o *Orchestrator) resolveTranslationTerminal(ctx context.Context, taskID, channelID string, isInterrupted bool, col collector.Collector, agentData store.AIAgentData) error {
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

	artifact, err := json.Marshal(col.FormatResult())
	if err != nil {
		return o.fail(ctx, taskID, channelID, err)
	}

	if err := o.store.FinalizeTranslation(ctx, channelID, string(artifact), agentData, store.TaskCompleted, ""); err != nil {
		return err
	}
	if _, err := o.queue.Send(ctx, channelID, map[string]any{"type": "done"}); err != nil {
		o.log.WarnContext(ctx, "orchestrator: failed to send done frame", "channel", channelID, "error", err)
	}
	o.notifyWebhook(ctx, taskID, channelID, store.TaskCompleted)
	return nil
}
