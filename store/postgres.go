package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store with plain SQL over the tables created by
// this package's migrations/ (see SPEC_FULL §4.F: CRUD-over-stored-procedures
// is an explicit Non-goal). Queries below are the minimal contract surface the
// orchestrator actually exercises.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an already-configured pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetTask(ctx context.Context, taskID string) (*Task, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT task_id, user_id, name, email, thread_id, title, description,
		       status, last_run_id, created_at, updated_at
		FROM chatbot_tasks
		WHERE task_id = $1 AND is_deleted = false`, taskID)

	var t Task
	var threadID, lastRunID *string
	if err := row.Scan(&t.TaskID, &t.UserID, &t.Name, &t.Email, &threadID, &t.Title,
		&t.Description, &t.Status, &lastRunID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	t.ThreadID = derefOr(threadID, "")
	t.LastRunID = derefOr(lastRunID, "")
	return &t, nil
}

func (s *PostgresStore) GetMessage(ctx context.Context, messageID string) (*Message, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT message_id, task_id, user_id, thread_id, content, files, status, created_at, updated_at
		FROM chatbot_messages
		WHERE message_id = $1 AND is_deleted = false`, messageID)

	var m Message
	var threadID *string
	var filesJSON []byte
	if err := row.Scan(&m.MessageID, &m.TaskID, &m.UserID, &threadID, &m.Content,
		&filesJSON, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	m.ThreadID = derefOr(threadID, "")
	if len(filesJSON) > 0 {
		if err := json.Unmarshal(filesJSON, &m.Files); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func (s *PostgresStore) GetFilePreset(ctx context.Context, principal, presetID string) (*FilePreset, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT preset_id, owner_id, translation_memory, translation_role, rules, model_id, temperature, agent_id
		FROM file_presets
		WHERE preset_id = $1 AND owner_id = $2`, presetID, principal)

	var p FilePreset
	if err := row.Scan(&p.PresetID, &p.OwnerID, &p.TranslationMemory, &p.TranslationRole,
		&p.Rules, &p.ModelID, &p.Temperature, &p.AgentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPresetNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) GetOriginalText(ctx context.Context, fileID string) (map[string]any, error) {
	row := s.pool.QueryRow(ctx, `SELECT segments FROM original_texts WHERE file_id = $1`, fileID)

	var segmentsJSON []byte
	if err := row.Scan(&segmentsJSON); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOriginalTextNotFound
		}
		return nil, err
	}
	var segments map[string]any
	if err := json.Unmarshal(segmentsJSON, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}

func (s *PostgresStore) UpdateTaskRunID(ctx context.Context, taskID, runID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE chatbot_tasks SET last_run_id = $2, updated_at = $3 WHERE task_id = $1`,
		taskID, runID, time.Now().UTC())
	return err
}

func (s *PostgresStore) UpdateMessageThread(ctx context.Context, messageID, threadID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE chatbot_messages SET thread_id = $2, updated_at = $3 WHERE message_id = $1`,
		messageID, threadID, time.Now().UTC())
	return err
}

func (s *PostgresStore) SetMessageStatus(ctx context.Context, messageID string, status MessageStatus, message string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE chatbot_messages SET status = $2, error_message = NULLIF($3, ''), updated_at = $4
		WHERE message_id = $1`, messageID, status, message, time.Now().UTC())
	return err
}

func (s *PostgresStore) SetTaskStatus(ctx context.Context, taskID string, status TaskStatus) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE chatbot_tasks SET status = $2, updated_at = $3 WHERE task_id = $1`,
		taskID, status, time.Now().UTC())
	return err
}

// FinalizeTranslation persists the translated-text column, the terminal
// status pair, and the ai_agent_data bookkeeping record in one transaction
// so a crash mid-write never leaves the task marked complete without its
// translated text, or vice versa.
func (s *PostgresStore) FinalizeTranslation(ctx context.Context, messageID, translatedText string, agentData AIAgentData, status TaskStatus, message string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()

	if _, err := tx.Exec(ctx, `
		UPDATE chatbot_messages
		SET status = $2, translated_text = $3, error_message = NULLIF($4, ''), updated_at = $5
		WHERE message_id = $1`, messageID, messageStatusForTask(status), translatedText, message, now); err != nil {
		return err
	}

	var taskID string
	if err := tx.QueryRow(ctx, `SELECT task_id FROM chatbot_messages WHERE message_id = $1`, messageID).Scan(&taskID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE chatbot_tasks SET status = $2, updated_at = $3 WHERE task_id = $1`,
		taskID, status, now); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO ai_agent_data (agent_id, thread_id, last_run_id, rsmq_channel_id, message_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (message_id) DO UPDATE
		SET agent_id = EXCLUDED.agent_id, thread_id = EXCLUDED.thread_id,
		    last_run_id = EXCLUDED.last_run_id, rsmq_channel_id = EXCLUDED.rsmq_channel_id`,
		agentData.AgentID, agentData.ThreadID, agentData.LastRunID, agentData.RSMQChannelID, messageID, now); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func messageStatusForTask(status TaskStatus) MessageStatus {
	switch status {
	case TaskCompleted:
		return MessageCompleted
	case TaskFailed:
		return MessageFailed
	case TaskHITL:
		return MessageHITL
	case TaskCancelled:
		return MessageCancelled
	case TaskAbandoned:
		return MessageAbandoned
	default:
		return MessageProcessing
	}
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
