package httpapi

import (
	"net/http"

	"github.com/aurorah/streamcore/agentclient"
	"github.com/aurorah/streamcore/binder"
	"github.com/aurorah/streamcore/orchestrator"
)

// runChatbotRequest is the body of POST
// /chatbot/tasks/{task_id}/messages/{message_id}/run. Row creation for the
// task/message themselves is out of scope: the store contract is
// read/update only, so this endpoint schedules an orchestrator run against
// rows that already exist.
type runChatbotRequest struct {
	AssistantID string `json:"assistant_id" validate:"required;identifier"`
	HITL        bool   `json:"hitl,omitempty"`
	HITLMessage string `json:"hitl_message,omitempty"`
}

func (s *Server) handleRunChatbotMessage(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("task_id")
	messageID := r.PathValue("message_id")

	var req runChatbotRequest
	if err := binder.BindJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.validate.ValidateStruct(&req); err != nil {
		writeError(w, err)
		return
	}

	assistantID := agentclient.AssistantID(req.AssistantID)
	if !assistantID.Valid() {
		writeError(w, agentclient.ErrUnsupportedAssistant)
		return
	}

	jobID, err := s.host.EnqueueTaskRun(r.Context(), orchestrator.RunRequest{
		TaskID:      taskID,
		MessageID:   messageID,
		AssistantID: assistantID,
		HITLMode:    req.HITL,
		HITLMessage: req.HITLMessage,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":     jobID,
		"task_id":    taskID,
		"channel_id": messageID,
	})
}

// runTranslationRequest is the body of POST
// /translation/tasks/{task_id}/messages/{message_id}/run.
type runTranslationRequest struct {
	Principal   string `json:"principal" validate:"required;identifier"`
	PresetID    string `json:"preset_id" validate:"required;identifier"`
	FileID      string `json:"file_id" validate:"required;identifier"`
	HITL        bool   `json:"hitl,omitempty"`
	HITLMessage string `json:"hitl_message,omitempty"`
}

func (s *Server) handleRunTranslation(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("task_id")
	messageID := r.PathValue("message_id")

	var req runTranslationRequest
	if err := binder.BindJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.validate.ValidateStruct(&req); err != nil {
		writeError(w, err)
		return
	}

	jobID, err := s.host.EnqueueTranslationRun(r.Context(), orchestrator.TranslationRunRequest{
		TaskID:      taskID,
		MessageID:   messageID,
		Principal:   req.Principal,
		PresetID:    req.PresetID,
		FileID:      req.FileID,
		HITLMode:    req.HITL,
		HITLMessage: req.HITLMessage,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":     jobID,
		"task_id":    taskID,
		"channel_id": messageID,
	})
}
