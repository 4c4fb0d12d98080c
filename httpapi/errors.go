package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aurorah/streamcore/agentclient"
	"github.com/aurorah/streamcore/apperr"
	"github.com/aurorah/streamcore/binder"
	"github.com/aurorah/streamcore/mqueue"
	"github.com/aurorah/streamcore/orchestrator"
	"github.com/aurorah/streamcore/store"
	"github.com/aurorah/streamcore/validator"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps an error to an HTTP status: Validation/NotFound/Conflict
// reach the caller with a specific status; everything else collapses to an
// opaque internal error so store/transport details never leak.
func writeError(w http.ResponseWriter, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": ve.Values()})
		return
	}

	switch {
	case errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrEmptyBody), errors.Is(err, binder.ErrInvalidContentType):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})

	case errors.Is(err, store.ErrTaskNotFound), errors.Is(err, store.ErrMessageNotFound),
		errors.Is(err, store.ErrPresetNotFound), errors.Is(err, store.ErrOriginalTextNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})

	case errors.Is(err, orchestrator.ErrTaskBusy), errors.Is(err, orchestrator.ErrMessageNotHITL):
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})

	case errors.Is(err, orchestrator.ErrInvalidTaskState), errors.Is(err, orchestrator.ErrMissingPreset),
		errors.Is(err, orchestrator.ErrMissingOriginalText), errors.Is(err, agentclient.ErrUnsupportedAssistant):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})

	case errors.Is(err, mqueue.ErrChannelEmpty), errors.Is(err, mqueue.ErrGroupEmpty), errors.Is(err, mqueue.ErrConsumerEmpty):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})

	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": apperr.Opaque("Internal")})
	}
}
