package httpapi

import (
	"net/http"
	"time"

	"github.com/aurorah/streamcore/binder"
	"github.com/aurorah/streamcore/sse"
	"github.com/google/uuid"
)

// createMessageRequest is the body of POST /mq/channels/{channel_id}/messages.
type createMessageRequest struct {
	Sender   string `json:"sender" validate:"required" sanitize:"trim;control"`
	Text     string `json:"text" validate:"required" sanitize:"trim;control"`
	ClientID string `json:"client_id,omitempty"`
}

func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	channelID := r.PathValue("channel_id")

	var req createMessageRequest
	if err := binder.BindJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.sanitize.SanitizeStruct(&req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.validate.ValidateStruct(&req); err != nil {
		writeError(w, err)
		return
	}

	entry := map[string]any{
		"sender":    req.Sender,
		"text":      req.Text,
		"client_id": req.ClientID,
		"ts":        time.Now().UnixMilli(),
	}

	id, err := s.queue.Send(r.Context(), channelID, entry)
	if err != nil {
		writeError(w, err)
		return
	}

	entry["id"] = id
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	channelID := r.PathValue("channel_id")
	consumerID := r.URL.Query().Get("consumer")
	if consumerID == "" {
		consumerID = uuid.NewString()
	}
	method := sse.ParseMethod(r.URL.Query().Get("method"))
	groupID := "sub-" + consumerID

	if err := s.sse.Subscribe(r.Context(), w, channelID, groupID, consumerID, method); err != nil {
		s.log.WarnContext(r.Context(), "httpapi: sse subscription ended with error", "channel", channelID, "error", err)
	}
}

func (s *Server) handleChannelInfo(w http.ResponseWriter, r *http.Request) {
	channelID := r.PathValue("channel_id")
	ctx := r.Context()

	length, err := s.queue.Length(ctx, channelID)
	if err != nil {
		writeError(w, err)
		return
	}
	streamInfo, err := s.queue.Info(ctx, channelID)
	if err != nil {
		writeError(w, err)
		return
	}
	groups, err := s.queue.GroupInfo(ctx, channelID)
	if err != nil {
		writeError(w, err)
		return
	}

	consumers := map[string][]any{}
	for _, g := range groups {
		cs, err := s.queue.ConsumersInfo(ctx, channelID, g.Name)
		if err != nil {
			continue
		}
		list := make([]any, 0, len(cs))
		for _, c := range cs {
			list = append(list, c)
		}
		consumers[g.Name] = list
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"channel_id":  channelID,
		"length":      length,
		"stream_info": streamInfo,
		"group_info":  groups,
		"consumers":   consumers,
	})
}

func (s *Server) handleDeleteChannel(w http.ResponseWriter, r *http.Request) {
	channelID := r.PathValue("channel_id")
	deleted, err := s.queue.Delete(r.Context(), channelID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"channel_id": channelID, "deleted": deleted})
}
