package sse

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aurorah/streamcore/mqueue"
)

// errDone signals that a terminal "done" frame was emitted and the
// subscription loop should stop without that being treated as a failure.
var errDone = errors.New("sse: done frame emitted")

// Adapter translates one mqueue consumer's yielded entries into a framed
// Server-Sent-Events byte stream, per the one-subscription contract:
// emit "connected", then one frame per entry, a final "done" or "error"
// frame, and always remove the consumer from its group on exit.
type Adapter struct {
	queue *mqueue.Queue
	log   *slog.Logger
}

// NewAdapter wraps q as an SSE adapter.
func NewAdapter(q *mqueue.Queue, opts ...AdapterOption) *Adapter {
	a := &Adapter{queue: q, log: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithAdapterLogger overrides the adapter's logger.
func WithAdapterLogger(l *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

// ParseMethod maps the external `method=s|n|p` query value onto a
// mqueue.StreamMethod, defaulting to NewOnly for an unrecognized value.
func ParseMethod(raw string) mqueue.StreamMethod {
	switch raw {
	case "s":
		return mqueue.FromBeginning
	case "p":
		return mqueue.PendingFirst
	case "n":
		return mqueue.NewOnly
	default:
		return mqueue.NewOnly
	}
}

// Subscribe serves one SSE subscription to completion: it blocks until the
// request context is cancelled (client disconnect), a "done" entry is
// observed, or an unrecoverable error occurs.
func (a *Adapter) Subscribe(ctx context.Context, w http.ResponseWriter, channelID, groupID, consumerID string, method mqueue.StreamMethod) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return ErrNoFlusher
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	connected := Event{
		Event: "system",
		Data:  map[string]any{"type": "connected", "consumer": consumerID},
	}
	if err := connected.Write(w); err != nil {
		return err
	}
	flusher.Flush()

	isDisconnected := func() bool {
		select {
		case <-ctx.Done():
			return true
		default:
			return false
		}
	}

	err := a.queue.ConsumeWithDisconnectCheck(ctx, channelID, consumerID, mqueue.ConsumeOptions{
		GroupID:      groupID,
		StreamMethod: method,
		AutoAck:      true,
	}, isDisconnected, func(entry mqueue.Entry) error {
		return a.emit(w, flusher, channelID, entry)
	})

	if errors.Is(err, errDone) {
		return nil
	}
	if err != nil {
		errFrame := Event{
			Event: "error",
			Data:  map[string]any{"type": "error", "message": err.Error()},
		}
		_ = errFrame.Write(w)
		flusher.Flush()
		return err
	}
	return nil
}

func (a *Adapter) emit(w http.ResponseWriter, flusher http.Flusher, channelID string, entry mqueue.Entry) error {
	objType, _ := entry.Data["type"].(string)

	name := objType
	if objType == "done" {
		name = "system"
	}

	frame := Event{
		Event: name,
		Data:  mqueue.SSEEvent(entry.ID, channelID, entry.Data),
	}
	if err := frame.Write(w); err != nil {
		return err
	}
	flusher.Flush()

	if objType == "done" {
		return errDone
	}
	return nil
}
