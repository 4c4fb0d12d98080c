// Package httpapi binds the streaming core's HTTP surface: message-queue
// channel operations, chatbot/translation run creation, and a small
// operator status page. It validates and decodes requests with the
// binder/validator/sanitizer packages and never holds business logic
// itself — every handler delegates to mqueue, the orchestrator host, or
// the state store.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/aurorah/streamcore/apperr"
	"github.com/aurorah/streamcore/host"
	"github.com/aurorah/streamcore/mqueue"
	"github.com/aurorah/streamcore/router/middlewares"
	"github.com/aurorah/streamcore/sanitizer"
	"github.com/aurorah/streamcore/sse"
	"github.com/aurorah/streamcore/store"
	"github.com/aurorah/streamcore/template"
	"github.com/aurorah/streamcore/validator"
)

// Server wires the HTTP surface onto the core components. Consumers call
// Handler() for the final http.Handler to pass to http.Server.
type Server struct {
	queue    *mqueue.Queue
	sse      *sse.Adapter
	host     *host.Host
	store    store.Store
	validate *validator.Validator
	sanitize *sanitizer.Sanitizer
	tmpl     *template.Engine
	version  string
	log      *slog.Logger
}

// Option configures a Server at construction time.
type Option func(*Server)

// WithLogger overrides the server's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTemplateEngine supplies the engine backing the operator status page.
// Omit to disable /debug/streams.
func WithTemplateEngine(e *template.Engine) Option {
	return func(s *Server) { s.tmpl = e }
}

// WithVersion sets the string reported by /debug/version.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New builds a Server over the given queue, SSE adapter, orchestrator host,
// and state store.
func New(q *mqueue.Queue, adapter *sse.Adapter, h *host.Host, st store.Store, opts ...Option) (*Server, error) {
	v, err := validator.New()
	if err != nil {
		return nil, err
	}
	san, err := sanitizer.New()
	if err != nil {
		return nil, err
	}

	s := &Server{
		queue:    q,
		sse:      adapter,
		host:     h,
		store:    st,
		validate: v,
		sanitize: san,
		version:  "dev",
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler builds the routed, middleware-wrapped http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /mq/channels/{channel_id}/messages", s.handleCreateMessage)
	mux.HandleFunc("GET /mq/channels/{channel_id}/events", s.handleSubscribe)
	mux.HandleFunc("GET /mq/channels/{channel_id}/info", s.handleChannelInfo)
	mux.HandleFunc("DELETE /mq/channels/{channel_id}", s.handleDeleteChannel)

	mux.HandleFunc("POST /chatbot/tasks/{task_id}/messages/{message_id}/run", s.handleRunChatbotMessage)
	mux.HandleFunc("POST /translation/tasks/{task_id}/messages/{message_id}/run", s.handleRunTranslation)

	mux.HandleFunc("GET /debug/streams", s.handleDebugStreams)
	mux.HandleFunc("GET /debug/version", s.handleVersion)

	var handler http.Handler = mux
	handler = s.requestLog(handler)
	handler = middlewares.RecovererWithHandler(handler, s.handlePanic)
	handler = middlewares.RequestID(handler)
	return handler
}

// handlePanic keeps a recovered panic's response consistent with writeError's
// JSON error envelope instead of middlewares.DefaultRecovererErrorHandler's
// plain-text body.
func (s *Server) handlePanic(w http.ResponseWriter, r *http.Request, recovered any) {
	s.log.ErrorContext(r.Context(), "httpapi: panic recovered", "error", recovered, "path", r.URL.Path)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": apperr.Opaque("Internal")})
}
