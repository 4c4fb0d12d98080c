package httpapi

import (
	"net/http"

	"github.com/aurorah/streamcore/useragent"
)

// requestLog wraps a handler with a structured access log entry, parsing the
// caller's User-Agent so bot-originated SSE subscriptions and chatbot runs
// (a recurring source of noisy reconnect storms) are distinguishable from
// real clients in the logs.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := useragent.Parse(r.UserAgent())
		s.log.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"device_type", ua.DeviceType(),
			"os", ua.OS(),
			"browser", ua.BrowserInfo(),
			"is_bot", ua.IsBot(),
		)
		next.ServeHTTP(w, r)
	})
}
