package httpapi

import (
	"embed"
	"net/http"

	"github.com/aurorah/streamcore/semver"
	"github.com/aurorah/streamcore/template"
)

//go:embed views/*.html
var viewsFS embed.FS

// NewDebugTemplateEngine builds the template.Engine backing /debug/streams,
// rendering over the package's embedded views rather than a deployed
// filesystem directory.
func NewDebugTemplateEngine() (*template.Engine, error) {
	return template.New(template.WithFS(template.NewEmbeddedFS(viewsFS)))
}

type channelStatusView struct {
	ChannelID       string
	Length          int64
	LastGeneratedID string
	GroupCount      int
}

// handleDebugStreams renders operator-facing XINFO snapshots for the
// channels passed as repeated ?channel=<id> query parameters. It is
// convenience tooling only, never on the hot path, so unknown channels are
// silently skipped rather than failing the whole page.
func (s *Server) handleDebugStreams(w http.ResponseWriter, r *http.Request) {
	if s.tmpl == nil {
		http.Error(w, "debug status page not configured", http.StatusNotImplemented)
		return
	}

	ctx := r.Context()
	channelIDs := r.URL.Query()["channel"]

	views := make([]channelStatusView, 0, len(channelIDs))
	for _, id := range channelIDs {
		length, err := s.queue.Length(ctx, id)
		if err != nil {
			continue
		}
		info, err := s.queue.Info(ctx, id)
		if err != nil {
			continue
		}
		groups, err := s.queue.GroupInfo(ctx, id)
		if err != nil {
			groups = nil
		}
		lastID, _ := info["last_generated_id"].(string)
		views = append(views, channelStatusView{
			ChannelID:       id,
			Length:          length,
			LastGeneratedID: lastID,
			GroupCount:      len(groups),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Render(w, "views/debug_streams", map[string]any{"Channels": views}, ctx); err != nil {
		http.Error(w, "failed to render status page", http.StatusInternalServerError)
	}
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	v, err := semver.Parse(s.version)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"version": s.version})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"version": v.String(),
		"major":   v.Major,
		"minor":   v.Minor,
		"patch":   v.Patch,
	})
}
