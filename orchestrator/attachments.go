package orchestrator

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aurorah/streamcore/storage"
	"github.com/aurorah/streamcore/store"
)

// buildPrompt concatenates the message content with the text of any `.txt`
// attachment. Non-txt attachments are skipped; a failed fetch is logged and
// skipped without failing the run.
func (o *Orchestrator) buildPrompt(ctx context.Context, msg *store.Message) string {
	prompt := msg.Content

	for _, file := range msg.Files {
		if !strings.EqualFold(file.Extension, "txt") {
			continue
		}
		text, err := o.fetchAttachmentText(ctx, file.URL)
		if err != nil {
			o.log.WarnContext(ctx, "orchestrator: attachment fetch failed, skipping", "url", file.URL, "error", err)
			continue
		}
		o.mirrorAttachment(ctx, file.URL, text)
		prompt += "\n\n" + text
	}

	return prompt
}

// mirrorAttachment best-effort copies a fetched attachment's text into the
// configured storage.Storage mirror under attachments/<file name>. Nothing
// in streamcore reads the copy back. No-op when no mirror is configured; a
// mirror failure never fails the run.
func (o *Orchestrator) mirrorAttachment(ctx context.Context, sourceURL, text string) {
	if o.mirror == nil {
		return
	}
	_, err := o.mirror.UploadFile(ctx, []byte(text), storage.UploadOptions{
		ContentType: "text/plain",
		Path:        path.Join("attachments", path.Base(sourceURL)),
	})
	if err != nil {
		o.log.WarnContext(ctx, "orchestrator: attachment mirror upload failed", "url", sourceURL, "error", err)
	}
}

func (o *Orchestrator) fetchAttachmentText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &http.ProtocolError{ErrorString: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
