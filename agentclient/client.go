// Package agentclient talks to the LangGraph-compatible agent runtime over
// its streaming HTTP API: thread creation and run-and-stream, decoded into
// ParsedChunk values.
package agentclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aurorah/streamcore/apperr"
	"github.com/sony/gobreaker"
)

// Config holds the static, closed set of agent-client settings.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 60 * time.Second
	}
	return c
}

// Client is a thin HTTP client over the agent runtime's thread/run/stream
// API. A circuit breaker per base URL guards thread creation (do); the run
// streams (RunNewTask, RunHITLTask) do not go through it.
type Client struct {
	httpClient *http.Client
	cfg        Config
	log        *slog.Logger

	breakerOnce sync.Once
	breaker     *gobreaker.CircuitBreaker
}

// ClientOption configures a Client at construction time.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithClientLogger overrides the client's logger.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Client against cfg.BaseURL.
func New(cfg Config, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: cfg.withDefaults().RequestTimeout},
		cfg:        cfg.withDefaults(),
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) cb() *gobreaker.CircuitBreaker {
	c.breakerOnce.Do(func() {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "agentclient:" + c.cfg.BaseURL,
			MaxRequests: 1,
			Interval:    0,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.log.Warn("agentclient: circuit breaker state change", "breaker", name, "from", from, "to", to)
			},
		})
	})
	return c.breaker
}

// threadResponse is the agent runtime's thread-creation payload.
type threadResponse struct {
	ThreadID string `json:"thread_id"`
}

// CreateThread provisions a new conversation thread and returns its id.
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/threads", nil)
	if err != nil {
		return "", err
	}
	var resp threadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errors.Join(apperr.ErrInternal, err)
	}
	return resp.ThreadID, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Join(apperr.ErrInternal, err)
		}
		reqBody = bytes.NewReader(b)
	}

	out, err := c.cb().Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Join(ErrTimeout, err)
			}
			return nil, errors.Join(ErrUnavailable, err)
		}
		defer resp.Body.Close()

		b, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			return nil, errors.Join(ErrUnavailable, apperr.NewUpstreamHTTPError(resp.StatusCode, string(b)))
		}
		if resp.StatusCode >= 400 {
			return nil, apperr.NewUpstreamHTTPError(resp.StatusCode, string(b))
		}
		return b, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errors.Join(ErrCircuitOpen, err)
		}
		return nil, err
	}
	return out.([]byte), nil
}

// runRequest is the streaming run payload common to a new task and a
// human-in-the-loop resume.
type runRequest struct {
	AssistantID string         `json:"assistant_id"`
	Input       map[string]any `json:"input,omitempty"`
	Command     map[string]any `json:"command,omitempty"`
	StreamMode  []string       `json:"stream_mode"`
}

var streamModes = []string{"updates", "tasks", "events"}

// RunNewTask starts a fresh run on threadID and streams its parsed chunks.
// The returned channels are closed once the stream ends; exactly one error
// (possibly nil) is sent to errc before it closes.
func (c *Client) RunNewTask(ctx context.Context, threadID string, assistantID AssistantID, prompt string) (<-chan ParsedChunk, <-chan error) {
	req := runRequest{
		AssistantID: string(assistantID),
		Input:       map[string]any{"messages": []map[string]any{{"role": "user", "content": prompt}}},
		StreamMode:  streamModes,
	}
	return c.stream(ctx, threadID, req)
}

// RunHITLTask resumes an interrupted run on threadID with a human reply.
func (c *Client) RunHITLTask(ctx context.Context, threadID string, assistantID AssistantID, resumeMsg string) (<-chan ParsedChunk, <-chan error) {
	req := runRequest{
		AssistantID: string(assistantID),
		Command:     map[string]any{"resume": resumeMsg},
		StreamMode:  streamModes,
	}
	return c.stream(ctx, threadID, req)
}

func (c *Client) stream(ctx context.Context, threadID string, req runRequest) (<-chan ParsedChunk, <-chan error) {
	chunks := make(chan ParsedChunk)
	errc := make(chan error, 1)

	if !assistantIDValid(req.AssistantID) {
		close(chunks)
		errc <- ErrUnsupportedAssistant
		close(errc)
		return chunks, errc
	}

	go func() {
		defer close(chunks)
		defer close(errc)
		errc <- c.runStream(ctx, threadID, req, chunks)
	}()

	return chunks, errc
}

func assistantIDValid(id string) bool {
	return AssistantID(id).Valid()
}

func (c *Client) runStream(ctx context.Context, threadID string, req runRequest, chunks chan<- ParsedChunk) error {
	b, err := json.Marshal(req)
	if err != nil {
		return errors.Join(apperr.ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/threads/"+threadID+"/runs/stream", bytes.NewReader(b))
	if err != nil {
		return errors.Join(apperr.ErrInternal, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return errors.Join(ErrTimeout, err)
		}
		return errors.Join(ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return apperr.NewUpstreamHTTPError(resp.StatusCode, string(body))
	}

	return scanSSE(resp.Body, func(event string, data map[string]any) error {
		chunk, ok := ParseChunk(event, data)
		if !ok {
			return nil
		}
		select {
		case chunks <- chunk:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// scanSSE parses an `event: name` / `data: json` framed byte stream,
// invoking fn once per complete frame with a non-empty event name.
func scanSSE(r io.Reader, fn func(event string, data map[string]any) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var event string
	var dataLines []string

	flush := func() error {
		if event == "" && len(dataLines) == 0 {
			return nil
		}
		defer func() {
			event = ""
			dataLines = dataLines[:0]
		}()
		if event == "" {
			return nil
		}
		joined := strings.Join(dataLines, "\n")
		var data map[string]any
		if joined != "" {
			if err := json.Unmarshal([]byte(joined), &data); err != nil {
				return nil
			}
		}
		return fn(event, data)
	}

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if err := flush(); err != nil {
				return err
			}
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			dataLines = append(dataLines, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Join(ErrTimeout, err)
	}
	return flush()
}
