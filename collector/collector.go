// Package collector accumulates streamed agent chunks into a final,
// agent-specific artifact.
package collector

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/aurorah/streamcore/agentclient"
)

// Collector accumulates parsed agent chunks for a single run and produces a
// final artifact on demand. Implementations must be safe for the
// add/append/set calls to interleave with a concurrent FormatResult call
// only after streaming has finished; orchestrator never calls FormatResult
// mid-stream.
type Collector interface {
	AddChunk(chunk agentclient.ParsedChunk)
	AppendAIContent(s string)
	SetMetadata(key string, value any)
	GetMetadata(key string) (any, bool)
	GetAIContent() string
	FormatResult() map[string]any
}

// BaseCollector is the default Collector: FormatResult wraps the
// accumulated AI text verbatim.
type BaseCollector struct {
	mu       sync.Mutex
	chunks   []agentclient.ParsedChunk
	content  strings.Builder
	metadata map[string]any
}

// NewBaseCollector creates an empty BaseCollector.
func NewBaseCollector() *BaseCollector {
	return &BaseCollector{metadata: make(map[string]any)}
}

func (c *BaseCollector) AddChunk(chunk agentclient.ParsedChunk) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chunks = append(c.chunks, chunk)
}

func (c *BaseCollector) AppendAIContent(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content.WriteString(s)
}

func (c *BaseCollector) SetMetadata(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metadata[key] = value
}

func (c *BaseCollector) GetMetadata(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.metadata[key]
	return v, ok
}

func (c *BaseCollector) GetAIContent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content.String()
}

// FormatResult returns {"content": ai_content}.
func (c *BaseCollector) FormatResult() map[string]any {
	return map[string]any{"content": c.GetAIContent()}
}

// Get returns the Collector implementation registered for agentID.
// Unknown ids return ErrUnsupportedAgent.
func Get(agentID agentclient.AssistantID, log *slog.Logger) (Collector, error) {
	switch agentID {
	case agentclient.TranslationAssistantA1, agentclient.TranslationAssistantA2:
		return NewTranslationCollector(log), nil
	case agentclient.TaskAssistant:
		return NewBaseCollector(), nil
	default:
		return nil, ErrUnsupportedAgent
	}
}
