package agentclient

// ChunkKind tags which arm of ParsedChunk is populated. Chunks are a pure,
// order-preserving function of one raw (event, data) pair from the agent's
// stream_mode=["updates","tasks","events"] subscription; metadata arrives
// once at run start regardless of stream_mode.
type ChunkKind string

const (
	ChunkMetadata ChunkKind = "metadata"
	ChunkValues   ChunkKind = "values"
	ChunkTasks    ChunkKind = "tasks"
	ChunkUpdates  ChunkKind = "updates"
	ChunkEvents   ChunkKind = "events"
)

// LastMessageType classifies the role of the most recently streamed AI content.
type LastMessageType string

const (
	MessageAI      LastMessageType = "ai"
	MessageTool    LastMessageType = "tool"
	MessageUnknown LastMessageType = "unknown"
)

// ParsedChunk is the normalized, tagged-union shape every raw agent chunk is
// parsed into. Only the fields relevant to Kind are meaningful; callers
// switch on Kind before reading the rest.
type ParsedChunk struct {
	Kind ChunkKind
	Raw  map[string]any

	// Metadata arm.
	RunID string

	// Values arm.
	Messages      []map[string]any
	IsInterrupted bool
	InterruptMsg  string

	// Tasks arm.
	TaskID          string
	TaskName        string
	TaskError       string
	TaskTriggers    []string
	IsNodeStarted   bool
	IsNodeCompleted bool

	// Updates arm.
	NodeName   string
	NodeOutput map[string]any

	// Events arm.
	EventName   string
	IsAIMessage bool
	IsToolCall  bool
	EventData   map[string]any
	ChunkData   string
}

// ParseChunk is a pure function over one raw (event, data) pair yielded by
// the agent stream. It returns ok=false for a chunk type the caller should
// skip entirely rather than forward to the client.
func ParseChunk(event string, data map[string]any) (ParsedChunk, bool) {
	switch event {
	case "metadata":
		runID, _ := data["run_id"].(string)
		if runID == "" {
			return ParsedChunk{}, false
		}
		return ParsedChunk{Kind: ChunkMetadata, Raw: data, RunID: runID}, true

	case "values":
		chunk := ParsedChunk{Kind: ChunkValues, Raw: data}
		if msgs, ok := data["messages"].([]any); ok {
			chunk.Messages = toMapSlice(msgs)
		}
		chunk.IsInterrupted, chunk.InterruptMsg = extractInterrupt(data)
		return chunk, true

	case "tasks":
		chunk := ParsedChunk{Kind: ChunkTasks, Raw: data}
		chunk.TaskID, _ = data["id"].(string)
		chunk.TaskName, _ = data["name"].(string)
		if errVal, ok := data["error"]; ok && errVal != nil {
			if s, ok := errVal.(string); ok {
				chunk.TaskError = s
			}
		}
		if triggers, ok := data["triggers"].([]any); ok {
			chunk.TaskTriggers = toStringSlice(triggers)
		}
		_, hasResult := data["result"]
		_, hasError := data["error"]
		chunk.IsNodeCompleted = hasResult || hasError
		chunk.IsNodeStarted = !chunk.IsNodeCompleted
		chunk.IsInterrupted, chunk.InterruptMsg = extractInterrupt(data)
		return chunk, true

	case "updates":
		chunk := ParsedChunk{Kind: ChunkUpdates, Raw: data}
		chunk.IsInterrupted, chunk.InterruptMsg = extractInterrupt(data)
		for k, v := range data {
			if k == "__interrupt__" {
				continue
			}
			chunk.NodeName = k
			if out, ok := v.(map[string]any); ok {
				chunk.NodeOutput = out
			}
			break
		}
		return chunk, true

	case "events":
		inner, _ := data["event"].(string)
		if inner == "" {
			return ParsedChunk{}, false
		}
		chunk := ParsedChunk{Kind: ChunkEvents, Raw: data, EventName: inner}
		eventData, _ := data["data"].(map[string]any)
		chunk.EventData = eventData
		chunk.IsAIMessage, chunk.IsToolCall, chunk.ChunkData = extractEventContent(inner, eventData)
		return chunk, true

	default:
		return ParsedChunk{}, false
	}
}

// extractInterrupt detects a LangGraph __interrupt__ marker, surfacing its
// human-readable message. Shape:
//
//	{"__interrupt__": [{"value": {"msg": "...", ...}, "id": "..."}]}
func extractInterrupt(data map[string]any) (bool, string) {
	raw, ok := data["__interrupt__"]
	if !ok {
		return false, ""
	}
	items, ok := raw.([]any)
	if !ok || len(items) == 0 {
		return true, ""
	}
	first, ok := items[0].(map[string]any)
	if !ok {
		return true, ""
	}
	value, ok := first["value"].(map[string]any)
	if !ok {
		return true, ""
	}
	msg, _ := value["msg"].(string)
	return true, msg
}

// extractEventContent inspects an on_chat_model_* event's inner data for
// streamed AI text content or the first non-empty tool-call-chunk args.
func extractEventContent(eventName string, data map[string]any) (isAI bool, isTool bool, content string) {
	if data == nil {
		return false, false, ""
	}
	chunk, ok := data["chunk"].(map[string]any)
	if !ok {
		return false, false, ""
	}

	if s, ok := chunk["content"].(string); ok && s != "" {
		return true, false, s
	}

	if parts, ok := chunk["content"].([]any); ok {
		for _, p := range parts {
			part, ok := p.(map[string]any)
			if !ok {
				continue
			}
			if pj, ok := part["partial_json"].(string); ok && pj != "" {
				return true, false, pj
			}
			if text, ok := part["text"].(string); ok && text != "" {
				return true, false, text
			}
		}
	}

	if toolChunks, ok := chunk["tool_call_chunks"].([]any); ok {
		for _, tc := range toolChunks {
			tcMap, ok := tc.(map[string]any)
			if !ok {
				continue
			}
			if args, ok := tcMap["args"].(string); ok && args != "" {
				return false, true, args
			}
		}
	}

	return eventName == "on_chat_model_stream", false, ""
}

func toMapSlice(in []any) []map[string]any {
	out := make([]map[string]any, 0, len(in))
	for _, v := range in {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func toStringSlice(in []any) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
