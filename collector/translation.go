package collector

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

const marker = "┼"

var (
	translatedTextRe = regexp.MustCompile(`(?s)<translated_text>(.*?)</translated_text>`)
	markerRe         = regexp.MustCompile(marker + `(\d+)` + marker)
)

// Segment is one numbered unit of translated text, preserved from the
// source segmentation.
type Segment struct {
	SID  int    `json:"sid"`
	Text string `json:"text"`
}

// TranslationCollector accumulates a translation agent's streamed output
// and parses it into {segments, metadata} per the five-step algorithm
// described in FormatResult.
type TranslationCollector struct {
	*BaseCollector
	log *slog.Logger
}

// NewTranslationCollector creates an empty TranslationCollector.
func NewTranslationCollector(log *slog.Logger) *TranslationCollector {
	if log == nil {
		log = slog.Default()
	}
	return &TranslationCollector{BaseCollector: NewBaseCollector(), log: log}
}

// FormatResult runs the five-step translation-parsing algorithm over the
// accumulated AI text:
//
//  1. A leading `{...}` JSON object immediately preceding `<translated_text>`
//     (or end of text) is lifted out as metadata.
//  2. The `<translated_text>...</translated_text>` body is extracted, or the
//     whole remaining text is used if the tag is absent.
//  3. If the body is already `{"segments":[{sid,text},...]}`, those segments
//     are adopted directly.
//  4. Otherwise the body is parsed as `┼N┼`-marked text into segments.
//  5. If no segments were recovered by either path, the raw text is kept
//     under a `_raw` escape hatch.
func (c *TranslationCollector) FormatResult() map[string]any {
	raw := c.GetAIContent()

	metadata, remainder := extractLeadingMetadata(raw)
	body := extractTranslatedBody(remainder)

	result := map[string]any{}
	if metadata != nil {
		result["metadata"] = metadata
	}

	if segments, ok := parseDirectSegments(body); ok {
		result["segments"] = segments
		return result
	}

	if segments := parseMarkedSegments(body); len(segments) > 0 {
		result["segments"] = segments
		return result
	}

	c.log.Warn("collector: translation body had no parseable segments, retaining raw text")
	result["_raw"] = strings.TrimSpace(body)
	return result
}

// extractLeadingMetadata looks for a balanced `{...}` object at the very
// start of text that is immediately followed (after trimming whitespace) by
// "<translated_text>" or the end of the string. Returns the parsed metadata
// (nil on absence or parse failure) and the text with that prefix removed.
func extractLeadingMetadata(text string) (map[string]any, string) {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	if !strings.HasPrefix(trimmed, "{") {
		return nil, text
	}

	end := matchingBrace(trimmed)
	if end < 0 {
		return nil, text
	}

	candidate := trimmed[:end+1]
	rest := strings.TrimLeft(trimmed[end+1:], " \t\r\n")
	if rest != "" && !strings.HasPrefix(rest, "<translated_text>") {
		return nil, text
	}

	var metadata map[string]any
	if err := json.Unmarshal([]byte(candidate), &metadata); err != nil {
		return nil, text
	}
	if rest == "" {
		// A leading object with no body after it and no <translated_text>
		// tag is indistinguishable from a direct {"segments":[...]} artifact;
		// the round-trip property (step 3) takes priority over treating it
		// as metadata.
		if _, isSegments := metadata["segments"]; isSegments {
			return nil, text
		}
	}
	return metadata, trimmed[end+1:]
}

// matchingBrace finds the index of the closing '}' matching the '{' at
// position 0, respecting quoted strings, or -1 if unbalanced.
func matchingBrace(s string) int {
	if len(s) == 0 || s[0] != '{' {
		return -1
	}
	depth := 0
	inString := false
	escaped := false
	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func extractTranslatedBody(text string) string {
	if m := translatedTextRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return text
}

// directSegments mirrors the direct JSON `{"segments":[...]}` shape.
type directSegments struct {
	Segments []rawSegment `json:"segments"`
}

type rawSegment struct {
	SID  int `json:"sid"`
	Text any `json:"text"`
}

func parseDirectSegments(body string) ([]Segment, bool) {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}

	var parsed directSegments
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil || len(parsed.Segments) == 0 {
		return nil, false
	}

	segments := make([]Segment, 0, len(parsed.Segments))
	for _, s := range parsed.Segments {
		segments = append(segments, Segment{SID: s.SID, Text: toText(s.Text)})
	}
	return segments, true
}

func toText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// parseMarkedSegments splits `┼N┼`-marked text into segments; text for each
// segment runs from after its marker to the next marker's start, or to the
// end of the string for the last segment. Idempotent on already-marked text.
func parseMarkedSegments(text string) []Segment {
	matches := markerRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	segments := make([]Segment, 0, len(matches))
	for i, m := range matches {
		sid, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		start := m[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		segments = append(segments, Segment{SID: sid, Text: text[start:end]})
	}
	return segments
}
