// Package ai provides response-cleaning utilities for delegate replies.
package ai

import (
	"encoding/json"
	"strings"
)

// structuredReply is the optional JSON shape a delegate may embed in its
// free-text answer.
type structuredReply struct {
	Reply  string `json:"reply"`
	Career string `json:"career"`
}

// ResponseCleaner extracts an optionally embedded JSON object from delegate
// free text. Extraction is best-effort: any parse failure falls back to the
// raw text.
type ResponseCleaner struct{}

// NewResponseCleaner creates a new response cleaner.
func NewResponseCleaner() *ResponseCleaner {
	return &ResponseCleaner{}
}

// Extract returns the structured reply and career when the text embeds a
// parseable JSON object; otherwise it returns the raw text and an empty
// career.
func (rc *ResponseCleaner) Extract(raw string) (reply, career string) {
	cleaned := rc.stripMarkdownFences(raw)
	obj := rc.firstJSONObject(cleaned)
	if obj == "" {
		return raw, ""
	}
	var sr structuredReply
	if err := json.Unmarshal([]byte(obj), &sr); err != nil || sr.Reply == "" {
		return raw, ""
	}
	return sr.Reply, sr.Career
}

// stripMarkdownFences removes ```json / ``` markers some models wrap around
// structured output.
func (rc *ResponseCleaner) stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// firstJSONObject returns the first brace-balanced object in s, or empty.
func (rc *ResponseCleaner) firstJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
