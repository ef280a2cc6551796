// Package jsonx extracts JSON from model output that may be wrapped in
// Markdown code fences or slightly malformed.
package jsonx

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Unmarshal parses raw text into v. It strips Markdown code fences first,
// then tries a strict parse, then a jsonrepair pass. Callers that need
// degrade-to-empty semantics decide what to do with the returned error.
func Unmarshal(raw string, v interface{}) error {
	text := StripFences(raw)
	if text == "" {
		return fmt.Errorf("empty payload")
	}

	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	repaired, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return fmt.Errorf("json repair: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("unmarshal repaired json: %w", err)
	}
	return nil
}

// StripFences removes a surrounding ```json ... ``` or ``` ... ``` block.
// Text without fences is returned trimmed and unchanged otherwise.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)

	if i := strings.Index(text, "```json"); i >= 0 {
		text = text[i+len("```json"):]
		if j := strings.Index(text, "```"); j >= 0 {
			text = text[:j]
		}
		return strings.TrimSpace(text)
	}
	if i := strings.Index(text, "```"); i >= 0 {
		text = text[i+len("```"):]
		if j := strings.Index(text, "```"); j >= 0 {
			text = text[:j]
		}
		return strings.TrimSpace(text)
	}
	return text
}
