package textproc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when model output contains nothing that looks like JSON.
var ErrNoJSON = errors.New("no JSON value in model output")

// ExtractJSON strips markdown code fences and surrounding prose from model
// output that is expected to hold a single JSON object or array.
func ExtractJSON(s string) string {
	s = strings.TrimSpace(s)

	// Try ```json ... ``` first, then plain ``` ... ```.
	for _, fence := range []string{"```json", "```"} {
		if after, found := strings.CutPrefix(s, fence); found {
			if idx := strings.LastIndex(after, "```"); idx >= 0 {
				after = after[:idx]
			}
			s = strings.TrimSpace(after)
			break
		}
	}

	// Some model responses include extra prose around the JSON, and the prose
	// itself may contain brackets.
	if v, ok := longestJSONValue(s); ok {
		return v
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	closer := "}"
	if s[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(s, closer)
	if end > start {
		return s[start : end+1]
	}
	return s
}

// longestJSONValue decodes a JSON value at every '{' or '[' in s and returns
// the longest one that parses. Nested values are skipped once their parent
// decodes.
func longestJSONValue(s string) (string, bool) {
	var best string
	for i := 0; i < len(s); {
		off := strings.IndexAny(s[i:], "{[")
		if off < 0 {
			break
		}
		start := i + off

		dec := json.NewDecoder(strings.NewReader(s[start:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			i = start + 1
			continue
		}

		end := start + int(dec.InputOffset())
		if end-start > len(best) {
			best = s[start:end]
		}
		i = end
	}
	return best, best != ""
}

// StringList parses model output as either a bare JSON array of strings or an
// object holding such an array under key. An object whose key is missing or
// not an array yields an empty list; text that is not JSON at all is an error.
// The result is never nil.
func StringList(text, key string) ([]string, error) {
	cleaned := ExtractJSON(text)
	if cleaned == "" {
		return []string{}, ErrNoJSON
	}

	var arr []string
	if err := json.Unmarshal([]byte(cleaned), &arr); err == nil {
		return Compact(arr), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return []string{}, fmt.Errorf("parsing model JSON: %w", err)
	}

	raw, ok := obj[key]
	if !ok {
		return []string{}, nil
	}
	if err := json.Unmarshal(raw, &arr); err != nil {
		return []string{}, nil
	}
	return Compact(arr), nil
}
