// Package textproc holds the post-processing steps applied to model output
// before it is returned to clients: numbered-list splitting, JSON extraction,
// markdown stripping and heading normalization.
package textproc

import (
	"regexp"
	"strings"
)

// listMarkerPattern matches a leading "1.", "1)" or "1 " list marker.
var listMarkerPattern = regexp.MustCompile(`^\d+(?:[.)]\s*|\s+)`)

// NumberedList splits model output into items, one per line. Leading list
// markers and surrounding whitespace are stripped, blank lines dropped, and
// the result is capped at max items (max <= 0 means no cap). The result is
// never nil.
func NumberedList(text string, max int) []string {
	items := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = listMarkerPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return Limit(items, max)
}

// Limit truncates items to at most n entries. n <= 0 means no limit.
// A nil slice is returned as an empty slice.
func Limit(items []string, n int) []string {
	if items == nil {
		return []string{}
	}
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// PadTo returns exactly n entries: items beyond n are dropped and missing
// slots are filled with empty strings.
func PadTo(items []string, n int) []string {
	out := make([]string, n)
	copy(out, items)
	return out
}

// Compact trims every item and drops the empty ones.
func Compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// TruncateWords returns the first maxWords whitespace-delimited words from s.
// If s contains fewer than maxWords words (or maxWords <= 0), it is returned
// unchanged.
func TruncateWords(s string, maxWords int) string {
	if maxWords <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ")
}
