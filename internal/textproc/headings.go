package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxHeadingRunes bounds lines the fallback heuristic will treat as headings.
const maxHeadingRunes = 30

// NormalizeHeadings finds the subheadings in generated article text and
// rewrites each one as plain title-cased text. It returns the rewritten text
// and the headings in order of appearance (never nil).
//
// A line is a heading when it is an ATX markdown heading ("## Section"), or,
// for output that ignores that contract, when it is short, has no terminal
// punctuation and is either all upper-case or bolded.
func NormalizeHeadings(text string) (string, []string) {
	lines := strings.Split(text, "\n")
	headings := []string{}

	for i, line := range lines {
		if !isMarkedHeading(line) && !IsHeadingCandidate(line) {
			continue
		}
		heading := TitleWords(StripMarkdown(strings.TrimSpace(line)))
		if heading == "" {
			continue
		}
		lines[i] = heading
		headings = append(headings, heading)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), headings
}

// isMarkedHeading reports whether line is an ATX heading such as "## Title".
func isMarkedHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	hashes := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
	if hashes == 0 || hashes > 6 {
		return false
	}
	rest := trimmed[hashes:]
	return strings.HasPrefix(rest, " ") && strings.TrimSpace(rest) != ""
}

// IsHeadingCandidate applies the length, punctuation and casing heuristic to
// a single line of model output.
func IsHeadingCandidate(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || utf8.RuneCountInString(line) > maxHeadingRunes {
		return false
	}

	body := strings.TrimRight(line, "*_ ")
	if body == "" {
		return false
	}
	if last, _ := utf8.DecodeLastRuneInString(body); strings.ContainsRune(".!?:;,", last) {
		return false
	}

	bold := strings.Contains(line, "**") || strings.Contains(line, "__")
	return bold || isAllUpper(line)
}

// isAllUpper reports whether s has at least one letter and no lower-case
// letters.
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// TitleWords capitalizes the first letter of every word and lower-cases the
// rest: "best OPPORTUNITY" becomes "Best Opportunity".
func TitleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
