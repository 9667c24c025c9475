package subtitle

import (
	"slices"
	"strings"
)

// Deduplicate rebuilds continuous prose from rollup cues. Each cue is compared
// only with its immediate predecessor:
//
//   - if it starts with the full predecessor text, only the remainder is kept;
//   - otherwise its lines are kept from the first line that is not already
//     shown by the predecessor (a single overlapping line, or the predecessor's
//     whole line sequence as a prefix).
//
// The first cue is kept as a single fragment, line breaks included. Fragments
// are joined with one space.
func Deduplicate(cues []Cue) string {
	if len(cues) == 0 {
		return ""
	}

	fragments := []string{cues[0].Text}
	for i := 1; i < len(cues); i++ {
		fragments = append(fragments, newFragments(cues[i-1].Text, cues[i].Text)...)
	}
	return strings.Join(fragments, " ")
}

// Clean parses raw SRT content and returns its deduplicated text.
func Clean(content string) string {
	return Deduplicate(ParseCues(content))
}

func newFragments(prev, curr string) []string {
	if rest, ok := strings.CutPrefix(curr, prev); ok {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return nil
		}
		return []string{rest}
	}

	prevLines := splitLines(prev)
	currLines := splitLines(curr)

	start := 0
	if len(prevLines) > 0 && len(currLines) > 0 {
		switch {
		case currLines[0] == prevLines[len(prevLines)-1]:
			start = 1
		case len(prevLines) < len(currLines) && slices.Equal(currLines[:len(prevLines)], prevLines):
			start = len(prevLines)
		}
	}
	return currLines[start:]
}

// splitLines returns the non-empty, trimmed lines of s.
func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
