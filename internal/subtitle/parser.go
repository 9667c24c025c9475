package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reSequence = regexp.MustCompile(`^\d+$`)
	reTiming   = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}[,.]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[,.]\d{3})`)
	reMarkup   = regexp.MustCompile(`<[^>]*>`)
)

// ParseCues extracts the well-formed cue blocks from raw SRT content.
// Regions that do not match the cue grammar are skipped, and cues whose text
// is empty once markup is removed are dropped. An input without any cue
// yields an empty slice.
func ParseCues(content string) []Cue {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var cues []Cue
	for _, block := range strings.Split(content, "\n\n") {
		cue, ok := parseBlock(block)
		if !ok {
			continue
		}
		cues = append(cues, cue)
	}
	return cues
}

// parseBlock looks for a sequence line immediately followed by a timing line
// and treats every line after them as cue text.
func parseBlock(block string) (Cue, bool) {
	lines := strings.Split(strings.Trim(block, "\n"), "\n")

	for i := 0; i+2 < len(lines); i++ {
		seqLine := strings.TrimSpace(lines[i])
		if !reSequence.MatchString(seqLine) {
			continue
		}
		m := reTiming.FindStringSubmatch(strings.TrimSpace(lines[i+1]))
		if m == nil {
			continue
		}

		start, errStart := parseTimestamp(m[1])
		end, errEnd := parseTimestamp(m[2])
		if errStart != nil || errEnd != nil {
			return Cue{}, false
		}

		text := strings.TrimSpace(strings.Join(lines[i+2:], "\n"))
		text = strings.TrimSpace(reMarkup.ReplaceAllString(text, ""))
		if text == "" {
			return Cue{}, false
		}

		seq, _ := strconv.Atoi(seqLine)
		return Cue{Sequence: seq, Start: start, End: end, Text: text}, true
	}
	return Cue{}, false
}

// parseTimestamp converts HH:MM:SS,mmm (or HH:MM:SS.mmm) to a duration.
func parseTimestamp(value string) (time.Duration, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ".", ",")
	clock, millisText, ok := strings.Cut(value, ",")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(millisText)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}
