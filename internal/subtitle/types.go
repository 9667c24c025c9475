package subtitle

import "time"

// Cue is one timed caption block. Sequence is informational only; cues are
// ordered by their position in the source.
type Cue struct {
	Sequence int
	Start    time.Duration
	End      time.Duration
	Text     string
}

// Extensions lists the file extensions handled as subtitle input.
var Extensions = []string{".srt"}
