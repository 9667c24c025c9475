package subtitle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCues(t *testing.T) {
	content := "1\r\n00:00:01,000 --> 00:00:02,500\r\n<font color=\"#fff\">Hello</font>\r\n\r\n" +
		"2\n00:00:02,500 --> 00:00:04,000\nHello\nworld\n\n"

	cues := ParseCues(content)
	require.Len(t, cues, 2)

	assert.Equal(t, 1, cues[0].Sequence)
	assert.Equal(t, time.Second, cues[0].Start)
	assert.Equal(t, 2500*time.Millisecond, cues[0].End)
	assert.Equal(t, "Hello", cues[0].Text)
	assert.Equal(t, "Hello\nworld", cues[1].Text)
}

func TestParseCuesSkipsMalformedRegions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "empty input",
			content: "",
			want:    nil,
		},
		{
			name:    "no timing line",
			content: "1\nnot a timestamp\ntext\n\n2\n00:00:01,000 --> 00:00:02,000\nkept",
			want:    []string{"kept"},
		},
		{
			name:    "markup only text dropped",
			content: "1\n00:00:01,000 --> 00:00:02,000\n<i></i>\n\n2\n00:00:02,000 --> 00:00:03,000\n  spaced  ",
			want:    []string{"spaced"},
		},
		{
			name:    "header before first cue",
			content: "garbage header\n\n\n1\n00:00:01.000 --> 00:00:02.000 align:start\nvtt style",
			want:    []string{"vtt style"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range ParseCues(tt.content) {
				got = append(got, c.Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	d, err := parseTimestamp("01:02:03,004")
	require.NoError(t, err)
	assert.Equal(t, time.Hour+2*time.Minute+3*time.Second+4*time.Millisecond, d)

	_, err = parseTimestamp("01:02:03")
	assert.Error(t, err)
}
