package entities

import "strings"

// Transcript accumulates per-segment transcription text in segment order.
// Each appended part is followed by a single space, matching the separator
// the aggregation contract requires.
type Transcript struct {
	builder strings.Builder
}

// Append adds the text of the next segment to the transcript.
func (t *Transcript) Append(text string) {
	t.builder.WriteString(text)
	t.builder.WriteString(" ")
}

// Text returns the aggregated transcript.
func (t *Transcript) Text() string {
	return t.builder.String()
}

// Prefix returns the first max characters of a text, or the whole text when
// it is shorter. Truncation is hard and may cut mid-sentence; the boundary
// counts characters, not bytes.
func Prefix(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
