package entities

import "strings"

// TranscriptSegment is one timed caption line
type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Transcript is the text acquired for a single video
type Transcript struct {
	FullText string              `json:"full_text"`
	Language string              `json:"language"`
	Segments []TranscriptSegment `json:"segments"`
}

// NewTranscript builds a transcript from ordered segments. Each segment
// contributes " " + text to FullText.
func NewTranscript(language string, segments []TranscriptSegment) *Transcript {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(" ")
		b.WriteString(seg.Text)
	}
	copied := make([]TranscriptSegment, len(segments))
	copy(copied, segments)
	return &Transcript{
		FullText: b.String(),
		Language: language,
		Segments: copied,
	}
}

// WordCount counts whitespace separated words in the full text
func (t *Transcript) WordCount() int {
	if t == nil {
		return 0
	}
	return len(strings.Fields(t.FullText))
}
