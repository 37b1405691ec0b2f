package meeting

import "strings"

// Utterance is one contiguous span of speech attributed to a raw speaker
// identifier by the transcription backend. Times are in seconds.
type Utterance struct {
	SpeakerID string
	Text      string
	Start     float64
	End       float64
}

// Segment is an utterance whose raw speaker identifier has been resolved
// to a display label.
type Segment struct {
	Speaker string
	Text    string
	Start   float64
	End     float64
}

// TranscriptionResult holds the normalized output of one completed
// transcription job. Utterances keep the order the service returned them
// in, which is not necessarily time-sorted.
type TranscriptionResult struct {
	Text       string
	Utterances []Utterance
}

// FullText returns the flat transcript text, falling back to the joined
// utterance texts when the service returned none.
func (r *TranscriptionResult) FullText() string {
	if r.Text != "" {
		return r.Text
	}
	parts := make([]string, 0, len(r.Utterances))
	for _, u := range r.Utterances {
		parts = append(parts, u.Text)
	}
	return strings.Join(parts, "\n")
}

// Degraded reports whether the result came from the sentence-split
// fallback: every utterance carries zero timestamps and a single
// synthetic speaker.
func (r *TranscriptionResult) Degraded() bool {
	if len(r.Utterances) == 0 {
		return false
	}
	speaker := r.Utterances[0].SpeakerID
	for _, u := range r.Utterances {
		if u.Start != 0 || u.End != 0 || u.SpeakerID != speaker {
			return false
		}
	}
	return true
}

// ActionItem is a follow-up task extracted from the meeting. Owner is
// empty for plain string items.
type ActionItem struct {
	Description string
	Owner       string
}

// MeetingSummary is the normalized output of one summarisation call.
type MeetingSummary struct {
	Summary     string
	ActionItems []ActionItem
}
