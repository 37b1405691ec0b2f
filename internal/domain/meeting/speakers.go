package meeting

import (
	"fmt"
	"strings"
)

// LabelResolver maps raw diarisation identifiers to display labels. The
// Nth newly seen identifier is assigned "Speaker N", in order of first
// appearance; every distinct identifier consumes a slot even when an
// override hides its generated default. Overrides are matched
// case-sensitively first, then case-folded so overrides entered as
// free-text key=value pairs still apply.
type LabelResolver struct {
	overrides map[string]string
	folded    map[string]string
	assigned  map[string]string
	next      int
}

// NewLabelResolver returns a resolver with a fresh counter. The override
// map may be nil.
func NewLabelResolver(overrides map[string]string) *LabelResolver {
	r := &LabelResolver{
		overrides: make(map[string]string, len(overrides)),
		folded:    make(map[string]string, len(overrides)),
		assigned:  make(map[string]string),
	}
	for id, label := range overrides {
		r.overrides[id] = label
		r.folded[strings.ToLower(id)] = label
	}
	return r
}

// Resolve returns the display label for a raw speaker identifier.
// Re-encountering a seen identifier returns the same label.
func (r *LabelResolver) Resolve(rawID string) string {
	if _, ok := r.assigned[rawID]; !ok {
		r.next++
		r.assigned[rawID] = fmt.Sprintf("Speaker %d", r.next)
	}
	if label, ok := r.overrides[rawID]; ok {
		return label
	}
	if label, ok := r.folded[strings.ToLower(rawID)]; ok {
		return label
	}
	return r.assigned[rawID]
}

// Apply resolves every utterance into a labelled segment, preserving
// source order.
func (r *LabelResolver) Apply(utterances []Utterance) []Segment {
	segments := make([]Segment, 0, len(utterances))
	for _, u := range utterances {
		segments = append(segments, Segment{
			Speaker: r.Resolve(u.SpeakerID),
			Text:    u.Text,
			Start:   u.Start,
			End:     u.End,
		})
	}
	return segments
}
