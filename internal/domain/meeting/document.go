package meeting

import (
	"fmt"
	"strings"
)

const (
	placeholderNoSummary    = "(No summary provided)"
	placeholderNoActions    = "(No action items recorded)"
	placeholderNoTranscript = "(No transcript available)"
)

// BuildDocument renders the summary, action items and transcript into
// one document with three fixed sections. Segments arrive with their
// display labels already resolved. Empty sections get a placeholder;
// nothing is ever invented for them. Rendering the same inputs twice
// yields byte-identical output.
func BuildDocument(summary MeetingSummary, segments []Segment) string {
	parts := []string{
		"Meeting Summary",
		"===============",
	}
	if text := strings.TrimSpace(summary.Summary); text != "" {
		parts = append(parts, text)
	} else {
		parts = append(parts, placeholderNoSummary)
	}

	parts = append(parts, "", "Action Items", "============")
	if len(summary.ActionItems) > 0 {
		for _, item := range summary.ActionItems {
			parts = append(parts, renderActionItem(item))
		}
	} else {
		parts = append(parts, placeholderNoActions)
	}

	parts = append(parts, "", "Transcript", "==========")
	if transcript := renderTranscript(segments); transcript != "" {
		parts = append(parts, transcript)
	} else {
		parts = append(parts, placeholderNoTranscript)
	}

	return strings.TrimSpace(strings.Join(parts, "\n")) + "\n"
}

func renderActionItem(item ActionItem) string {
	if item.Owner != "" {
		return fmt.Sprintf("- %s (Owner: %s)", item.Description, item.Owner)
	}
	return "- " + item.Description
}

// renderTranscript emits one line per segment, in segment order. Lines
// are never re-sorted by time.
func renderTranscript(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", FormatTimestamp(seg.Start), seg.Speaker, seg.Text))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// FormatTimestamp renders seconds as mm:ss, or h:mm:ss from one hour up.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
