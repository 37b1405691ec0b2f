package meeting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDocumentIdempotent(t *testing.T) {
	summary := MeetingSummary{
		Summary:     "We agreed on the plan.",
		ActionItems: []ActionItem{{Description: "ship", Owner: "Dana"}, {Description: "notes"}},
	}
	segments := []Segment{
		{Speaker: "Alice", Text: "Hello everyone.", Start: 0, End: 1.5},
		{Speaker: "Bob", Text: "Hi.", Start: 1.5, End: 3},
	}

	first := BuildDocument(summary, segments)
	second := BuildDocument(summary, segments)
	assert.Equal(t, first, second)
}

func TestBuildDocumentSections(t *testing.T) {
	summary := MeetingSummary{
		Summary:     "Short recap.",
		ActionItems: []ActionItem{{Description: "ship", Owner: "Dana"}, {Description: "follow up"}},
	}
	segments := []Segment{
		{Speaker: "Alice", Text: "Hello.", Start: 75, End: 80},
	}

	doc := BuildDocument(summary, segments)

	assert.Contains(t, doc, "Meeting Summary\n===============\nShort recap.")
	assert.Contains(t, doc, "- ship (Owner: Dana)")
	assert.Contains(t, doc, "- follow up")
	assert.Contains(t, doc, "[01:15] Alice: Hello.")
	assert.True(t, strings.HasSuffix(doc, "\n"))

	// Fixed section order.
	assert.Less(t, strings.Index(doc, "Meeting Summary"), strings.Index(doc, "Action Items"))
	assert.Less(t, strings.Index(doc, "Action Items"), strings.Index(doc, "Transcript"))
}

func TestBuildDocumentPlaceholders(t *testing.T) {
	doc := BuildDocument(MeetingSummary{}, nil)

	assert.Contains(t, doc, "(No summary provided)")
	assert.Contains(t, doc, "(No action items recorded)")
	assert.Contains(t, doc, "(No transcript available)")
}

func TestBuildDocumentKeepsSegmentOrder(t *testing.T) {
	segments := []Segment{
		{Speaker: "B", Text: "later first", Start: 10, End: 12},
		{Speaker: "A", Text: "earlier second", Start: 2, End: 4},
	}
	doc := BuildDocument(MeetingSummary{Summary: "s"}, segments)

	assert.Less(t, strings.Index(doc, "later first"), strings.Index(doc, "earlier second"))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "00:00", FormatTimestamp(0))
	assert.Equal(t, "00:05", FormatTimestamp(5.9))
	assert.Equal(t, "01:15", FormatTimestamp(75))
	assert.Equal(t, "1:02:05", FormatTimestamp(3725))
	assert.Equal(t, "00:00", FormatTimestamp(-3))
}
