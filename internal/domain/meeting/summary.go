package meeting

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// PlaceholderSummary is used when the model returned a JSON object
	// without a usable summary value.
	PlaceholderSummary = "No summary generated."

	// DefaultOwner is assigned to structured action items without one.
	DefaultOwner = "Unassigned"
)

// ParseSummaryResponse normalizes the raw text returned by an LLM into a
// MeetingSummary. The response is expected to be a JSON object with
// "summary" and "action_items" keys but is not guaranteed to be one:
// text that does not parse becomes the summary verbatim (trimmed) with
// no action items. Malformed JSON is a normal outcome here, never an
// error.
func ParseSummaryResponse(raw string) MeetingSummary {
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload == nil {
		return MeetingSummary{Summary: strings.TrimSpace(raw)}
	}

	summary := strings.TrimSpace(stringify(payload["summary"]))
	if summary == "" {
		summary = PlaceholderSummary
	}

	return MeetingSummary{
		Summary:     summary,
		ActionItems: normalizeActionItems(payload["action_items"]),
	}
}

func normalizeActionItems(value any) []ActionItem {
	switch v := value.(type) {
	case []any:
		items := make([]ActionItem, 0, len(v))
		for _, entry := range v {
			if obj, ok := entry.(map[string]any); ok {
				description := strings.TrimSpace(stringify(obj["description"]))
				if description == "" {
					// An item without a description is not retained,
					// even when it names an owner.
					continue
				}
				owner := strings.TrimSpace(stringify(obj["owner"]))
				if owner == "" {
					owner = DefaultOwner
				}
				items = append(items, ActionItem{Description: description, Owner: owner})
				continue
			}
			if text := strings.TrimSpace(stringify(entry)); text != "" {
				items = append(items, ActionItem{Description: text})
			}
		}
		return items
	case string:
		// Models occasionally return a single string of bullet points.
		var items []ActionItem
		for _, line := range strings.Split(v, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimSpace(strings.TrimPrefix(line, "- "))
			if line != "" {
				items = append(items, ActionItem{Description: line})
			}
		}
		return items
	default:
		return nil
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
