package graphrag

import (
	"encoding/json"
	"regexp"
	"strings"
)

// DefaultHighlightTerms are the domain entities bolded in formatted
// responses when no custom list is configured.
var DefaultHighlightTerms = []string{
	"Cost Rental", "Housing Agency", "Local Authority",
	"Dublin", "Ireland", "Government", "Citizen",
}

var (
	bulletPattern = regexp.MustCompile(`(?m)^[•·\-\*]\s+`)
	blankPattern  = regexp.MustCompile(`\n\n+`)
)

// contextDisplayLimit caps how much raw context is shown before
// truncation.
const contextDisplayLimit = 1000

// FormatResponse tidies a search answer into readable markdown:
// bullet markers are normalized, repeated blank lines collapsed, the
// given domain terms bolded, and long runs of sentences regrouped into
// short paragraphs.
func FormatResponse(response string, highlightTerms []string) string {
	if response == "" {
		return response
	}

	formatted := strings.TrimSpace(response)
	formatted = bulletPattern.ReplaceAllString(formatted, "- ")
	formatted = blankPattern.ReplaceAllString(formatted, "\n\n")

	for _, term := range highlightTerms {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		if err != nil {
			continue
		}
		formatted = re.ReplaceAllString(formatted, "**"+term+"**")
	}

	return groupSentences(formatted)
}

// groupSentences splits long answers into paragraphs of three
// sentences each.
func groupSentences(text string) string {
	sentences := strings.Split(text, ". ")
	if len(sentences) <= 3 {
		return text
	}

	var paragraphs []string
	var current []string
	for _, sentence := range sentences {
		current = append(current, sentence)
		if len(current) >= 3 {
			paragraphs = append(paragraphs, strings.Join(current, ". ")+".")
			current = nil
		}
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, ". "))
	}

	return strings.Join(paragraphs, "\n\n")
}

// FormatContext prepares the raw search context for display.
// Structured JSON is pretty-printed inside a fenced block; anything
// else is fenced as-is, truncated when very long.
func FormatContext(contextData string) string {
	if strings.TrimSpace(contextData) == "" {
		return "No context data available"
	}

	if strings.HasPrefix(contextData, "[") || strings.HasPrefix(contextData, "{") {
		var parsed any
		if err := json.Unmarshal([]byte(contextData), &parsed); err == nil {
			if pretty, err := json.MarshalIndent(parsed, "", "  "); err == nil {
				return "```json\n" + string(pretty) + "\n```"
			}
		}
	}

	if runes := []rune(contextData); len(runes) > contextDisplayLimit {
		contextData = string(runes[:contextDisplayLimit]) + "... (truncated)"
	}
	return "```\n" + contextData + "\n```"
}
