package pipeline

import (
	"strings"

	"idea-miner/summarizer"
)

// NoIdeaPhrase is what the summarizer is instructed to answer when a post has no startup idea.
const NoIdeaPhrase = "No startup idea found"

// IsUsable reports whether a summary carries a real idea.
// Both markers are matched anywhere in the text, not only as the whole answer.
func IsUsable(summary string) bool {
	return !strings.Contains(summary, NoIdeaPhrase) &&
		!strings.Contains(summary, summarizer.SummaryFailureText)
}
