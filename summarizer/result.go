package summarizer

import "strings"

// Markers rendered in place of a failed call's text. The post filter also rejects them;
// they are never returned as a successful Text.
const (
	SummaryFailureText = "Error in summarization"
	IdeaFailureText    = "Error in idea generation"
)

// Result is the outcome of one generative call. Exactly one of Text or Err is meaningful.
type Result struct {
	Text  string
	Model string
	Err   error

	failureText string
}

func success(text, model string) Result {
	return Result{Text: strings.TrimSpace(text), Model: model}
}

func failure(err error, failureText string) Result {
	return Result{Err: err, failureText: failureText}
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Value returns the text, or the failure marker when the call failed.
func (r Result) Value() string {
	if r.Err != nil {
		return r.failureText
	}
	return r.Text
}
