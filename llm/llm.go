package llm

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrDailyQuotaExceeded is returned when the request limiter refuses a call for the rest of the day.
	ErrDailyQuotaExceeded = errors.New("llm daily request quota exceeded")
	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("llm returned an empty response")
	// ErrMaxTokens is joined to ErrEmptyResponse when the output token limit was hit before any text.
	ErrMaxTokens = errors.New("llm output token limit reached")
)

// Request is a single generative call: one system instruction, one user prompt.
type Request struct {
	Operation         string // label used in usage logs, e.g. "summarize"
	Model             string
	SystemInstruction string
	Prompt            string
	MaxOutputTokens   int
}

type TokenUsage struct {
	InputTokens   int64 `json:"input_tokens"`
	OutputTokens  int64 `json:"output_tokens"`
	ThoughtTokens int64 `json:"thought_tokens"`
	TotalTokens   int64 `json:"total_tokens"`
}

type Response struct {
	Text         string
	Usage        TokenUsage
	ModelName    string
	ModelVersion string
	FinishReason string
	Latency      time.Duration
}

// Generator is the external generative text service.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}
