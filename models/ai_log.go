package models

import "time"

// AILog describes one LLM request (system monitoring purpose).
// It is emitted as a debug log line, not stored.
type AILog struct {
	Operation     string    `json:"operation"`
	ModelName     string    `json:"model_name"`
	ModelVersion  string    `json:"model_version"`
	InputTokens   int64     `json:"input_tokens"`
	OutputTokens  int64     `json:"output_tokens"`
	ThoughtTokens int64     `json:"thought_tokens"`
	TotalTokens   int64     `json:"total_tokens"`
	FinishReason  string    `json:"finish_reason,omitempty"`
	DurationMs    int64     `json:"duration_ms"`
	ErrorMessage  *string   `json:"error_message,omitempty"`
	RequestedAt   time.Time `json:"requested_at"`
	CompletedAt   time.Time `json:"completed_at"`
}
