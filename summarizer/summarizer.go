package summarizer

import (
	"context"
	"fmt"

	"idea-miner/config"
	"idea-miner/llm"
)

const SUMMARY_SYSTEM_INSTRUCTION = "You are a helpful assistant that summarizes startup ideas and business concepts."

const SUMMARY_PROMPT = "Summarize the following text, focusing on any startup ideas or business concepts. " +
	"If there are no clear startup ideas, respond with 'No startup idea found.': %s"

// Summarizer turns one post text into a short summary of the startup ideas it contains.
type Summarizer struct {
	generator llm.Generator
	model     string
	maxTokens int
}

func NewSummarizer(generator llm.Generator, cfg config.LLMConfig) *Summarizer {
	return &Summarizer{
		generator: generator,
		model:     cfg.SummaryModel,
		maxTokens: cfg.SummaryMaxTokens,
	}
}

// Summarize never fails outright: service errors come back as a failed Result.
func (s *Summarizer) Summarize(ctx context.Context, text string) Result {
	resp, err := s.generator.Generate(ctx, llm.Request{
		Operation:         "summarize",
		Model:             s.model,
		SystemInstruction: SUMMARY_SYSTEM_INSTRUCTION,
		Prompt:            fmt.Sprintf(SUMMARY_PROMPT, text),
		MaxOutputTokens:   s.maxTokens,
	})
	if err != nil {
		config.Logger.Errorf("failed to summarize: %v", err)
		return failure(err, SummaryFailureText)
	}
	return success(resp.Text, resp.ModelName)
}
