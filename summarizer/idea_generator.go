package summarizer

import (
	"context"
	"fmt"

	"idea-miner/config"
	"idea-miner/llm"
)

const IDEA_SYSTEM_INSTRUCTION = "You are a creative assistant that generates unique startup ideas."

const IDEA_PROMPT = "Based on the following startup ideas and business concepts, generate a unique and innovative " +
	"startup idea that hasn't been mentioned before: %s"

// IdeaGenerator synthesizes one new idea from a batch of summaries.
type IdeaGenerator struct {
	generator llm.Generator
	model     string
	maxTokens int
}

func NewIdeaGenerator(generator llm.Generator, cfg config.LLMConfig) *IdeaGenerator {
	return &IdeaGenerator{
		generator: generator,
		model:     cfg.IdeaModel,
		maxTokens: cfg.IdeaMaxTokens,
	}
}

func (g *IdeaGenerator) Generate(ctx context.Context, batchContext string) Result {
	resp, err := g.generator.Generate(ctx, llm.Request{
		Operation:         "generate_idea",
		Model:             g.model,
		SystemInstruction: IDEA_SYSTEM_INSTRUCTION,
		Prompt:            fmt.Sprintf(IDEA_PROMPT, batchContext),
		MaxOutputTokens:   g.maxTokens,
	})
	if err != nil {
		config.Logger.Errorf("failed to generate idea: %v", err)
		return failure(err, IdeaFailureText)
	}
	return success(resp.Text, resp.ModelName)
}
