package summarizer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea-miner/config"
	"idea-miner/llm"
	"idea-miner/summarizer"
)

type fakeGenerator struct {
	text string
	err  error
	reqs []llm.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req llm.Request) (*llm.Response, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Text: f.text, ModelName: req.Model}, nil
}

func TestSummarize(t *testing.T) {
	gen := &fakeGenerator{text: "  A tool for freelancers to chase invoices.\n"}
	s := summarizer.NewSummarizer(gen, config.Default().LLM)

	result := s.Summarize(context.Background(), "I keep chasing clients for payment")

	require.True(t, result.OK())
	assert.Equal(t, "A tool for freelancers to chase invoices.", result.Text)
	assert.Equal(t, result.Text, result.Value())
	assert.Equal(t, config.DefaultModel, result.Model)

	require.Len(t, gen.reqs, 1)
	req := gen.reqs[0]
	assert.Equal(t, "summarize", req.Operation)
	assert.Equal(t, 150, req.MaxOutputTokens)
	assert.Equal(t, summarizer.SUMMARY_SYSTEM_INSTRUCTION, req.SystemInstruction)
	assert.True(t, strings.HasSuffix(req.Prompt, ": I keep chasing clients for payment"))
	assert.Contains(t, req.Prompt, "No startup idea found.")
}

func TestSummarize_Failure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("503 overloaded")}
	s := summarizer.NewSummarizer(gen, config.Default().LLM)

	result := s.Summarize(context.Background(), "text")

	assert.False(t, result.OK())
	assert.Empty(t, result.Text)
	assert.Equal(t, summarizer.SummaryFailureText, result.Value())
}

func TestIdeaGenerator(t *testing.T) {
	gen := &fakeGenerator{text: "Shared kitchen booking for food trucks"}
	cfg := config.Default().LLM
	cfg.IdeaModel = "gemini-2.5-pro"
	g := summarizer.NewIdeaGenerator(gen, cfg)

	result := g.Generate(context.Background(), "Idea1\n\nIdea2")

	require.True(t, result.OK())
	assert.Equal(t, "Shared kitchen booking for food trucks", result.Text)
	assert.Equal(t, "gemini-2.5-pro", result.Model)

	req := gen.reqs[0]
	assert.Equal(t, "generate_idea", req.Operation)
	assert.Equal(t, "gemini-2.5-pro", req.Model)
	assert.Equal(t, 200, req.MaxOutputTokens)
	assert.Equal(t, summarizer.IDEA_SYSTEM_INSTRUCTION, req.SystemInstruction)
	assert.True(t, strings.HasSuffix(req.Prompt, ": Idea1\n\nIdea2"))
}

func TestIdeaGenerator_Failure(t *testing.T) {
	gen := &fakeGenerator{err: llm.ErrDailyQuotaExceeded}
	g := summarizer.NewIdeaGenerator(gen, config.Default().LLM)

	result := g.Generate(context.Background(), "ctx")

	assert.False(t, result.OK())
	assert.ErrorIs(t, result.Err, llm.ErrDailyQuotaExceeded)
	assert.Equal(t, summarizer.IdeaFailureText, result.Value())
}
