package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"idea-miner/config"
	"idea-miner/models"
)

// Limiter gates every outgoing request. quota.RequestLimiter implements it.
type Limiter interface {
	WaitAndReserve(ctx context.Context) (bool, error)
}

type GeminiGenerator struct {
	client         *genai.Client
	limiter        Limiter
	timeout        time.Duration
	thinkingBudget int32
}

// NewGeminiGenerator creates one genai client shared by every call.
func NewGeminiGenerator(ctx context.Context, apiKey string, cfg config.LLMConfig, limiter Limiter) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	if cfg.Provider != "google" {
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiGenerator{
		client:         client,
		limiter:        limiter,
		timeout:        cfg.RequestTimeout,
		thinkingBudget: int32(cfg.ThinkingBudget),
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (*Response, error) {
	if g.limiter != nil {
		allowed, err := g.limiter.WaitAndReserve(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to apply llm quota: %w", err)
		}
		if !allowed {
			return nil, ErrDailyQuotaExceeded
		}
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	startTime := time.Now()
	result, err := g.client.Models.GenerateContent(
		ctx,
		req.Model,
		genai.Text(req.Prompt),
		// thinking 토큰도 MaxOutputTokens 에 포함되므로 thinking budget 을 항상 명시한다
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstruction}}},
			MaxOutputTokens:   int32(req.MaxOutputTokens),
			ThinkingConfig:    &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(g.thinkingBudget)},
		},
	)
	if err != nil {
		logRequest(req, nil, startTime, err)
		return nil, err
	}

	resp := &Response{
		Text:         result.Text(),
		ModelName:    req.Model,
		ModelVersion: result.ModelVersion,
		Latency:      time.Since(startTime),
	}
	if len(result.Candidates) > 0 && result.Candidates[0] != nil {
		resp.FinishReason = string(result.Candidates[0].FinishReason)
	}
	if result.UsageMetadata != nil {
		resp.Usage = TokenUsage{
			InputTokens:   int64(result.UsageMetadata.PromptTokenCount),
			OutputTokens:  int64(result.UsageMetadata.CandidatesTokenCount),
			ThoughtTokens: int64(result.UsageMetadata.ThoughtsTokenCount),
			TotalTokens:   int64(result.UsageMetadata.TotalTokenCount),
		}
	}

	if resp.Text == "" {
		if resp.FinishReason == string(genai.FinishReasonMaxTokens) {
			err = fmt.Errorf("%w: %w (max %d, thoughts %d)", ErrEmptyResponse, ErrMaxTokens, req.MaxOutputTokens, resp.Usage.ThoughtTokens)
		} else {
			err = ErrEmptyResponse
		}
		logRequest(req, resp, startTime, err)
		return nil, err
	}

	logRequest(req, resp, startTime, nil)
	return resp, nil
}

func logRequest(req Request, resp *Response, startTime time.Time, err error) {
	entry := models.AILog{
		Operation:   req.Operation,
		ModelName:   req.Model,
		DurationMs:  time.Since(startTime).Milliseconds(),
		RequestedAt: startTime,
		CompletedAt: time.Now(),
	}
	if resp != nil {
		entry.ModelVersion = resp.ModelVersion
		entry.InputTokens = resp.Usage.InputTokens
		entry.OutputTokens = resp.Usage.OutputTokens
		entry.ThoughtTokens = resp.Usage.ThoughtTokens
		entry.TotalTokens = resp.Usage.TotalTokens
		entry.FinishReason = resp.FinishReason
	}
	if err != nil {
		msg := err.Error()
		entry.ErrorMessage = &msg
		if entry.FinishReason == string(genai.FinishReasonMaxTokens) {
			config.Logger.Warnf("LLM reply cut off by MAX_TOKENS before any text - op:%s model:%s max_tokens:%d thoughts:%d total:%d",
				entry.Operation, entry.ModelName, req.MaxOutputTokens, entry.ThoughtTokens, entry.TotalTokens)
			return
		}
		config.Logger.Warnf("LLM request failed - op:%s model:%s duration:%dms finish:%s error:%s",
			entry.Operation, entry.ModelName, entry.DurationMs, entry.FinishReason, *entry.ErrorMessage)
		return
	}

	config.Logger.Debugf("LLM request - op:%s model:%s version:%s duration:%dms input:%d output:%d thoughts:%d total:%d",
		entry.Operation,
		entry.ModelName,
		entry.ModelVersion,
		entry.DurationMs,
		entry.InputTokens,
		entry.OutputTokens,
		entry.ThoughtTokens,
		entry.TotalTokens,
	)
}
