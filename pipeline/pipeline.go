// Package pipeline turns the newest posts of a subreddit into at most a handful of synthesized startup
// ideas: posts are summarized concurrently, non-ideas are filtered out, the surviving summaries are
// grouped into batches and each batch is sent, one at a time, to the idea generator until the
// per-subreddit quota is used up.
package pipeline

import (
	"context"

	"idea-miner/models"
	"idea-miner/summarizer"
)

// Source fetches the newest posts of a subreddit, newest first.
type Source interface {
	FetchNewPosts(ctx context.Context, subreddit string, limit int) ([]models.Post, error)
}

// PostSummarizer summarizes one post text. Failures are reported in the Result, never as panics.
type PostSummarizer interface {
	Summarize(ctx context.Context, text string) summarizer.Result
}

// IdeaSynthesizer produces one idea from the joined summaries of a batch.
type IdeaSynthesizer interface {
	Generate(ctx context.Context, batchContext string) summarizer.Result
}
