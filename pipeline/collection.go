package pipeline

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"idea-miner/config"
	"idea-miner/models"
)

// CollectionProcessor fetches one subreddit and summarizes its posts concurrently.
type CollectionProcessor struct {
	source      Source
	summarizer  PostSummarizer
	concurrency int
}

// NewCollectionProcessor bounds the number of in-flight summarization calls by concurrency;
// a non-positive value falls back to config.DefaultMaxConcurrency.
func NewCollectionProcessor(source Source, summarizer PostSummarizer, concurrency int) *CollectionProcessor {
	if concurrency <= 0 {
		concurrency = config.DefaultMaxConcurrency
	}
	return &CollectionProcessor{
		source:      source,
		summarizer:  summarizer,
		concurrency: concurrency,
	}
}

// Process returns the usable summaries of up to limit newest posts, in fetch order.
// Only a fetch failure is returned as an error; per-post failures drop that post.
func (p *CollectionProcessor) Process(ctx context.Context, subreddit string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = config.DefaultFetchLimit
	}

	posts, err := p.source.FetchNewPosts(ctx, subreddit, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching r/%s: %w", subreddit, err)
	}
	config.Logger.Debugf("fetched %d posts from r/%s", len(posts), subreddit)

	// every goroutine owns exactly one slot
	results := make([]string, len(posts))

	// errgroup only bounds the goroutines here; processPost never returns an error
	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, post := range posts {
		g.Go(func() error {
			results[i] = p.processPost(ctx, post)
			return nil
		})
	}
	g.Wait()

	summaries := make([]string, 0, len(results))
	for _, s := range results {
		if s != "" {
			summaries = append(summaries, s)
		}
	}
	return summaries, nil
}

// processPost returns the usable summary of post or "" when it has none.
func (p *CollectionProcessor) processPost(ctx context.Context, post models.Post) (summary string) {
	defer func() {
		if r := recover(); r != nil {
			config.Logger.Errorf("Error processing post %s: %v", post.ID, r)
			summary = ""
		}
	}()

	result := p.summarizer.Summarize(ctx, post.FullText())
	if !result.OK() {
		config.Logger.Debugf("post %s dropped: %s", post.ID, result.Value())
		return ""
	}

	text := strings.TrimSpace(result.Text)
	if text == "" || !IsUsable(text) {
		config.Logger.Debugf("post %s has no usable idea", post.ID)
		return ""
	}
	return text
}
