package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"idea-miner/config"
	"idea-miner/models"
	"idea-miner/summarizer"
)

var errService = errors.New("service unavailable")

type fakeSource struct {
	posts map[string][]models.Post
	errs  map[string]error

	mu     sync.Mutex
	limits map[string]int
}

func (s *fakeSource) FetchNewPosts(_ context.Context, subreddit string, limit int) ([]models.Post, error) {
	s.mu.Lock()
	if s.limits == nil {
		s.limits = map[string]int{}
	}
	s.limits[subreddit] = limit
	s.mu.Unlock()

	if err := s.errs[subreddit]; err != nil {
		return nil, err
	}
	posts := s.posts[subreddit]
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

type summarizeFunc func(ctx context.Context, text string) summarizer.Result

func (f summarizeFunc) Summarize(ctx context.Context, text string) summarizer.Result {
	return f(ctx, text)
}

// fakeSynthesizer answers batch calls from a list of results and records the contexts it received.
type fakeSynthesizer struct {
	results  []summarizer.Result
	fallback summarizer.Result
	contexts []string
}

func (s *fakeSynthesizer) Generate(_ context.Context, batchContext string) summarizer.Result {
	s.contexts = append(s.contexts, batchContext)
	if i := len(s.contexts) - 1; i < len(s.results) {
		return s.results[i]
	}
	return s.fallback
}

type recordingSink struct {
	ideas []models.Idea
	err   error
}

func (r *recordingSink) Append(_ context.Context, idea models.Idea) error {
	if r.err != nil {
		return r.err
	}
	r.ideas = append(r.ideas, idea)
	return nil
}

func ok(text string) summarizer.Result {
	return summarizer.Result{Text: text, Model: "test-model"}
}

func failed() summarizer.Result {
	return summarizer.Result{Err: errService}
}

func posts(subreddit string, titles ...string) []models.Post {
	out := make([]models.Post, len(titles))
	for i, title := range titles {
		out[i] = models.Post{ID: subreddit + "-" + title, Subreddit: subreddit, Title: title, Body: "body of " + title}
	}
	return out
}

// panicOnSink writes the first n ideas and panics on the next one.
type panicOnSink struct {
	n     int
	ideas []models.Idea
}

func (p *panicOnSink) Append(_ context.Context, idea models.Idea) error {
	if len(p.ideas) >= p.n {
		panic("sink closed underneath us")
	}
	p.ideas = append(p.ideas, idea)
	return nil
}

// captureLogger records formatted messages so tests can look at what was logged.
type captureLogger struct {
	mu       sync.Mutex
	messages []string
}

func (c *captureLogger) add(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, fmt.Sprintf(format, args...))
}

func (c *captureLogger) Info(args ...any)                  { c.add("%s", fmt.Sprint(args...)) }
func (c *captureLogger) Warn(args ...any)                  { c.add("%s", fmt.Sprint(args...)) }
func (c *captureLogger) Debugf(format string, args ...any) { c.add(format, args...) }
func (c *captureLogger) Infof(format string, args ...any)  { c.add(format, args...) }
func (c *captureLogger) Warnf(format string, args ...any)  { c.add(format, args...) }
func (c *captureLogger) Errorf(format string, args ...any) { c.add(format, args...) }

func useCaptureLogger(t *testing.T) *captureLogger {
	t.Helper()
	c := &captureLogger{}
	prev := config.Logger
	config.Logger = c
	t.Cleanup(func() { config.Logger = prev })
	return c
}

func (c *captureLogger) contains(substr string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
