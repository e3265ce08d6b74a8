package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("REDDIT_USER_AGENT", "")
	t.Setenv("LOG_LEVEL", "")

	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), *c)
	assert.Equal(t, []string{"startups", "SaaS", "entrepreneur", "smallbusiness", "sideproject"}, c.Reddit.Subreddits)
	assert.Equal(t, 5, c.Pipeline.IdeasPerSubreddit)
	assert.Equal(t, 3, c.Pipeline.BatchSize)
	assert.Equal(t, "unique_startup_ideas.txt", c.Output.File)
	assert.Zero(t, c.LLM.ThinkingBudget)
}

func TestLoad_OverridesAndValidates(t *testing.T) {
	t.Setenv("REDDIT_USER_AGENT", "test-agent/0.1")
	t.Setenv("LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), CONFIG_FILE)
	yaml := `
llm:
  summary_model: gemini-2.5-flash-lite
  request_timeout: 30s
  thinking_budget: -5
reddit:
  subreddits: [golang, rust]
  fetch_limit: -1
pipeline:
  ideas_per_subreddit: 2
  batch_size: 0
output:
  file: out/ideas.txt
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	c, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash-lite", c.LLM.SummaryModel)
	assert.Equal(t, DefaultModel, c.LLM.IdeaModel)
	assert.Equal(t, "30s", c.LLM.RequestTimeout.String())
	assert.Zero(t, c.LLM.ThinkingBudget)
	assert.Equal(t, []string{"golang", "rust"}, c.Reddit.Subreddits)
	assert.Equal(t, DefaultFetchLimit, c.Reddit.FetchLimit)
	assert.Equal(t, 2, c.Pipeline.IdeasPerSubreddit)
	assert.Equal(t, DefaultBatchSize, c.Pipeline.BatchSize)
	assert.Equal(t, "out/ideas.txt", c.Output.File)
	assert.Equal(t, "test-agent/0.1", c.Reddit.UserAgent)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), CONFIG_FILE)
	require.NoError(t, os.WriteFile(path, []byte("pipeline: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestGetBasePath(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, CONFIG_FILE), []byte("{}"), 0644))

	t.Chdir(nested)

	got, err := filepath.EvalSymlinks(GetBasePath())
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
