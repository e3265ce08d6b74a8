package sink_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idea-miner/eventbus"
	"idea-miner/events"
	"idea-miner/models"
	"idea-miner/sink"
)

func TestFileSinkAppendsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "ideas.txt")
	s := sink.NewFileSink(path)

	require.NoError(t, s.Append(context.Background(), models.Idea{Subreddit: "startups", Text: "Idea3"}))
	require.NoError(t, s.Append(context.Background(), models.Idea{Subreddit: "SaaS", Text: "Another idea"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Idea inspired by r/startups:\nIdea3\n\nIdea inspired by r/SaaS:\nAnother idea\n\n", string(data))
}

func TestFileSinkKeepsExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.txt")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0644))

	s := sink.NewFileSink(path)
	require.NoError(t, s.Append(context.Background(), models.Idea{Subreddit: "sideproject", Text: "x"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous run\nIdea inspired by r/sideproject:\nx\n\n", string(data))
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

func TestMultiSinkIgnoresSecondaryFailure(t *testing.T) {
	primary := &recordingSink{}
	broken := &recordingSink{err: errors.New("broker down")}
	other := &recordingSink{}

	m := sink.NewMultiSink(primary, broken, other)
	require.NoError(t, m.Append(context.Background(), models.Idea{Subreddit: "startups", Text: "a"}))

	assert.Len(t, primary.ideas, 1)
	assert.Len(t, other.ideas, 1)
}

func TestMultiSinkStopsOnPrimaryFailure(t *testing.T) {
	primary := &recordingSink{err: errors.New("disk full")}
	secondary := &recordingSink{}

	m := sink.NewMultiSink(primary, secondary)
	err := m.Append(context.Background(), models.Idea{Subreddit: "startups", Text: "a"})

	require.Error(t, err)
	assert.Empty(t, secondary.ideas)
}

type fakeBus struct {
	topic     eventbus.Topic
	published []eventbus.Event
	err       error
}

func (b *fakeBus) Publish(_ context.Context, topic eventbus.Topic, event eventbus.Event) error {
	if b.err != nil {
		return b.err
	}
	b.topic = topic
	b.published = append(b.published, event)
	return nil
}

func (b *fakeBus) Close() {}

func TestEventSinkPublishesIdeaGenerated(t *testing.T) {
	bus := &fakeBus{}
	s := sink.NewEventSink(bus, eventbus.TopicIdeaEvents)

	idea := models.Idea{Subreddit: "startups", Text: "Idea3", Batch: 1, ModelName: "gemini-2.5-flash"}
	require.NoError(t, s.Append(context.Background(), idea))
	require.Len(t, bus.published, 1)
	assert.Equal(t, eventbus.TopicIdeaEvents.Base(), bus.topic.Base())

	got, err := eventbus.DecodeJSON[events.IdeaGeneratedEvent](bus.published[0])
	require.NoError(t, err)
	assert.Equal(t, events.IdeaGenerated, got.Type)
	assert.Equal(t, bus.published[0].ID, got.ID)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "startups", got.Subreddit)
	assert.Equal(t, "Idea3", got.Idea)
	assert.Equal(t, 1, got.Batch)
}

func TestEventSinkWrapsPublishError(t *testing.T) {
	cause := errors.New("delivery failed")
	s := sink.NewEventSink(&fakeBus{err: cause}, eventbus.TopicIdeaEvents)

	err := s.Append(context.Background(), models.Idea{Subreddit: "startups", Text: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
}
