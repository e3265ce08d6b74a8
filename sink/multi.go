package sink

import (
	"context"

	"idea-miner/config"
	"idea-miner/models"
)

// MultiSink writes to a primary sink and then to best-effort secondaries.
// Only a primary failure is reported to the caller.
type MultiSink struct {
	primary     Sink
	secondaries []Sink
}

func NewMultiSink(primary Sink, secondaries ...Sink) *MultiSink {
	return &MultiSink{primary: primary, secondaries: secondaries}
}

func (m *MultiSink) Append(ctx context.Context, idea models.Idea) error {
	if err := m.primary.Append(ctx, idea); err != nil {
		return err
	}
	for _, s := range m.secondaries {
		if err := s.Append(ctx, idea); err != nil {
			config.Logger.Warnf("secondary sink failed for r/%s idea: %v", idea.Subreddit, err)
		}
	}
	return nil
}
