package sink

import (
	"context"
	"fmt"

	"idea-miner/eventbus"
	"idea-miner/events"
	"idea-miner/models"
)

// EventSink publishes an IdeaGenerated event for every accepted idea.
type EventSink struct {
	bus   eventbus.EventBus
	topic eventbus.Topic
}

func NewEventSink(bus eventbus.EventBus, topic eventbus.Topic) *EventSink {
	return &EventSink{bus: bus, topic: topic}
}

func (s *EventSink) Append(ctx context.Context, idea models.Idea) error {
	payload := events.NewIdeaGeneratedEvent(idea)
	evt, err := eventbus.NewJSONEvent(payload.ID, payload)
	if err != nil {
		return err
	}
	if err := s.bus.Publish(ctx, s.topic, evt); err != nil {
		return fmt.Errorf("failed to publish IdeaGenerated event: %w", err)
	}
	return nil
}
