package sink

import (
	"context"

	"idea-miner/models"
)

// Sink receives accepted ideas.
type Sink interface {
	Append(ctx context.Context, idea models.Idea) error
}
