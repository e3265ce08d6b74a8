package events

import (
	"time"

	"github.com/google/uuid"

	"idea-miner/models"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	IdeaGenerated EventType = "idea.generated"
)

const eventSource = "miner"
const eventVersion = "1.0"

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// GetType 이벤트 타입을 반환
func (e BaseEvent) GetType() EventType {
	return e.Type
}

// IdeaGeneratedEvent 아이디어가 채택되어 출력 파일에 기록되었을 때 발행되는 이벤트
type IdeaGeneratedEvent struct {
	BaseEvent
	Subreddit   string    `json:"subreddit"`
	Idea        string    `json:"idea"`
	Batch       int       `json:"batch"`
	ModelName   string    `json:"model_name"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewIdeaGeneratedEvent 채택된 아이디어로부터 이벤트를 생성한다.
func NewIdeaGeneratedEvent(idea models.Idea) IdeaGeneratedEvent {
	return IdeaGeneratedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      IdeaGenerated,
			Timestamp: time.Now(),
			Source:    eventSource,
			Version:   eventVersion,
		},
		Subreddit:   idea.Subreddit,
		Idea:        idea.Text,
		Batch:       idea.Batch,
		ModelName:   idea.ModelName,
		GeneratedAt: idea.GeneratedAt,
	}
}
