package eventbus

import (
	"context"
	"encoding/json"
)

// Topic은 토픽의 기본 이름을 관리합니다.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// Event는 Kafka 메시지의 페이로드로 사용되는 구조체입니다.
type Event struct {
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// EventBus 인터페이스는 이벤트 발행의 추상화를 정의합니다.
// 이 서비스는 발행만 하며 구독자는 외부 소비자입니다.
type EventBus interface {
	Publish(ctx context.Context, topic Topic, event Event) error
	Close()
}
