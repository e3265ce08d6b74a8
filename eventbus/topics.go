package eventbus

import "idea-miner/config"

// 전역 토픽 선언: 기본값은 config.DefaultEventsTopic 이며 events.topic 설정으로 교체할 수 있습니다.

var (
	TopicIdeaEvents = NewTopic(config.DefaultEventsTopic)
)

// TopicFromConfig 설정된 토픽 이름이 있으면 그것을, 없으면 TopicIdeaEvents 를 반환합니다.
func TopicFromConfig(cfg config.EventsConfig) Topic {
	if cfg.Topic == "" {
		return TopicIdeaEvents
	}
	return NewTopic(cfg.Topic)
}
