package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"idea-miner/config"
	"idea-miner/eventbus"
	"idea-miner/feeder"
	"idea-miner/llm"
	"idea-miner/pipeline"
	"idea-miner/quota"
	"idea-miner/sink"
	"idea-miner/summarizer"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	config.InitLogger(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// LLM 클라이언트는 요약/아이디어 생성이 함께 사용한다
	limiter := quota.NewRequestLimiterFromConfig(cfg)
	generator, err := llm.NewGeminiGenerator(ctx, os.Getenv("GEMINI_API_KEY"), cfg.LLM, limiter)
	if err != nil {
		config.Logger.Errorf("failed to initialize LLM client: %v", err)
		os.Exit(1)
	}

	fileSink := sink.NewFileSink(cfg.Output.File)
	var out sink.Sink = fileSink

	// 이벤트 발행은 선택 사항이다. 브로커가 없으면 파일에만 기록한다.
	if brokers := eventbus.GetBrokers(); cfg.Events.Enabled && brokers != "" {
		topic := eventbus.TopicFromConfig(cfg.Events)
		if err := eventbus.EnsureTopic(brokers, topic, cfg.Events.Partitions); err != nil {
			config.Logger.Errorf("failed to ensure eventbus topic: %v", err)
		}

		bus, err := eventbus.NewKafkaEventBus(brokers)
		if err != nil {
			config.Logger.Errorf("failed to create event bus: %v", err)
		} else {
			defer bus.Close()
			out = sink.NewMultiSink(out, sink.NewEventSink(bus, topic))
		}
	} else if cfg.Events.Enabled {
		config.Logger.Warn("events enabled but KAFKA_BOOTSTRAP_SERVERS is not set, skipping event publishing")
	}

	orchestrator := pipeline.NewOrchestrator(pipeline.Deps{
		Source:        feeder.NewRedditFeeder(cfg.Reddit.BaseURL, cfg.Reddit.UserAgent),
		Summarizer:    summarizer.NewSummarizer(generator, cfg.LLM),
		IdeaGenerator: summarizer.NewIdeaGenerator(generator, cfg.LLM),
		Sink:          out,
	}, pipeline.SettingsFromConfig(cfg))

	config.Logger.Infof("starting idea miner for %d subreddits...", len(cfg.Reddit.Subreddits))
	orchestrator.Run(ctx, cfg.Reddit.Subreddits)
	config.Logger.Infof("Unique startup ideas have been saved to %s (%d LLM requests today)", fileSink.Path(), limiter.Used())
}
