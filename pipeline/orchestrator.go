package pipeline

import (
	"context"
	"fmt"

	"idea-miner/config"
	"idea-miner/sink"
)

// Deps wires the collaborators of a run.
type Deps struct {
	Source        Source
	Summarizer    PostSummarizer
	IdeaGenerator IdeaSynthesizer
	Sink          sink.Sink
}

// Settings are the per-subreddit limits of a run.
type Settings struct {
	FetchLimit        int
	IdeasPerSubreddit int
	BatchSize         int
	MaxConcurrency    int
}

// SettingsFromConfig collects the run settings from the application config.
func SettingsFromConfig(cfg config.AppConfig) Settings {
	return Settings{
		FetchLimit:        cfg.Reddit.FetchLimit,
		IdeasPerSubreddit: cfg.Pipeline.IdeasPerSubreddit,
		BatchSize:         cfg.Pipeline.BatchSize,
		MaxConcurrency:    cfg.Pipeline.MaxConcurrency,
	}
}

// DefaultSettings matches the built-in configuration.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.Default())
}

type Orchestrator struct {
	processor *CollectionProcessor
	driver    *BatchDriver
	settings  Settings
}

func NewOrchestrator(deps Deps, settings Settings) *Orchestrator {
	return &Orchestrator{
		processor: NewCollectionProcessor(deps.Source, deps.Summarizer, settings.MaxConcurrency),
		driver:    NewBatchDriver(deps.IdeaGenerator, deps.Sink),
		settings:  settings,
	}
}

// Run processes subreddits in order. A failing subreddit is logged and skipped; the run
// only stops early when ctx is cancelled. One report per processed subreddit is returned.
func (o *Orchestrator) Run(ctx context.Context, subreddits []string) []CollectionReport {
	reports := make([]CollectionReport, 0, len(subreddits))

	for _, name := range subreddits {
		if ctx.Err() != nil {
			config.Logger.Warnf("run cancelled before r/%s: %v", name, ctx.Err())
			break
		}

		config.Logger.Infof("Searching subreddit: %s", name)
		report, err := o.runCollection(ctx, name)
		if err != nil {
			report.Err = err
			config.Logger.Errorf("Error processing subreddit %s: %v", name, err)
		}
		reports = append(reports, report)
	}

	logSummary(reports)
	return reports
}

// runCollection gets a fresh idea quota on every call; nothing carries over between subreddits.
// A recovered panic keeps the counts reached so far.
func (o *Orchestrator) runCollection(ctx context.Context, name string) (report CollectionReport, err error) {
	report.Subreddit = name
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing r/%s: %v", name, r)
		}
	}()

	summaries, err := o.processor.Process(ctx, name, o.settings.FetchLimit)
	if err != nil {
		return report, err
	}
	config.Logger.Infof("Found %d summaries in r/%s", len(summaries), name)

	err = o.driver.synthesizeInto(ctx, &report, summaries, o.settings.IdeasPerSubreddit, o.settings.BatchSize)
	return report, err
}

func logSummary(reports []CollectionReport) {
	var accepted, failed int
	for _, r := range reports {
		fields := config.Fields{
			"subreddit":  r.Subreddit,
			"summaries":  r.Summaries,
			"batches":    r.Batches,
			"attempted":  r.Attempted,
			"accepted":   r.Accepted,
			"quota_left": r.QuotaLeft,
		}
		if r.Err != nil {
			failed++
			fields["error"] = r.Err.Error()
			config.WarnWithFields("subreddit failed", fields)
			continue
		}
		accepted += r.Accepted
		config.InfoWithFields("subreddit done", fields)
	}

	config.InfoWithFields("run finished", config.Fields{
		"subreddits": len(reports),
		"failed":     failed,
		"accepted":   accepted,
	})
}
