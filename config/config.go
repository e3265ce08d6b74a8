package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging  LoggingConfig  `yaml:"logging"`
	LLM      LLMConfig      `yaml:"llm"`
	LLMQuota LLMQuotaConfig `yaml:"llm_quota"`
	Reddit   RedditConfig   `yaml:"reddit"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Output   OutputConfig   `yaml:"output"`
	Events   EventsConfig   `yaml:"events"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LLMConfig 는 요약/아이디어 생성에 사용하는 모델 설정이다.
type LLMConfig struct {
	Provider         string        `yaml:"provider"`
	SummaryModel     string        `yaml:"summary_model"`
	IdeaModel        string        `yaml:"idea_model"`
	SummaryMaxTokens int           `yaml:"summary_max_tokens"`
	IdeaMaxTokens    int           `yaml:"idea_max_tokens"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`

	// ThinkingBudget 는 2.5 계열 모델의 thinking 토큰 한도이다. thinking 토큰도 max_tokens 에 포함되므로
	// 기본값 0 으로 끄고, -1 이면 모델이 동적으로 정한다.
	ThinkingBudget int `yaml:"thinking_budget"`

	// BaseURL 은 Gemini API 엔드포인트를 바꿀 때만 설정한다 (프록시/게이트웨이).
	BaseURL string `yaml:"base_url"`
}

// LLMQuotaConfig 는 LLM 호출에 대한 속도/일일 한도를 정의한다.
type LLMQuotaConfig struct {
	// RequestsPerMinute 는 분당 최대 요청 수이다. 0 이하면 제한 없음으로 간주한다.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// RequestsPerDay 는 일일 최대 요청 수이다. 0 이하면 제한 없음으로 간주한다.
	RequestsPerDay int `yaml:"requests_per_day"`
}

type RedditConfig struct {
	BaseURL    string   `yaml:"base_url"`
	UserAgent  string   `yaml:"user_agent"`
	Subreddits []string `yaml:"subreddits"`
	FetchLimit int      `yaml:"fetch_limit"`
}

type PipelineConfig struct {
	IdeasPerSubreddit int `yaml:"ideas_per_subreddit"`
	BatchSize         int `yaml:"batch_size"`
	MaxConcurrency    int `yaml:"max_concurrency"`
}

type OutputConfig struct {
	File string `yaml:"file"`
}

type EventsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Topic      string `yaml:"topic"`
	Partitions int    `yaml:"partitions"`
}

const (
	DefaultProvider          = "google"
	DefaultModel             = "gemini-2.5-flash"
	DefaultSummaryMaxTokens  = 150
	DefaultIdeaMaxTokens     = 200
	DefaultThinkingBudget    = 0
	DefaultRedditBaseURL     = "https://www.reddit.com"
	DefaultUserAgent         = "idea-miner/1.0 (startup idea digest)"
	DefaultFetchLimit        = 100
	DefaultIdeasPerSubreddit = 5
	DefaultBatchSize         = 3
	DefaultMaxConcurrency    = 100
	DefaultOutputFile        = "unique_startup_ideas.txt"
	DefaultEventsTopic       = "idea-miner.idea.events"
	DefaultEventsPartitions  = 3
)

var DefaultSubreddits = []string{"startups", "SaaS", "entrepreneur", "smallbusiness", "sideproject"}

// Default returns the built-in configuration used when no config.yaml is present.
func Default() AppConfig {
	return AppConfig{
		Logging: LoggingConfig{Level: "info"},
		LLM: LLMConfig{
			Provider:         DefaultProvider,
			SummaryModel:     DefaultModel,
			IdeaModel:        DefaultModel,
			SummaryMaxTokens: DefaultSummaryMaxTokens,
			IdeaMaxTokens:    DefaultIdeaMaxTokens,
		},
		Reddit: RedditConfig{
			BaseURL:    DefaultRedditBaseURL,
			UserAgent:  DefaultUserAgent,
			Subreddits: append([]string(nil), DefaultSubreddits...),
			FetchLimit: DefaultFetchLimit,
		},
		Pipeline: PipelineConfig{
			IdeasPerSubreddit: DefaultIdeasPerSubreddit,
			BatchSize:         DefaultBatchSize,
			MaxConcurrency:    DefaultMaxConcurrency,
		},
		Output: OutputConfig{File: DefaultOutputFile},
		Events: EventsConfig{
			Topic:      DefaultEventsTopic,
			Partitions: DefaultEventsPartitions,
		},
	}
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	c, err := Load(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}
	config = c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// Load reads the YAML file at path on top of Default(). A missing file is not an error.
func Load(path string) (*AppConfig, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.applyEnv()
			return &c, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.applyEnv()
	c.Validate()
	return &c, nil
}

// Validate replaces non-positive or empty values with their defaults.
func (c *AppConfig) Validate() {
	d := Default()

	if c.LLM.Provider == "" {
		c.LLM.Provider = d.LLM.Provider
	}
	if c.LLM.SummaryModel == "" {
		c.LLM.SummaryModel = d.LLM.SummaryModel
	}
	if c.LLM.IdeaModel == "" {
		c.LLM.IdeaModel = d.LLM.IdeaModel
	}
	if c.LLM.SummaryMaxTokens <= 0 {
		c.LLM.SummaryMaxTokens = d.LLM.SummaryMaxTokens
	}
	if c.LLM.IdeaMaxTokens <= 0 {
		c.LLM.IdeaMaxTokens = d.LLM.IdeaMaxTokens
	}
	if c.LLM.RequestTimeout < 0 {
		c.LLM.RequestTimeout = 0
	}
	if c.LLM.ThinkingBudget < -1 {
		Logger.Warnf("llm.thinking_budget is %d, defaulting to %d", c.LLM.ThinkingBudget, d.LLM.ThinkingBudget)
		c.LLM.ThinkingBudget = d.LLM.ThinkingBudget
	}

	if c.Reddit.BaseURL == "" {
		c.Reddit.BaseURL = d.Reddit.BaseURL
	}
	if c.Reddit.UserAgent == "" {
		c.Reddit.UserAgent = d.Reddit.UserAgent
	}
	if len(c.Reddit.Subreddits) == 0 {
		c.Reddit.Subreddits = d.Reddit.Subreddits
	}
	if c.Reddit.FetchLimit <= 0 {
		Logger.Warnf("reddit.fetch_limit is %d, defaulting to %d", c.Reddit.FetchLimit, d.Reddit.FetchLimit)
		c.Reddit.FetchLimit = d.Reddit.FetchLimit
	}

	if c.Pipeline.IdeasPerSubreddit <= 0 {
		Logger.Warnf("pipeline.ideas_per_subreddit is %d, defaulting to %d", c.Pipeline.IdeasPerSubreddit, d.Pipeline.IdeasPerSubreddit)
		c.Pipeline.IdeasPerSubreddit = d.Pipeline.IdeasPerSubreddit
	}
	if c.Pipeline.BatchSize <= 0 {
		Logger.Warnf("pipeline.batch_size is %d, defaulting to %d", c.Pipeline.BatchSize, d.Pipeline.BatchSize)
		c.Pipeline.BatchSize = d.Pipeline.BatchSize
	}
	if c.Pipeline.MaxConcurrency <= 0 {
		c.Pipeline.MaxConcurrency = d.Pipeline.MaxConcurrency
	}

	if c.Output.File == "" {
		c.Output.File = d.Output.File
	}

	if c.Events.Topic == "" {
		c.Events.Topic = d.Events.Topic
	}
	if c.Events.Partitions <= 0 {
		c.Events.Partitions = d.Events.Partitions
	}
}

// applyEnv lets the environment override settings that usually live next to credentials.
func (c *AppConfig) applyEnv() {
	if ua := os.Getenv("REDDIT_USER_AGENT"); ua != "" {
		c.Reddit.UserAgent = ua
	}
	if lv := os.Getenv("LOG_LEVEL"); lv != "" {
		c.Logging.Level = lv
	}
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
