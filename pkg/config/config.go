package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	log "github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/copewatch/pkg/classifier"
	"github.com/umputun/copewatch/pkg/domain"
	"github.com/umputun/copewatch/pkg/tweet"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:copewatch.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Sources    SourcesConfig    `yaml:"sources" json:"sources" jsonschema:"description=Content sources"`
	Classifier classifier.Table `yaml:"classifier" json:"classifier" jsonschema:"description=Keyword classifier table; built-in table if rules are empty"`

	Aggregate struct {
		PageSize      int `yaml:"page_size" json:"page_size" jsonschema:"default=30,minimum=1,description=Maximum items returned by aggregation endpoints"`
		MaxConcurrent int `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=4,description=Maximum adapters fetched at once"`
	} `yaml:"aggregate" json:"aggregate" jsonschema:"description=Aggregation settings"`

	Tweet TweetConfig `yaml:"tweet" json:"tweet" jsonschema:"description=Tweet generation and posting"`

	Schedule struct {
		TweetInterval time.Duration `yaml:"tweet_interval" json:"tweet_interval" jsonschema:"default=0s,description=Interval between scheduled posts; 0 disables"`
		RunOnStart    bool          `yaml:"run_on_start" json:"run_on_start" jsonschema:"default=false,description=Post once right after start when the scheduler is on"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM joke generation"`

	Promises []PromiseSeed `yaml:"promises" json:"promises" jsonschema:"description=Promise records loaded into the tracker on start"`
}

// SourcesConfig holds shared and per-adapter source settings
type SourcesConfig struct {
	Timeout          time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Per-request timeout"`
	UserAgent        string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=copewatch/1.0,description=User agent for upstream requests"`
	CacheTTL         time.Duration `yaml:"cache_ttl" json:"cache_ttl" jsonschema:"default=5m,description=Response cache TTL for Reddit and YouTube; 0 disables"`
	MinTextLength    int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=20,description=Minimum text length in characters"`
	MaxContentLength int           `yaml:"max_content_length" json:"max_content_length" jsonschema:"default=400,description=Content is truncated to this length"`
	SubjectTerms     []string      `yaml:"subject_terms" json:"subject_terms" jsonschema:"description=Relevance filter terms"`

	Reddit   RedditConfig   `yaml:"reddit" json:"reddit"`
	YouTube  YouTubeConfig  `yaml:"youtube" json:"youtube"`
	Guardian GuardianConfig `yaml:"guardian" json:"guardian"`
	RSS      RSSConfig      `yaml:"rss" json:"rss"`
}

// RedditConfig holds Reddit adapter settings
type RedditConfig struct {
	Disabled        bool     `yaml:"disabled" json:"disabled"`
	BaseURL         string   `yaml:"base_url" json:"base_url" jsonschema:"default=https://www.reddit.com"`
	Queries         []string `yaml:"queries" json:"queries"`
	Limit           int      `yaml:"limit" json:"limit" jsonschema:"default=25"`
	CommentLimit    int      `yaml:"comment_limit" json:"comment_limit" jsonschema:"default=10"`
	MaxCommentPosts int      `yaml:"max_comment_posts" json:"max_comment_posts" jsonschema:"default=5"`
	RateLimit       float64  `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=1,description=Requests per second; 0 disables"`
	NoRelevance     bool     `yaml:"no_relevance" json:"no_relevance" jsonschema:"description=Skip subject relevance filter"`
}

// YouTubeConfig holds YouTube adapter settings
type YouTubeConfig struct {
	Disabled         bool     `yaml:"disabled" json:"disabled"`
	BaseURL          string   `yaml:"base_url" json:"base_url" jsonschema:"default=https://www.googleapis.com/youtube/v3"`
	APIKey           string   `yaml:"api_key" json:"api_key" jsonschema:"description=YouTube Data API key; YOUTUBE_API_KEY if empty"`
	Queries          []string `yaml:"queries" json:"queries"`
	MaxResults       int      `yaml:"max_results" json:"max_results" jsonschema:"default=10"`
	CommentLimit     int      `yaml:"comment_limit" json:"comment_limit" jsonschema:"default=20"`
	MaxCommentVideos int      `yaml:"max_comment_videos" json:"max_comment_videos" jsonschema:"default=8"`
	Relevance        bool     `yaml:"relevance" json:"relevance" jsonschema:"description=Apply subject relevance filter"`
}

// GuardianConfig holds Guardian adapter settings
type GuardianConfig struct {
	Disabled  bool     `yaml:"disabled" json:"disabled"`
	BaseURL   string   `yaml:"base_url" json:"base_url" jsonschema:"default=https://content.guardianapis.com"`
	APIKey    string   `yaml:"api_key" json:"api_key" jsonschema:"description=Guardian API key; GUARDIAN_API_KEY or test if empty"`
	Section   string   `yaml:"section" json:"section" jsonschema:"default=politics"`
	Queries   []string `yaml:"queries" json:"queries"`
	PageSize  int      `yaml:"page_size" json:"page_size" jsonschema:"default=20"`
	Relevance bool     `yaml:"relevance" json:"relevance" jsonschema:"description=Apply subject relevance filter"`
}

// RSSConfig holds news feed adapter settings, the adapter is off without feeds
type RSSConfig struct {
	Feeds        []domain.Feed `yaml:"feeds" json:"feeds"`
	Extract      bool          `yaml:"extract" json:"extract" jsonschema:"description=Extract full text for thin entries"`
	ExtractBelow int           `yaml:"extract_below" json:"extract_below" jsonschema:"default=200,description=Entries shorter than this are extracted"`
	MaxExtract   int           `yaml:"max_extract" json:"max_extract" jsonschema:"default=5,description=Maximum extractions per feed"`
	MaxItems     int           `yaml:"max_items" json:"max_items" jsonschema:"default=50,description=Maximum entries taken from a feed"`
	NoRelevance  bool          `yaml:"no_relevance" json:"no_relevance" jsonschema:"description=Skip subject relevance filter"`
}

// TweetConfig holds generation and posting settings
type TweetConfig struct {
	SiteURL        string        `yaml:"site_url" json:"site_url" jsonschema:"default=https://twotierkeir.com,description=Site URL used for {url}; SITE_URL if empty"`
	Strategy       string        `yaml:"strategy" json:"strategy" jsonschema:"default=time_of_day,enum=rotation,enum=time_of_day,enum=llm"`
	PromoChance    float64       `yaml:"promo_chance" json:"promo_chance" jsonschema:"default=0.2,minimum=0,maximum=1"`
	MaxPostsPerDay int           `yaml:"max_posts_per_day" json:"max_posts_per_day" jsonschema:"default=0,description=0 means unlimited"`
	MinInterval    time.Duration `yaml:"min_interval" json:"min_interval" jsonschema:"default=0s,description=Minimum time between posts"`
	CronSecret     string        `yaml:"cron_secret" json:"cron_secret" jsonschema:"description=Bearer secret for /cron/tweet; CRON_SECRET if empty"`
	Templates      tweet.Pools   `yaml:"templates" json:"templates" jsonschema:"description=Template pools; empty pools use built-in ones"`

	X struct {
		Endpoint          string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.x.com"`
		APIKey            string        `yaml:"api_key" json:"api_key" jsonschema:"description=X_API_KEY if empty"`
		APISecret         string        `yaml:"api_secret" json:"api_secret" jsonschema:"description=X_API_SECRET if empty"`
		AccessToken       string        `yaml:"access_token" json:"access_token" jsonschema:"description=X_ACCESS_TOKEN if empty"`
		AccessTokenSecret string        `yaml:"access_token_secret" json:"access_token_secret" jsonschema:"description=X_ACCESS_TOKEN_SECRET if empty"`
		Timeout           time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s"`
	} `yaml:"x" json:"x" jsonschema:"description=X API credentials"`
}

// Credentials returns X credentials
func (t TweetConfig) Credentials() tweet.Credentials {
	return tweet.Credentials{APIKey: t.X.APIKey, APISecret: t.X.APISecret,
		AccessToken: t.X.AccessToken, AccessTokenSecret: t.X.AccessTokenSecret}
}

// LLMConfig holds LLM configuration for joke generation
type LLMConfig struct {
	Enabled      bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable the llm strategy"`
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.9,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=150,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
	UseJSONMode  bool          `yaml:"use_json_mode" json:"use_json_mode" jsonschema:"default=false,description=Use JSON response format (not all models support this)"`
	Attempts     int           `yaml:"attempts" json:"attempts" jsonschema:"default=3,description=Attempts to get a usable joke before falling back to templates"`
	Fallback     string        `yaml:"fallback" json:"fallback" jsonschema:"default=time_of_day,enum=rotation,enum=time_of_day,description=Template strategy used when the model fails"`
}

// PromiseSeed is a promise record loaded from config
type PromiseSeed struct {
	Text       string               `yaml:"text" json:"text"`
	Status     domain.PromiseStatus `yaml:"status" json:"status" jsonschema:"enum=broken,enum=u-turn,enum=pending,enum=kept"`
	PromisedAt time.Time            `yaml:"date_promised" json:"date_promised,omitempty"`
	SourceURL  string               `yaml:"source_url" json:"source_url,omitempty"`
	Comment    string               `yaml:"comment" json:"comment,omitempty"`
}

// Load reads config from a yaml file, expands ${VAR} references, applies env fallbacks and defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path is controlled by user
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse makes config from yaml data
func Parse(data []byte) (*Config, error) {
	cfg := prefilled()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema, supplementary so only logged
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		log.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// applyEnv fills secrets left empty in the file from well-known environment variables
func applyEnv(cfg *Config) {
	envOr := func(v *string, name string) {
		if *v == "" {
			*v = os.Getenv(name)
		}
	}
	envOr(&cfg.Tweet.X.APIKey, "X_API_KEY")
	envOr(&cfg.Tweet.X.APISecret, "X_API_SECRET")
	envOr(&cfg.Tweet.X.AccessToken, "X_ACCESS_TOKEN")
	envOr(&cfg.Tweet.X.AccessTokenSecret, "X_ACCESS_TOKEN_SECRET")
	envOr(&cfg.Tweet.CronSecret, "CRON_SECRET")
	envOr(&cfg.Tweet.SiteURL, "SITE_URL")
	envOr(&cfg.Sources.Guardian.APIKey, "GUARDIAN_API_KEY")
	envOr(&cfg.Sources.YouTube.APIKey, "YOUTUBE_API_KEY")
}

// prefilled returns config with defaults of fields where an explicit zero is meaningful,
// yaml keeps them unless the key is set
func prefilled() Config {
	var cfg Config
	cfg.Sources.CacheTTL = 5 * time.Minute
	cfg.Sources.Reddit.RateLimit = 1
	cfg.Tweet.PromoChance = 0.2
	cfg.LLM.Temperature = 0.9
	return cfg
}

func applyDefaults(cfg *Config) {
	setStr := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	setInt := func(v *int, def int) {
		if *v == 0 {
			*v = def
		}
	}
	setDur := func(v *time.Duration, def time.Duration) {
		if *v == 0 {
			*v = def
		}
	}
	setList := func(v *[]string, def ...string) {
		if len(*v) == 0 {
			*v = def
		}
	}

	// server and database
	setStr(&cfg.Server.Listen, ":8080")
	setDur(&cfg.Server.Timeout, 30*time.Second)
	setStr(&cfg.Database.DSN, "file:copewatch.db?cache=shared&mode=rwc")
	setInt(&cfg.Database.MaxOpenConns, 10)
	setInt(&cfg.Database.MaxIdleConns, 5)
	setInt(&cfg.Database.ConnMaxLifetime, 3600)

	// sources
	s := &cfg.Sources
	setDur(&s.Timeout, 10*time.Second)
	setStr(&s.UserAgent, "copewatch/1.0")
	setInt(&s.MinTextLength, 20)
	setInt(&s.MaxContentLength, 400)
	setList(&s.SubjectTerms, "keir", "starmer", "labour", "government")

	setStr(&s.Reddit.BaseURL, "https://www.reddit.com")
	setList(&s.Reddit.Queries, "keir starmer", "starmer labour", "labour government", "starmer u-turn")
	setInt(&s.Reddit.Limit, 25)
	setInt(&s.Reddit.CommentLimit, 10)
	setInt(&s.Reddit.MaxCommentPosts, 5)

	setStr(&s.YouTube.BaseURL, "https://www.googleapis.com/youtube/v3")
	setList(&s.YouTube.Queries, "keir starmer", "starmer speech", "labour government")
	setInt(&s.YouTube.MaxResults, 10)
	setInt(&s.YouTube.CommentLimit, 20)
	setInt(&s.YouTube.MaxCommentVideos, 8)

	setStr(&s.Guardian.BaseURL, "https://content.guardianapis.com")
	setStr(&s.Guardian.APIKey, "test")
	setStr(&s.Guardian.Section, "politics")
	setList(&s.Guardian.Queries, "keir starmer", "labour government", "starmer")
	setInt(&s.Guardian.PageSize, 20)

	setInt(&s.RSS.ExtractBelow, 200)
	setInt(&s.RSS.MaxExtract, 5)
	setInt(&s.RSS.MaxItems, 50)

	// classifier, a table without rules takes the built-in one as a whole
	def := classifier.DefaultTable()
	if len(cfg.Classifier.Rules) == 0 {
		custom := cfg.Classifier
		cfg.Classifier = def
		if len(custom.Controversial) > 0 {
			cfg.Classifier.Controversial = custom.Controversial
		}
		for p, ext := range custom.Platform {
			if cfg.Classifier.Platform == nil {
				cfg.Classifier.Platform = map[domain.Platform]map[domain.Category][]string{}
			}
			cfg.Classifier.Platform[p] = ext
		}
	}
	setInt(&cfg.Classifier.Baseline, def.Baseline)
	setInt(&cfg.Classifier.MatchCap, def.MatchCap)
	setInt(&cfg.Classifier.ControversialBonus, def.ControversialBonus)
	setInt(&cfg.Classifier.EmphasisCap, def.EmphasisCap)

	setInt(&cfg.Aggregate.PageSize, 30)
	setInt(&cfg.Aggregate.MaxConcurrent, 4)

	// tweet
	setStr(&cfg.Tweet.SiteURL, "https://twotierkeir.com")
	setStr(&cfg.Tweet.Strategy, tweet.StrategyTimeOfDay)
	cfg.Tweet.Templates = cfg.Tweet.Templates.Merge(tweet.DefaultPools())
	setStr(&cfg.Tweet.X.Endpoint, "https://api.x.com")
	setDur(&cfg.Tweet.X.Timeout, 15*time.Second)

	// llm
	setInt(&cfg.LLM.MaxTokens, 150)
	setDur(&cfg.LLM.Timeout, 30*time.Second)
	setInt(&cfg.LLM.Attempts, 3)
	setStr(&cfg.LLM.Fallback, tweet.StrategyTimeOfDay)
}

// validate checks configuration for correctness, returns the first violation
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Sources.Timeout < 100*time.Millisecond {
		return fmt.Errorf("sources.timeout must be at least 100ms")
	}
	if cfg.Sources.MinTextLength < 0 || cfg.Sources.MaxContentLength < 0 {
		return fmt.Errorf("sources text lengths must be non-negative")
	}
	if cfg.Sources.CacheTTL < 0 {
		return fmt.Errorf("sources.cache_ttl must be non-negative")
	}
	if cfg.Sources.Reddit.RateLimit < 0 {
		return fmt.Errorf("sources.reddit.rate_limit must be non-negative")
	}
	for i, f := range cfg.Sources.RSS.Feeds {
		if f.URL == "" {
			return fmt.Errorf("sources.rss.feeds[%d].url is required", i)
		}
	}

	for _, r := range cfg.Classifier.Rules {
		if !r.Category.Valid() {
			return fmt.Errorf("classifier: unknown category %q", r.Category)
		}
	}
	for p, ext := range cfg.Classifier.Platform {
		for c := range ext {
			if !c.Valid() {
				return fmt.Errorf("classifier.platform.%s: unknown category %q", p, c)
			}
		}
	}

	if cfg.Aggregate.PageSize < 1 {
		return fmt.Errorf("aggregate.page_size must be at least 1")
	}

	strategies := []string{tweet.StrategyRotation, tweet.StrategyTimeOfDay, "llm"}
	if !slices.Contains(strategies, cfg.Tweet.Strategy) {
		return fmt.Errorf("tweet.strategy must be one of %v, got %q", strategies, cfg.Tweet.Strategy)
	}
	if cfg.Tweet.Strategy == "llm" && !cfg.LLM.Enabled {
		return fmt.Errorf("tweet.strategy llm requires llm.enabled")
	}
	if cfg.Tweet.PromoChance < 0 || cfg.Tweet.PromoChance > 1 {
		return fmt.Errorf("tweet.promo_chance must be between 0 and 1")
	}
	if cfg.Tweet.MaxPostsPerDay < 0 || cfg.Tweet.MinInterval < 0 {
		return fmt.Errorf("tweet limits must be non-negative")
	}
	if cfg.Schedule.TweetInterval < 0 {
		return fmt.Errorf("schedule.tweet_interval must be non-negative")
	}
	if cfg.Schedule.TweetInterval > 0 && cfg.Schedule.TweetInterval < time.Minute {
		return fmt.Errorf("schedule.tweet_interval must be at least 1 minute")
	}

	if cfg.LLM.Enabled {
		if cfg.LLM.Endpoint == "" {
			return fmt.Errorf("llm.endpoint is required")
		}
		if cfg.LLM.Model == "" {
			return fmt.Errorf("llm.model is required")
		}
		if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
			return fmt.Errorf("llm.temperature must be between 0 and 2")
		}
		if cfg.LLM.Fallback != tweet.StrategyRotation && cfg.LLM.Fallback != tweet.StrategyTimeOfDay {
			return fmt.Errorf("llm.fallback must be rotation or time_of_day")
		}
	}

	for i, p := range cfg.Promises {
		if p.Text == "" {
			return fmt.Errorf("promises[%d].text is required", i)
		}
		if !p.Status.Valid() {
			return fmt.Errorf("promises[%d]: unknown status %q", i, p.Status)
		}
	}
	return nil
}
