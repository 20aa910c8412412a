package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/copewatch/pkg/aggregator"
	"github.com/umputun/copewatch/pkg/classifier"
	"github.com/umputun/copewatch/pkg/config"
	"github.com/umputun/copewatch/pkg/content"
	"github.com/umputun/copewatch/pkg/domain"
	"github.com/umputun/copewatch/pkg/feed"
	"github.com/umputun/copewatch/pkg/llm"
	"github.com/umputun/copewatch/pkg/metrics"
	"github.com/umputun/copewatch/pkg/repository"
	"github.com/umputun/copewatch/pkg/scheduler"
	"github.com/umputun/copewatch/pkg/source"
	"github.com/umputun/copewatch/pkg/tweet"
	"github.com/umputun/copewatch/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" default:"copewatch.yml" description:"configuration file"`
	EnvFile string `long:"env-file" env:"ENV_FILE" default:".env" description:"dotenv file with secrets, skipped if missing"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	color.NoColor = color.NoColor || opts.NoColor
	setupLog(opts.Debug)
	log.Printf("[INFO] starting copewatch version %s", revision)

	if err := loadEnvFile(opts.EnvFile); err != nil {
		log.Printf("[WARN] %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	log.Print("[INFO] shutdown complete")
}

// run wires all components and serves until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	setupLog(opts.Debug, secrets(cfg)...)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to init database: %w", err)
	}
	defer func() {
		if cerr := repos.Close(); cerr != nil {
			log.Printf("[WARN] failed to close database: %v", cerr)
		}
	}()

	if err := seedPromises(ctx, repos.Promise, cfg.Promises); err != nil {
		return fmt.Errorf("failed to load promises: %w", err)
	}
	pools := cfg.Tweet.Templates
	texts, err := repos.Promise.PromiseTexts(ctx, domain.PromiseBroken, domain.PromiseUTurn)
	if err != nil {
		log.Printf("[WARN] can't read promises for templates: %v", err)
	}
	if len(texts) > 0 {
		pools.Promises = texts
	}

	m := metrics.New()
	adapters := makeAdapters(cfg, m)
	agg := aggregator.New(adapters, aggregator.Options{
		PageSize:      cfg.Aggregate.PageSize,
		MaxConcurrent: cfg.Aggregate.MaxConcurrent,
		Metrics:       m,
	})
	log.Printf("[INFO] sources enabled: %v", agg.Sources())

	strategy, err := makeStrategy(cfg, pools)
	if err != nil {
		return fmt.Errorf("failed to make tweet strategy: %w", err)
	}
	gen := tweet.NewGenerator(tweet.GeneratorParams{SiteURL: cfg.Tweet.SiteURL, Pools: pools})

	creds := cfg.Tweet.Credentials()
	if !creds.Complete() {
		log.Printf("[WARN] X credentials are incomplete, posting will fail")
	}
	pub := tweet.NewPublisher(tweet.PublisherParams{
		Poster:  tweet.NewXClient(tweet.XClientParams{Endpoint: cfg.Tweet.X.Endpoint, Credentials: creds, Timeout: cfg.Tweet.X.Timeout}),
		Store:   repos.Post,
		Limits:  tweet.Limits{MaxPerDay: cfg.Tweet.MaxPostsPerDay, MinInterval: cfg.Tweet.MinInterval},
		Metrics: m,
	})

	sched := scheduler.NewScheduler(gen, pub, scheduler.Config{Interval: cfg.Schedule.TweetInterval, Strategy: strategy,
		RunOnStart: cfg.Schedule.RunOnStart})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(server.Params{
		Config: server.Config{
			Listen:     cfg.Server.Listen,
			Timeout:    cfg.Server.Timeout,
			Version:    revision,
			Debug:      opts.Debug,
			SiteURL:    cfg.Tweet.SiteURL,
			CronSecret: cfg.Tweet.CronSecret,
		},
		Aggregator: agg,
		Generator:  gen,
		Publisher:  pub,
		Strategy:   strategy,
		Posts:      repos.Post,
		Promises:   repos.Promise,
		Metrics:    m,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeAdapters creates enabled source adapters, the order defines dedup precedence
func makeAdapters(cfg *config.Config, m *metrics.Metrics) []source.Adapter {
	src := cfg.Sources
	clf := classifier.New(cfg.Classifier)
	normalizer := func(relevance bool) *source.Normalizer {
		return source.NewNormalizer(source.NormalizerParams{
			Classifier:       clf,
			SubjectTerms:     src.SubjectTerms,
			Relevance:        relevance,
			MinTextLength:    src.MinTextLength,
			MaxContentLength: src.MaxContentLength,
		})
	}
	client := func(name string, cacheTTL time.Duration, rateLimit float64) *source.Client {
		return source.NewClient(source.ClientParams{Name: name, Timeout: src.Timeout, UserAgent: src.UserAgent,
			CacheTTL: cacheTTL, RateLimit: rateLimit, Metrics: m})
	}

	var res []source.Adapter
	if !src.Reddit.Disabled {
		res = append(res, source.NewReddit(source.RedditParams{
			BaseURL:         src.Reddit.BaseURL,
			Queries:         src.Reddit.Queries,
			Limit:           src.Reddit.Limit,
			CommentLimit:    src.Reddit.CommentLimit,
			MaxCommentPosts: src.Reddit.MaxCommentPosts,
			Client:          client("reddit", src.CacheTTL, src.Reddit.RateLimit),
			Normalizer:      normalizer(!src.Reddit.NoRelevance),
		}))
	}
	if !src.YouTube.Disabled {
		res = append(res, source.NewYouTube(source.YouTubeParams{
			BaseURL:          src.YouTube.BaseURL,
			APIKey:           src.YouTube.APIKey,
			Queries:          src.YouTube.Queries,
			MaxResults:       src.YouTube.MaxResults,
			CommentLimit:     src.YouTube.CommentLimit,
			MaxCommentVideos: src.YouTube.MaxCommentVideos,
			Client:           client("youtube", src.CacheTTL, 0),
			Normalizer:       normalizer(src.YouTube.Relevance),
		}))
	}
	if !src.Guardian.Disabled {
		res = append(res, source.NewGuardian(source.GuardianParams{
			BaseURL:    src.Guardian.BaseURL,
			APIKey:     src.Guardian.APIKey,
			Section:    src.Guardian.Section,
			Queries:    src.Guardian.Queries,
			PageSize:   src.Guardian.PageSize,
			Client:     client("guardian", 0, 0),
			Normalizer: normalizer(src.Guardian.Relevance),
		}))
	}
	if len(src.RSS.Feeds) > 0 {
		p := source.RSSParams{
			Feeds:        src.RSS.Feeds,
			Parser:       feed.NewParser(feed.ParserParams{Timeout: src.Timeout, UserAgent: src.UserAgent, MaxItems: src.RSS.MaxItems}),
			ExtractBelow: src.RSS.ExtractBelow,
			MaxExtract:   src.RSS.MaxExtract,
			Normalizer:   normalizer(!src.RSS.NoRelevance),
			Metrics:      m,
		}
		if src.RSS.Extract {
			p.Extractor = content.NewExtractor(src.Timeout, "")
		}
		res = append(res, source.NewRSS(p))
	}
	return res
}

// makeStrategy returns the configured tweet strategy, llm gets a template fallback
func makeStrategy(cfg *config.Config, pools tweet.Pools) (tweet.Strategy, error) {
	if cfg.Tweet.Strategy != llm.StrategyName {
		return tweet.NewStrategy(cfg.Tweet.Strategy, pools, cfg.Tweet.PromoChance)
	}
	fallback, err := tweet.NewStrategy(cfg.LLM.Fallback, pools, cfg.Tweet.PromoChance)
	if err != nil {
		return nil, fmt.Errorf("llm fallback: %w", err)
	}
	return llm.NewStrategy(llm.Params{Config: cfg.LLM, Pools: pools, Fallback: fallback, SiteURL: cfg.Tweet.SiteURL}), nil
}

// PromiseUpserter stores promises
type PromiseUpserter interface {
	UpsertPromise(ctx context.Context, p domain.Promise) (int64, error)
}

// seedPromises loads promises from config, records with the same text are updated
func seedPromises(ctx context.Context, store PromiseUpserter, seeds []config.PromiseSeed) error {
	for _, s := range seeds {
		p := domain.Promise{Text: s.Text, Status: s.Status, SourceURL: s.SourceURL, Comment: s.Comment}
		if !s.PromisedAt.IsZero() {
			promised := s.PromisedAt
			p.PromisedAt = &promised
		}
		if _, err := store.UpsertPromise(ctx, p); err != nil {
			return fmt.Errorf("promise %q: %w", s.Text, err)
		}
	}
	if len(seeds) > 0 {
		log.Printf("[INFO] loaded %d promises", len(seeds))
	}
	return nil
}

// loadEnvFile sets variables from a dotenv file, existing variables win
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// secrets returns values masked in logs
func secrets(cfg *config.Config) []string {
	var res []string
	for _, s := range []string{cfg.Tweet.X.APIKey, cfg.Tweet.X.APISecret, cfg.Tweet.X.AccessToken,
		cfg.Tweet.X.AccessTokenSecret, cfg.Tweet.CronSecret, cfg.Sources.YouTube.APIKey, cfg.LLM.APIKey,
		cfg.Sources.Guardian.APIKey} {
		if s != "" && s != "test" {
			res = append(res, s)
		}
	}
	return res
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
