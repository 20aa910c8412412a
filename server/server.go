// Package server exposes aggregation, tweet and promise endpoints over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/copewatch/pkg/domain"
	"github.com/umputun/copewatch/pkg/feed"
	"github.com/umputun/copewatch/pkg/metrics"
	"github.com/umputun/copewatch/pkg/tweet"
)

//go:generate moq -out mocks/aggregator.go -pkg mocks -skip-ensure -fmt goimports . Aggregator
//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator
//go:generate moq -out mocks/publisher.go -pkg mocks -skip-ensure -fmt goimports . Publisher
//go:generate moq -out mocks/post_store.go -pkg mocks -skip-ensure -fmt goimports . PostStore
//go:generate moq -out mocks/promise_store.go -pkg mocks -skip-ensure -fmt goimports . PromiseStore

const maxBodySize = 64 * 1024

// Aggregator merges content from source adapters
type Aggregator interface {
	Aggregate(ctx context.Context, req domain.AggregateRequest) []domain.ContentItem
	AggregateSource(ctx context.Context, name string, req domain.AggregateRequest) ([]domain.ContentItem, error)
	Sources() []string
}

// Generator makes tweet text with a strategy
type Generator interface {
	Generate(ctx context.Context, s tweet.Strategy) string
}

// Publisher posts text to the social platform
type Publisher interface {
	Publish(ctx context.Context, text string, trigger domain.PostTrigger) (*tweet.Tweet, error)
}

// PostStore reads the post log
type PostStore interface {
	ListPosts(ctx context.Context, limit int) ([]domain.Post, error)
}

// PromiseStore reads tracked promises
type PromiseStore interface {
	ListPromises(ctx context.Context, status domain.PromiseStatus) ([]domain.Promise, error)
	Stats(ctx context.Context) (domain.PromiseStats, error)
}

// Config defines server settings
type Config struct {
	Listen     string
	Timeout    time.Duration
	Version    string
	Debug      bool
	SiteURL    string // public base url, used in RSS links
	CronSecret string // bearer token of /cron/tweet, no check if empty
}

// Params holds server dependencies, Posts, Promises and Metrics are optional
type Params struct {
	Config
	Aggregator Aggregator
	Generator  Generator
	Publisher  Publisher
	Strategy   tweet.Strategy // used for previews and generated posts
	Posts      PostStore
	Promises   PromiseStore
	Metrics    *metrics.Metrics
}

// Server represents HTTP server instance
type Server struct {
	Params
	rss *feed.Generator
	now func() time.Time

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		Params: p,
		rss:    feed.NewGenerator(p.SiteURL),
		now:    time.Now,
		router: routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	log.Printf("[INFO] starting server on %s", s.Listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              s.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.Timeout,
		WriteTimeout:      s.Timeout,
	}
	srv := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("copewatch", "umputun", s.Version))
	s.router.Use(rest.Ping)

	if s.Debug {
		s.router.Use(logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(log.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(maxBodySize))
	s.router.Use(s.Metrics.Middleware)
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /cope-aggregate", s.aggregateHandler)
	for _, name := range []string{"reddit", "youtube", "guardian", "rss"} {
		s.router.HandleFunc("GET /"+name+"-cope", s.sourceHandler(name))
	}

	s.router.HandleFunc("GET /tweet/preview", s.previewHandler)
	s.router.HandleFunc("POST /tweet", s.postTweetHandler)
	s.router.HandleFunc("GET /cron/tweet", s.cronTweetHandler)
	s.router.HandleFunc("GET /tweet/history", s.historyHandler)

	s.router.HandleFunc("GET /promises", s.promisesHandler)

	s.router.HandleFunc("GET /rss/cope", s.rssHandler)
	s.router.HandleFunc("GET /rss/cope/{category}", s.rssHandler)

	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
	})
	s.router.Handle("GET /metrics", s.Metrics.Handler())
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.Version,
		"time":    s.now().UTC(),
		"sources": s.Aggregator.Sources(),
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
