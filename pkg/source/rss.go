package source

import (
	"context"
	"time"

	log "github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/copewatch/pkg/domain"
	"github.com/umputun/copewatch/pkg/metrics"
)

//go:generate moq -out mocks/feed_parser.go -pkg mocks -skip-ensure -fmt goimports . FeedParser
//go:generate moq -out mocks/text_extractor.go -pkg mocks -skip-ensure -fmt goimports . TextExtractor

// FeedParser fetches and parses a news feed
type FeedParser interface {
	Parse(ctx context.Context, url string) (*domain.ParsedFeed, error)
}

// TextExtractor pulls article text from a page
type TextExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// RSSParams defines the RSS adapter settings
type RSSParams struct {
	Feeds        []domain.Feed
	Parser       FeedParser
	Extractor    TextExtractor // optional, enriches entries with thin text
	ExtractBelow int           // entries with fewer runes get extracted text
	MaxExtract   int           // extraction calls per feed
	Concurrency  int
	Normalizer   *Normalizer
	Metrics      *metrics.Metrics
	Now          func() time.Time
}

// RSS reads configured news feeds
type RSS struct {
	RSSParams
}

// NewRSS makes an RSS adapter
func NewRSS(p RSSParams) *RSS {
	if p.ExtractBelow <= 0 {
		p.ExtractBelow = 200
	}
	if p.Concurrency <= 0 {
		p.Concurrency = 4
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &RSS{RSSParams: p}
}

// Name of the adapter
func (r *RSS) Name() string { return "rss" }

// Fetch parses all feeds, failed feeds yield no items
func (r *RSS) Fetch(ctx context.Context, _ domain.FetchRequest) ([]domain.ContentItem, error) {
	batches := make([][]domain.ContentItem, len(r.Feeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Concurrency)
	for i, f := range r.Feeds {
		g.Go(func() error {
			batches[i] = r.fetchFeed(gctx, f)
			return nil
		})
	}
	_ = g.Wait()

	res := []domain.ContentItem{}
	for _, b := range batches {
		res = append(res, b...)
	}
	log.Printf("[DEBUG] rss: %d items from %d feeds", len(res), len(r.Feeds))
	return res, nil
}

func (r *RSS) fetchFeed(ctx context.Context, f domain.Feed) []domain.ContentItem {
	st := time.Now()
	parsed, err := r.Parser.Parse(ctx, f.URL)
	if err != nil {
		r.Metrics.ObserveSourceRequest(r.Name(), "error", time.Since(st))
		log.Printf("[WARN] rss feed %s failed: %v", f.Name, err)
		return nil
	}
	r.Metrics.ObserveSourceRequest(r.Name(), "ok", time.Since(st))

	name := pick(f.Name, parsed.Title)
	extracted := 0
	res := []domain.ContentItem{}
	for _, it := range parsed.Items {
		text := r.Normalizer.Clean(pick(it.Content, it.Description, it.Title))
		if r.Extractor != nil && it.Link != "" && extracted < r.MaxExtract && len([]rune(text)) < r.ExtractBelow {
			extracted++
			full, err := r.Extractor.Extract(ctx, it.Link)
			if err != nil {
				log.Printf("[DEBUG] extract %s: %v", it.Link, err)
			} else if len([]rune(full)) > len([]rune(text)) {
				text = full
			}
		}

		id := "rss-" + hashID(it.GUID)
		created := it.Published
		if created.IsZero() {
			created = r.Now()
		}
		raw := Raw{
			ID:        id,
			Text:      text,
			URL:       it.Link,
			Platform:  domain.PlatformOther,
			Username:  pick(it.Author, name),
			Section:   name,
			Votes:     SimulatedVotes(id),
			CreatedAt: created,
		}
		if item, ok := r.Normalizer.Item(raw); ok {
			res = append(res, item)
		}
	}
	return res
}
