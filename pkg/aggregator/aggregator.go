// Package aggregator merges items from all source adapters into one ranked page.
package aggregator

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	log "github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/copewatch/pkg/domain"
	"github.com/umputun/copewatch/pkg/metrics"
	"github.com/umputun/copewatch/pkg/source"
)

// DefaultPageSize is the max number of items returned by aggregation
const DefaultPageSize = 30

// ErrUnknownSource is returned for a source name with no registered adapter
var ErrUnknownSource = errors.New("unknown source")

// Options defines aggregation settings
type Options struct {
	PageSize      int // max items in a result, DefaultPageSize if zero
	MaxConcurrent int // adapters fetched in parallel, all if zero
	Metrics       *metrics.Metrics
}

// Aggregator fans out to adapters and merges their results
type Aggregator struct {
	adapters []source.Adapter
	opts     Options
}

// New makes an aggregator, adapter order defines dedup precedence
func New(adapters []source.Adapter, opts Options) *Aggregator {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = max(len(adapters), 1)
	}
	return &Aggregator{adapters: adapters, opts: opts}
}

// Sources returns names of registered adapters
func (a *Aggregator) Sources() []string {
	res := make([]string, 0, len(a.adapters))
	for _, ad := range a.adapters {
		res = append(res, ad.Name())
	}
	return res
}

// Aggregate fetches all adapters concurrently and merges results. Adapter failures,
// including missing configuration, count as empty results.
func (a *Aggregator) Aggregate(ctx context.Context, req domain.AggregateRequest) []domain.ContentItem {
	batches := make([][]domain.ContentItem, len(a.adapters))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.MaxConcurrent)
	for i, ad := range a.adapters {
		g.Go(func() error {
			batches[i] = a.fetch(gctx, ad, req.FetchRequest())
			return nil
		})
	}
	_ = g.Wait()
	return Merge(batches, req, a.opts.PageSize)
}

// AggregateSource fetches a single adapter by name and merges its results.
// Returns ErrUnknownSource or the adapter's configuration error.
func (a *Aggregator) AggregateSource(ctx context.Context, name string, req domain.AggregateRequest) ([]domain.ContentItem, error) {
	for _, ad := range a.adapters {
		if ad.Name() != name {
			continue
		}
		items, err := ad.Fetch(ctx, req.FetchRequest())
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", name, err)
		}
		a.opts.Metrics.AddSourceItems(name, len(items))
		return Merge([][]domain.ContentItem{items}, req, a.opts.PageSize), nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownSource)
}

func (a *Aggregator) fetch(ctx context.Context, ad source.Adapter, req domain.FetchRequest) []domain.ContentItem {
	st := time.Now()
	items, err := ad.Fetch(ctx, req)
	if err != nil {
		if errors.Is(err, source.ErrNotConfigured) {
			log.Printf("[DEBUG] skip %s: %v", ad.Name(), err)
			return nil
		}
		log.Printf("[WARN] fetch %s failed: %v", ad.Name(), err)
		return nil
	}
	a.opts.Metrics.AddSourceItems(ad.Name(), len(items))
	log.Printf("[DEBUG] %s returned %d items in %v", ad.Name(), len(items), time.Since(st))
	return items
}

// Merge concatenates batches in order, drops duplicates, filters by category,
// sorts by the requested key and truncates to pageSize. Result is never nil.
func Merge(batches [][]domain.ContentItem, req domain.AggregateRequest, pageSize int) []domain.ContentItem {
	seenIDs := map[string]bool{}
	seenContent := map[string]bool{}
	res := []domain.ContentItem{}
	for _, batch := range batches {
		for _, item := range batch {
			id := item.NormalizedID()
			if seenIDs[id] || seenContent[item.Content] {
				continue
			}
			seenIDs[id], seenContent[item.Content] = true, true

			if req.Category != "" && req.Category != domain.CategoryAll && item.Category != req.Category {
				continue
			}
			res = append(res, item)
		}
	}

	switch req.SortBy {
	case domain.SortVotes:
		slices.SortStableFunc(res, func(a, b domain.ContentItem) int { return cmp.Compare(b.Votes, a.Votes) })
	case domain.SortCopeLevel:
		slices.SortStableFunc(res, func(a, b domain.ContentItem) int { return cmp.Compare(b.CopeLevel, a.CopeLevel) })
	default:
		slices.SortStableFunc(res, func(a, b domain.ContentItem) int { return b.CreatedAt.Compare(a.CreatedAt) })
	}

	if pageSize > 0 && len(res) > pageSize {
		res = res[:pageSize]
	}
	return res
}
