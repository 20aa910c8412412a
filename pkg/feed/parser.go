// Package feed reads RSS/Atom feeds used as news sources and renders the aggregated
// wall of cope as an RSS 2.0 feed.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/copewatch/pkg/domain"
)

// Parser fetches and parses RSS/Atom feeds
type Parser struct {
	client    *http.Client
	userAgent string
	maxItems  int
}

// ParserParams defines parser settings, zero MaxItems keeps all entries
type ParserParams struct {
	Timeout   time.Duration
	UserAgent string
	MaxItems  int
	Client    *http.Client
}

// NewParser creates a feed parser
func NewParser(p ParserParams) *Parser {
	client := p.Client
	if client == nil {
		client = &http.Client{
			Timeout: p.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return &Parser{client: client, userAgent: p.UserAgent, maxItems: p.MaxItems}
}

// Parse fetches the feed at url and converts its entries
func (p *Parser) Parse(ctx context.Context, url string) (*domain.ParsedFeed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	addFeedHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed %s: unexpected status code %d", url, resp.StatusCode)
	}

	f, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}
	return p.convert(f), nil
}

func (p *Parser) convert(f *gofeed.Feed) *domain.ParsedFeed {
	items := f.Items
	if p.maxItems > 0 && len(items) > p.maxItems {
		items = items[:p.maxItems]
	}

	res := &domain.ParsedFeed{
		Title:       f.Title,
		Description: f.Description,
		Link:        f.Link,
		Items:       make([]domain.ParsedItem, 0, len(items)),
	}
	for _, it := range items {
		pi := domain.ParsedItem{
			Title:       it.Title,
			Link:        it.Link,
			Description: it.Description,
			Content:     it.Content,
		}

		switch {
		case it.GUID != "":
			pi.GUID = it.GUID
		case it.Link != "":
			pi.GUID = it.Link
		default:
			pi.GUID = f.Title + "-" + it.Title
		}

		if it.Author != nil {
			pi.Author = it.Author.Name
		}

		if it.PublishedParsed != nil {
			pi.Published = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			pi.Published = *it.UpdatedParsed
		}

		res.Items = append(res.Items, pi)
	}
	return res
}
