package server

import (
	"context"
	"encoding/xml"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/copewatch/pkg/domain"
	"github.com/umputun/copewatch/pkg/feed"
	"github.com/umputun/copewatch/server/mocks"
)

func TestServer_RSSHandler(t *testing.T) {
	agg := &mocks.AggregatorMock{AggregateFunc: func(ctx context.Context, req domain.AggregateRequest) []domain.ContentItem {
		return testItems()
	}}
	s := testServer(t, Params{Config: Config{SiteURL: "https://example.com/"}, Aggregator: agg})

	w := do(t, s, http.MethodGet, "/rss/cope", http.NoBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))

	var doc feed.RSS
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &doc))
	require.NotNil(t, doc.Channel)
	assert.Equal(t, "Wall of Cope", doc.Channel.Title)
	assert.Len(t, doc.Channel.Items, 2)
	require.Len(t, agg.AggregateCalls(), 1)
	assert.Equal(t, domain.AggregateRequest{Category: domain.CategoryAll, SortBy: domain.SortRecent}, agg.AggregateCalls()[0].Req)
}

func TestServer_RSSHandler_Category(t *testing.T) {
	agg := &mocks.AggregatorMock{AggregateFunc: func(ctx context.Context, req domain.AggregateRequest) []domain.ContentItem {
		return testItems()[1:]
	}}
	s := testServer(t, Params{Config: Config{SiteURL: "https://example.com"}, Aggregator: agg})

	w := do(t, s, http.MethodGet, "/rss/cope/denial", http.NoBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Wall of Cope - denial")
	assert.Contains(t, w.Body.String(), "https://example.com/rss/cope/denial")
	assert.Equal(t, domain.CategoryDenial, agg.AggregateCalls()[0].Req.Category)

	w = do(t, s, http.MethodGet, "/rss/cope/nonsense", http.NoBody)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, agg.AggregateCalls(), 1)
}
