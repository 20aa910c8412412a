package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/copewatch/pkg/aggregator"
	"github.com/umputun/copewatch/pkg/domain"
	"github.com/umputun/copewatch/pkg/source"
	"github.com/umputun/copewatch/server/mocks"
)

func TestServer_AggregateHandler(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantReq domain.AggregateRequest
	}{
		{"defaults", "/cope-aggregate", domain.AggregateRequest{Category: domain.CategoryAll, SortBy: domain.SortRecent}},
		{"category and sort", "/cope-aggregate?category=denial&sort_by=votes",
			domain.AggregateRequest{Category: domain.CategoryDenial, SortBy: domain.SortVotes}},
		{"cope level", "/cope-aggregate?category=ALL&sort_by=cope_level",
			domain.AggregateRequest{Category: domain.CategoryAll, SortBy: domain.SortCopeLevel}},
		{"unknown sort", "/cope-aggregate?sort_by=random", domain.AggregateRequest{Category: domain.CategoryAll, SortBy: domain.SortRecent}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := &mocks.AggregatorMock{AggregateFunc: func(ctx context.Context, req domain.AggregateRequest) []domain.ContentItem {
				return testItems()
			}}
			s := testServer(t, Params{Aggregator: agg})

			w := do(t, s, http.MethodGet, tt.url, http.NoBody)
			require.Equal(t, http.StatusOK, w.Code)

			var items []domain.ContentItem
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
			assert.Equal(t, testItems(), items)
			require.Len(t, agg.AggregateCalls(), 1)
			assert.Equal(t, tt.wantReq, agg.AggregateCalls()[0].Req)
		})
	}
}

func TestServer_AggregateHandler_Empty(t *testing.T) {
	agg := &mocks.AggregatorMock{AggregateFunc: func(ctx context.Context, req domain.AggregateRequest) []domain.ContentItem {
		return []domain.ContentItem{}
	}}
	s := testServer(t, Params{Aggregator: agg})

	w := do(t, s, http.MethodGet, "/cope-aggregate", http.NoBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestServer_AggregateHandler_RealAggregator(t *testing.T) {
	// three adapters return 0, 5 and 3 items
	var adapters []source.Adapter
	for i, n := range []int{0, 5, 3} {
		items := make([]domain.ContentItem, 0, n)
		for j := range n {
			items = append(items, domain.ContentItem{ID: fmt.Sprintf("s%d-%d", i, j), Content: fmt.Sprintf("text %d %d", i, j),
				Category: domain.CategoryCopium, CopeLevel: 5, CreatedAt: testTime.Add(-time.Duration(i*10+j) * time.Minute)})
		}
		adapters = append(adapters, &adapterStub{name: fmt.Sprintf("src%d", i), items: items})
	}
	s := testServer(t, Params{Aggregator: aggregator.New(adapters, aggregator.Options{})})

	w := do(t, s, http.MethodGet, "/cope-aggregate?category=all&sort_by=recent", http.NoBody)
	require.Equal(t, http.StatusOK, w.Code)
	var items []domain.ContentItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 8)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].CreatedAt.After(items[i-1].CreatedAt), "sorted by created_at desc")
	}
}

func TestServer_SourceHandler(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		agg := &mocks.AggregatorMock{AggregateSourceFunc: func(ctx context.Context, name string, req domain.AggregateRequest) ([]domain.ContentItem, error) {
			return testItems()[:1], nil
		}}
		s := testServer(t, Params{Aggregator: agg})

		w := do(t, s, http.MethodGet, "/reddit-cope?sort_by=votes", http.NoBody)
		require.Equal(t, http.StatusOK, w.Code)
		var items []domain.ContentItem
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
		assert.Len(t, items, 1)
		require.Len(t, agg.AggregateSourceCalls(), 1)
		assert.Equal(t, "reddit", agg.AggregateSourceCalls()[0].Name)
		assert.Equal(t, domain.SortVotes, agg.AggregateSourceCalls()[0].Req.SortBy)
	})

	t.Run("missing api key", func(t *testing.T) {
		agg := &mocks.AggregatorMock{AggregateSourceFunc: func(ctx context.Context, name string, req domain.AggregateRequest) ([]domain.ContentItem, error) {
			return nil, fmt.Errorf("fetch youtube: %w", source.ErrNotConfigured)
		}}
		s := testServer(t, Params{Aggregator: agg})

		w := do(t, s, http.MethodGet, "/youtube-cope", http.NoBody)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"YouTube API key not configured"}`, w.Body.String())
	})

	t.Run("disabled source", func(t *testing.T) {
		agg := &mocks.AggregatorMock{AggregateSourceFunc: func(ctx context.Context, name string, req domain.AggregateRequest) ([]domain.ContentItem, error) {
			return nil, fmt.Errorf("%q: %w", name, aggregator.ErrUnknownSource)
		}}
		s := testServer(t, Params{Aggregator: agg})

		w := do(t, s, http.MethodGet, "/guardian-cope", http.NoBody)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"source guardian is not enabled"}`, w.Body.String())
	})

	t.Run("upstream failure gives empty list", func(t *testing.T) {
		agg := &mocks.AggregatorMock{AggregateSourceFunc: func(ctx context.Context, name string, req domain.AggregateRequest) ([]domain.ContentItem, error) {
			return nil, errors.New("connection refused")
		}}
		s := testServer(t, Params{Aggregator: agg})

		w := do(t, s, http.MethodGet, "/rss-cope", http.NoBody)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("unknown path", func(t *testing.T) {
		s := testServer(t, Params{})
		assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/tiktok-cope", http.NoBody).Code)
	})
}

type adapterStub struct {
	name  string
	items []domain.ContentItem
}

func (a *adapterStub) Name() string { return a.name }

func (a *adapterStub) Fetch(context.Context, domain.FetchRequest) ([]domain.ContentItem, error) {
	return a.items, nil
}
