package server

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/copewatch/pkg/aggregator"
	"github.com/umputun/copewatch/pkg/domain"
	"github.com/umputun/copewatch/pkg/source"
)

var sourceTitles = map[string]string{
	"reddit":   "Reddit",
	"youtube":  "YouTube",
	"guardian": "Guardian",
	"rss":      "RSS",
}

// aggregateHandler returns merged items of all sources, upstream failures give an empty list
func (s *Server) aggregateHandler(w http.ResponseWriter, r *http.Request) {
	req := aggregateRequest(r)
	items := s.Aggregator.Aggregate(r.Context(), req)
	s.Metrics.ObserveAggregate("all", len(items))
	renderJSON(w, r, http.StatusOK, items)
}

// sourceHandler returns items of a single source
func (s *Server) sourceHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.Aggregator.AggregateSource(r.Context(), name, aggregateRequest(r))
		switch {
		case errors.Is(err, source.ErrNotConfigured):
			renderError(w, r, fmt.Errorf("%s API key not configured", sourceTitles[name]), http.StatusInternalServerError)
			return
		case errors.Is(err, aggregator.ErrUnknownSource):
			renderError(w, r, fmt.Errorf("source %s is not enabled", name), http.StatusNotFound)
			return
		case err != nil:
			// upstream failures are not surfaced, same as in aggregation
			log.Printf("[WARN] %s cope: %v", name, err)
			items = []domain.ContentItem{}
		}
		s.Metrics.ObserveAggregate(name, len(items))
		renderJSON(w, r, http.StatusOK, items)
	}
}

func aggregateRequest(r *http.Request) domain.AggregateRequest {
	q := r.URL.Query()
	return domain.AggregateRequest{
		Category: domain.ParseCategoryFilter(q.Get("category")),
		SortBy:   domain.ParseSortKey(q.Get("sort_by")),
	}
}
