package server

import (
	"net/http"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/copewatch/pkg/domain"
)

// rssHandler serves aggregated items as RSS, supports /rss/cope and /rss/cope/{category}
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	category := domain.ParseCategoryFilter(r.PathValue("category"))
	if category != domain.CategoryAll && !category.Valid() {
		http.Error(w, "unknown category", http.StatusNotFound)
		return
	}

	items := s.Aggregator.Aggregate(r.Context(), domain.AggregateRequest{Category: category, SortBy: domain.SortRecent})
	s.Metrics.ObserveAggregate("rss", len(items))

	rss, err := s.rss.GenerateRSS(items, category)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
