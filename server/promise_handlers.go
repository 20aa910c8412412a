package server

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/copewatch/pkg/domain"
)

// promisesHandler lists tracked promises with per-status counts
func (s *Server) promisesHandler(w http.ResponseWriter, r *http.Request) {
	status := domain.PromiseStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		renderError(w, r, fmt.Errorf("unknown status %q", status), http.StatusBadRequest)
		return
	}

	resp := struct {
		Promises []domain.Promise `json:"promises"`
		domain.PromiseStats
	}{Promises: []domain.Promise{}}

	if s.Promises != nil {
		promises, err := s.Promises.ListPromises(r.Context(), status)
		if err != nil {
			log.Printf("[ERROR] failed to list promises: %v", err)
			renderError(w, r, errors.New("failed to load promises"), http.StatusInternalServerError)
			return
		}
		stats, err := s.Promises.Stats(r.Context())
		if err != nil {
			log.Printf("[ERROR] failed to get promise stats: %v", err)
			renderError(w, r, errors.New("failed to load promises"), http.StatusInternalServerError)
			return
		}
		resp.Promises, resp.PromiseStats = promises, stats
	}
	renderJSON(w, r, http.StatusOK, resp)
}
