package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/copewatch/pkg/domain"
	"github.com/umputun/copewatch/pkg/tweet"
)

// previewHandler generates a tweet without posting it
func (s *Server) previewHandler(w http.ResponseWriter, r *http.Request) {
	text := s.Generator.Generate(r.Context(), s.Strategy)
	renderJSON(w, r, http.StatusOK, map[string]any{"preview": text, "length": tweet.Length(text)})
}

// postTweetHandler posts the text from the body, or a generated one if the body has no text
func (s *Server) postTweetHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("[DEBUG] tweet body ignored: %v", err)
	}
	text := strings.TrimSpace(body.Text)
	if text == "" {
		text = s.Generator.Generate(r.Context(), s.Strategy)
	}
	s.publish(w, r, text, domain.TriggerManual, nil)
}

// cronTweetHandler posts a generated tweet, requires the bearer secret if one is set
func (s *Server) cronTweetHandler(w http.ResponseWriter, r *http.Request) {
	if !s.authorizedCron(r) {
		log.Printf("[WARN] unauthorized cron call from %s", r.RemoteAddr)
		renderJSON(w, r, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}
	text := s.Generator.Generate(r.Context(), s.Strategy)
	s.publish(w, r, text, domain.TriggerCron, map[string]any{"timestamp": s.now().UTC()})
}

// historyHandler returns recent posting attempts
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	if s.Posts == nil {
		renderJSON(w, r, http.StatusOK, []domain.Post{})
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	posts, err := s.Posts.ListPosts(r.Context(), limit)
	if err != nil {
		log.Printf("[ERROR] failed to list posts: %v", err)
		renderError(w, r, errors.New("failed to load post history"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, posts)
}

// publish posts text and renders the outcome, extra fields are added to both success and failure
func (s *Server) publish(w http.ResponseWriter, r *http.Request, text string, trigger domain.PostTrigger, extra map[string]any) {
	tw, err := s.Publisher.Publish(r.Context(), text, trigger)
	if err != nil {
		code, msg := http.StatusInternalServerError, "Failed to post tweet"
		if errors.Is(err, tweet.ErrRateLimited) {
			code, msg = http.StatusTooManyRequests, "Rate limited"
		}
		resp := map[string]any{"error": msg, "details": err.Error()}
		for k, v := range extra {
			resp[k] = v
		}
		renderJSON(w, r, code, resp)
		return
	}

	resp := map[string]any{"success": true, "tweet": tw, "text": text}
	for k, v := range extra {
		resp[k] = v
	}
	renderJSON(w, r, http.StatusOK, resp)
}

func (s *Server) authorizedCron(r *http.Request) bool {
	if s.CronSecret == "" {
		return true
	}
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.CronSecret)) == 1
}
