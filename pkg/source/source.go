// Package source implements provider adapters which fetch commentary from Reddit, YouTube,
// the Guardian content API and RSS feeds, and normalize it into classified content items.
//
// Adapters are tolerant to provider failures: a failed or non-2xx request is logged and
// treated as zero items for that query. Fetch returns an error only when the adapter can't
// run at all, e.g. a required API key is missing.
package source

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/copewatch/pkg/classifier"
	"github.com/umputun/copewatch/pkg/domain"
)

//go:generate moq -out mocks/adapter.go -pkg mocks -skip-ensure -fmt goimports . Adapter

// ErrNotConfigured is returned by adapters missing required credentials
var ErrNotConfigured = errors.New("not configured")

// Adapter fetches and normalizes items from one provider
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, req domain.FetchRequest) ([]domain.ContentItem, error)
}

// Raw is a provider record before cleanup and classification
type Raw struct {
	ID        string
	Text      string
	URL       string
	Platform  domain.Platform
	Username  string
	Section   string
	Votes     int
	CreatedAt time.Time
}

// NormalizerParams defines text acceptance rules shared by adapters
type NormalizerParams struct {
	Classifier       *classifier.Classifier
	SubjectTerms     []string // relevance terms, any must appear if Relevance is set
	Relevance        bool
	MinTextLength    int // in runes, shorter texts are dropped
	MaxContentLength int // in runes, longer content is cut and "..." appended
}

// Normalizer cleans, filters, truncates and classifies raw records
type Normalizer struct {
	classifier       *classifier.Classifier
	byPlatform       map[domain.Platform]*classifier.Classifier
	policy           *bluemonday.Policy
	subjectTerms     []string
	relevance        bool
	minTextLength    int
	maxContentLength int
}

// NewNormalizer makes a normalizer
func NewNormalizer(p NormalizerParams) *Normalizer {
	terms := make([]string, 0, len(p.SubjectTerms))
	for _, t := range p.SubjectTerms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			terms = append(terms, t)
		}
	}
	byPlatform := map[domain.Platform]*classifier.Classifier{}
	for _, pl := range p.Classifier.Platforms() {
		byPlatform[pl] = p.Classifier.ForPlatform(pl)
	}
	return &Normalizer{
		classifier:       p.Classifier,
		byPlatform:       byPlatform,
		policy:           bluemonday.StrictPolicy(),
		subjectTerms:     terms,
		relevance:        p.Relevance,
		minTextLength:    p.MinTextLength,
		maxContentLength: p.MaxContentLength,
	}
}

// WithRelevance returns a copy with the relevance filter switched on or off
func (n *Normalizer) WithRelevance(on bool) *Normalizer {
	res := *n
	res.relevance = on
	return &res
}

// Item converts a raw record to a content item. Returns false if the text is too thin
// or, with relevance filtering on, doesn't mention any subject term.
func (n *Normalizer) Item(r Raw) (domain.ContentItem, bool) {
	text := n.Clean(r.Text)
	if len([]rune(text)) < n.minTextLength {
		return domain.ContentItem{}, false
	}
	if n.relevance && !n.Relevant(text) {
		return domain.ContentItem{}, false
	}

	clf := n.classifier
	if pc, ok := n.byPlatform[r.Platform]; ok {
		clf = pc
	}
	cls := clf.Classify(text)
	return domain.ContentItem{
		ID:             r.ID,
		Content:        Truncate(text, n.maxContentLength),
		SourceURL:      r.URL,
		SourcePlatform: r.Platform,
		SourceUsername: r.Username,
		Section:        r.Section,
		Category:       cls.Category,
		CopeLevel:      cls.CopeLevel,
		Votes:          max(r.Votes, 0),
		CreatedAt:      r.CreatedAt.UTC(),
	}, true
}

// Clean strips html, unescapes entities and collapses whitespace
func (n *Normalizer) Clean(s string) string {
	if strings.ContainsAny(s, "<&") {
		s = html.UnescapeString(n.policy.Sanitize(s))
	}
	return strings.Join(strings.Fields(s), " ")
}

// Relevant reports whether text mentions one of the subject terms
func (n *Normalizer) Relevant(text string) bool {
	lower := strings.ToLower(text)
	for _, t := range n.subjectTerms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// Truncate cuts s to limit runes and appends an ellipsis, limit <= 0 disables
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

// SimulatedVotes gives a stable vote count in [10,210) for providers without scores
func SimulatedVotes(id string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return 10 + int(h.Sum32()%200)
}

// pick returns the first non-blank value
func pick(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// hashID makes a short stable id from an arbitrary provider identifier
func hashID(s string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%x", h.Sum64())
}
