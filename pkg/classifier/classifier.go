// Package classifier assigns cope categories and intensity scores to free text using ordered
// keyword rules. The rule table is plain configuration, adapters share one table and express
// platform differences as keyword unions on top of it.
package classifier

import (
	"regexp"
	"strings"

	"github.com/umputun/copewatch/pkg/domain"
)

const (
	minScore = 1
	maxScore = 10
)

var emphasisRe = regexp.MustCompile(`[!?]{2,}`)

// Rule maps a category to its keywords, rules are evaluated in table order
type Rule struct {
	Category domain.Category `yaml:"category" json:"category"`
	Keywords []string        `yaml:"keywords" json:"keywords"`
}

// Table is the full classifier configuration
type Table struct {
	Rules              []Rule                                          `yaml:"rules" json:"rules"`
	Controversial      []string                                        `yaml:"controversial" json:"controversial"`
	Platform           map[domain.Platform]map[domain.Category][]string `yaml:"platform" json:"platform"`
	Baseline           int                                             `yaml:"baseline" json:"baseline"`
	MatchCap           int                                             `yaml:"match_cap" json:"match_cap"`
	ControversialBonus int                                             `yaml:"controversial_bonus" json:"controversial_bonus"`
	EmphasisCap        int                                             `yaml:"emphasis_cap" json:"emphasis_cap"`
}

// Classifier categorizes and scores text, safe for concurrent use
type Classifier struct {
	rules              []Rule
	keywords           []string // distinct keywords across all rules, for scoring
	controversial      []string
	platform           map[domain.Platform]map[domain.Category][]string
	baseline           int
	matchCap           int
	controversialBonus int
	emphasisCap        int
}

// New makes a classifier from the table. Keywords are lower-cased and empty ones dropped.
func New(table Table) *Classifier {
	c := &Classifier{
		controversial:      lowerAll(table.Controversial),
		platform:           table.Platform,
		baseline:           table.Baseline,
		matchCap:           table.MatchCap,
		controversialBonus: table.ControversialBonus,
		emphasisCap:        table.EmphasisCap,
	}
	for _, r := range table.Rules {
		c.rules = append(c.rules, Rule{Category: r.Category, Keywords: lowerAll(r.Keywords)})
	}
	c.keywords = distinct(c.rules)
	return c
}

// ForPlatform returns a classifier where each rule is extended with the platform's extra
// keywords. Returns the receiver if the platform has no extension.
func (c *Classifier) ForPlatform(p domain.Platform) *Classifier {
	ext, ok := c.platform[p]
	if !ok || len(ext) == 0 {
		return c
	}

	res := *c
	res.rules = make([]Rule, 0, len(c.rules))
	for _, r := range c.rules {
		kws := append([]string{}, r.Keywords...)
		kws = append(kws, lowerAll(ext[r.Category])...)
		res.rules = append(res.rules, Rule{Category: r.Category, Keywords: kws})
	}
	res.keywords = distinct(res.rules)
	res.platform = nil // bound to the platform, further ForPlatform calls return it as is
	return &res
}

// Platforms returns platforms with keyword extensions
func (c *Classifier) Platforms() []domain.Platform {
	res := make([]domain.Platform, 0, len(c.platform))
	for p, ext := range c.platform {
		if len(ext) > 0 {
			res = append(res, p)
		}
	}
	return res
}

// Classify returns category and cope level for the text
func (c *Classifier) Classify(text string) domain.Classification {
	lower := strings.ToLower(text)
	return domain.Classification{Category: c.category(lower), CopeLevel: c.score(text, lower)}
}

// Category returns the first matching category, copium if nothing matches
func (c *Classifier) Category(text string) domain.Category {
	return c.category(strings.ToLower(text))
}

// Score returns the cope level of the text, always in [1,10]
func (c *Classifier) Score(text string) int {
	return c.score(text, strings.ToLower(text))
}

func (c *Classifier) category(lower string) domain.Category {
	for _, r := range c.rules {
		if containsAny(lower, r.Keywords) {
			return r.Category
		}
	}
	return domain.CategoryCopium
}

func (c *Classifier) score(text, lower string) int {
	level := c.baseline

	matches := 0
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			matches++
		}
	}
	level += min(matches, c.matchCap)

	if containsAny(lower, c.controversial) {
		level += c.controversialBonus
	}

	if c.emphasisCap > 0 {
		level += min(len(emphasisRe.FindAllStringIndex(text, -1)), c.emphasisCap)
	}

	return max(minScore, min(level, maxScore))
}

func containsAny(s string, kws []string) bool {
	for _, kw := range kws {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func lowerAll(kws []string) []string {
	res := make([]string, 0, len(kws))
	for _, kw := range kws {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		res = append(res, kw)
	}
	return res
}

func distinct(rules []Rule) []string {
	seen := map[string]bool{}
	var res []string
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if seen[kw] {
				continue
			}
			seen[kw] = true
			res = append(res, kw)
		}
	}
	return res
}
