package classifier

import "github.com/umputun/copewatch/pkg/domain"

// DefaultTable returns the built-in rule table used when config doesn't override it
func DefaultTable() Table {
	return Table{
		Rules: []Rule{
			{Category: domain.CategoryWhatabout, Keywords: []string{
				"tory", "tories", "conservative", "14 years", "inherited", "previous government", "sunak", "truss",
			}},
			{Category: domain.CategoryDeflection, Keywords: []string{
				"media", "bias", "unfair", "misrepresent", "taken out of context", "actually meant",
			}},
			{Category: domain.CategoryDenial, Keywords: []string{
				"give him time", "early days", "only been", "too soon", "wait and see", "long term",
			}},
		},
		Controversial: []string{"winter fuel", "freebies", "donations"},
		Platform: map[domain.Platform]map[domain.Category][]string{
			domain.PlatformYouTube: {domain.CategoryWhatabout: {"boris", "johnson"}},
		},
		Baseline:           5,
		MatchCap:           3,
		ControversialBonus: 2,
		EmphasisCap:        2,
	}
}
