// Package tweet generates short satirical posts from template pools and publishes them to X.
package tweet

import (
	"context"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf16"
)

// MaxLength is the X post limit in characters
const MaxLength = 280

// Rand is a source of randomness, *rand.Rand satisfies it
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Strategy picks a template
type Strategy interface {
	Name() string
	Template(ctx context.Context, rnd Rand, now time.Time) string
}

// GeneratorParams defines generator settings
type GeneratorParams struct {
	SiteURL string
	Pages   []string // paths appended to SiteURL for {url}, DefaultPages if empty
	Pools   Pools
	Rand    Rand // seeded PCG if nil
	Now     func() time.Time
}

// Generator fills templates chosen by strategies, safe for concurrent use
type Generator struct {
	siteURL string
	pages   []string
	pools   Pools
	rnd     *lockedRand
	now     func() time.Time
}

var placeholderRe = regexp.MustCompile(`\{[a-zA-Z_]+\}`)

// NewGenerator makes a generator
func NewGenerator(p GeneratorParams) *Generator {
	if len(p.Pages) == 0 {
		p.Pages = DefaultPages
	}
	if p.Rand == nil {
		p.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x636f7065)) //nolint:gosec // jokes, not secrets
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Generator{
		siteURL: strings.TrimRight(p.SiteURL, "/"),
		pages:   p.Pages,
		pools:   p.Pools,
		rnd:     &lockedRand{r: p.Rand},
		now:     p.Now,
	}
}

// Pools returns generator pools
func (g *Generator) Pools() Pools { return g.pools }

// Generate picks a template with the strategy and fills its placeholders
func (g *Generator) Generate(ctx context.Context, s Strategy) string {
	tmpl := s.Template(ctx, g.rnd, g.now().UTC())
	if strings.TrimSpace(tmpl) == "" {
		tmpl = "Tracking every broken promise at {url}"
	}
	return g.Fill(tmpl)
}

// Fill replaces every occurrence of known placeholders. Each placeholder present in the
// template takes one random draw, absent ones take none.
func (g *Generator) Fill(tmpl string) string {
	g.rnd.mu.Lock()
	defer g.rnd.mu.Unlock()
	rnd := g.rnd.r

	res := tmpl
	if strings.Contains(res, "{url}") {
		res = strings.ReplaceAll(res, "{url}", g.siteURL+g.pages[rnd.IntN(len(g.pages))])
	}
	if strings.Contains(res, "{topic}") {
		res = strings.ReplaceAll(res, "{topic}", pickOr(rnd, g.pools.Topics, "the economy"))
	}
	if strings.Contains(res, "{promise}") {
		res = strings.ReplaceAll(res, "{promise}", pickOr(rnd, g.pools.Promises, "change"))
	}
	if strings.Contains(res, "{broken}") {
		res = strings.ReplaceAll(res, "{broken}", strconv.Itoa(15+rnd.IntN(10)))
	}
	if strings.Contains(res, "{pending}") {
		res = strings.ReplaceAll(res, "{pending}", strconv.Itoa(5+rnd.IntN(10)))
	}
	if strings.Contains(res, "{kept}") {
		res = strings.ReplaceAll(res, "{kept}", strconv.Itoa(rnd.IntN(3)))
	}
	return res
}

// Placeholders returns all {name} tokens found in text
func Placeholders(text string) []string {
	return placeholderRe.FindAllString(text, -1)
}

// KnownPlaceholder reports whether p is substituted by Fill
func KnownPlaceholder(p string) bool {
	switch p {
	case "{url}", "{topic}", "{promise}", "{broken}", "{pending}", "{kept}":
		return true
	}
	return false
}

// Length returns text length in UTF-16 code units, the way browsers count it,
// so characters outside the basic plane count as two
func Length(text string) int {
	return len(utf16.Encode([]rune(text)))
}

func pickOr(rnd Rand, pool []string, def string) string {
	if len(pool) == 0 {
		return def
	}
	return pool[rnd.IntN(len(pool))]
}

// lockedRand serializes access to a Rand, math/rand/v2 generators aren't goroutine safe
type lockedRand struct {
	mu sync.Mutex
	r  Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}
