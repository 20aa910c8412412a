package source

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/copewatch/pkg/classifier"
	"github.com/umputun/copewatch/pkg/domain"
)

func testNormalizer(relevance bool) *Normalizer {
	return NewNormalizer(NormalizerParams{
		Classifier:       classifier.New(classifier.DefaultTable()),
		SubjectTerms:     []string{"Keir", " starmer ", "labour", "government", ""},
		Relevance:        relevance,
		MinTextLength:    20,
		MaxContentLength: 400,
	})
}

func TestNormalizer_Item(t *testing.T) {
	n := testNormalizer(true)
	ts := time.Date(2024, 9, 1, 10, 0, 0, 0, time.FixedZone("BST", 3600))

	t.Run("accepted and classified", func(t *testing.T) {
		item, ok := n.Item(Raw{ID: "reddit-post-1", Text: "Starmer? Just blame the tories again", Platform: domain.PlatformReddit,
			URL: "https://www.reddit.com/r/x/1", Username: "u1", Section: "ukpolitics", Votes: 42, CreatedAt: ts})
		assert.True(t, ok)
		assert.Equal(t, "reddit-post-1", item.ID)
		assert.Equal(t, domain.CategoryWhatabout, item.Category)
		assert.Equal(t, 6, item.CopeLevel)
		assert.Equal(t, 42, item.Votes)
		assert.Equal(t, "ukpolitics", item.Section)
		assert.Equal(t, time.UTC, item.CreatedAt.Location())
		assert.True(t, item.CreatedAt.Equal(ts))
	})

	t.Run("too short", func(t *testing.T) {
		_, ok := n.Item(Raw{ID: "a", Text: "starmer out", Platform: domain.PlatformReddit})
		assert.False(t, ok)
	})

	t.Run("irrelevant", func(t *testing.T) {
		_, ok := n.Item(Raw{ID: "a", Text: "my cat knocked a glass over this morning", Platform: domain.PlatformReddit})
		assert.False(t, ok)
		_, ok = n.WithRelevance(false).Item(Raw{ID: "a", Text: "my cat knocked a glass over this morning"})
		assert.True(t, ok, "relevance switched off")
	})

	t.Run("negative votes clamped", func(t *testing.T) {
		item, ok := n.Item(Raw{ID: "a", Text: "the labour government is doing fine", Votes: -12})
		assert.True(t, ok)
		assert.Equal(t, 0, item.Votes)
	})

	t.Run("long text truncated", func(t *testing.T) {
		text := "starmer " + strings.Repeat("ж", 600)
		item, ok := n.Item(Raw{ID: "a", Text: text})
		assert.True(t, ok)
		assert.Equal(t, 403, len([]rune(item.Content)))
		assert.True(t, strings.HasSuffix(item.Content, "..."))
	})

	t.Run("platform keywords", func(t *testing.T) {
		item, ok := n.WithRelevance(false).Item(Raw{ID: "a", Text: "boris did far worse than this", Platform: domain.PlatformYouTube})
		assert.True(t, ok)
		assert.Equal(t, domain.CategoryWhatabout, item.Category)

		item, ok = n.WithRelevance(false).Item(Raw{ID: "b", Text: "boris did far worse than this", Platform: domain.PlatformReddit})
		assert.True(t, ok)
		assert.Equal(t, domain.CategoryCopium, item.Category)

		// platform classifiers are built once and shared by copies
		assert.Len(t, n.byPlatform, 1)
		assert.Same(t, n.byPlatform[domain.PlatformYouTube], n.WithRelevance(false).byPlatform[domain.PlatformYouTube])
	})
}

func TestNormalizer_Clean(t *testing.T) {
	n := testNormalizer(false)
	tests := []struct{ in, want string }{
		{"plain text", "plain text"},
		{"<p>Keir <b>Starmer</b></p>\n\n<p>said &amp; did</p>", "Keir Starmer said & did"},
		{"fish &amp; chips &#39;n&#39; peas", "fish & chips 'n' peas"},
		{"  spaced \t\n out  ", "spaced out"},
		{"<script>alert(1)</script>labour", "labour"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Clean(tt.in), tt.in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab...", Truncate("abc", 2))
	assert.Equal(t, "абв...", Truncate("абвгд", 3))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestSimulatedVotes(t *testing.T) {
	for _, id := range []string{"", "guardian-politics-1", "rss-abc", strings.Repeat("x", 1000)} {
		v := SimulatedVotes(id)
		assert.GreaterOrEqual(t, v, 10)
		assert.Less(t, v, 210)
		assert.Equal(t, v, SimulatedVotes(id), "stable for %q", id)
	}
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "https://api.example.com/search?api-key=%2A%2A%2A%2A&q=starmer",
		redactURL("https://api.example.com/search?q=starmer&api-key=secret"))
	assert.Equal(t, "https://api.example.com/search?key=%2A%2A%2A%2A", redactURL("https://api.example.com/search?key=secret"))
	assert.Equal(t, "https://api.example.com/search?q=x", redactURL("https://api.example.com/search?q=x"))
}
