package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/copewatch/pkg/domain"
)

const rssTitleRunes = 80

// Generator renders aggregated items as RSS 2.0
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a feed generator for the given public site url
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// GenerateRSS creates an RSS 2.0 document for items of a category, all for every category
func (g *Generator) GenerateRSS(items []domain.ContentItem, category domain.Category) (string, error) {
	title := "Wall of Cope"
	selfLink := g.baseURL + "/rss/cope"
	if category != "" && category != domain.CategoryAll {
		title = fmt.Sprintf("Wall of Cope - %s", category)
		selfLink = fmt.Sprintf("%s/rss/cope/%s", g.baseURL, category)
	}

	rssItems := make([]*RSSItem, 0, len(items))
	for _, item := range items {
		rssItems = append(rssItems, g.convertItem(item))
	}

	doc := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/wall-of-cope",
			Description:   "The finest cope, classified and scored",
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().UTC().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

func (g *Generator) convertItem(item domain.ContentItem) *RSSItem {
	headline := []rune(item.Content)
	if len(headline) > rssTitleRunes {
		headline = append(headline[:rssTitleRunes], []rune("...")...)
	}

	link := item.SourceURL
	if link == "" {
		link = g.baseURL + "/wall-of-cope"
	}

	desc := fmt.Sprintf("Cope level %d/10 (%s) via %s", item.CopeLevel, item.Category, item.SourcePlatform)
	if item.SourceUsername != "" {
		desc += " by " + item.SourceUsername
	}
	desc += "\n\n" + item.Content

	return &RSSItem{
		Title:       fmt.Sprintf("[%d/10] %s", item.CopeLevel, string(headline)),
		Link:        link,
		GUID:        GUID{Value: item.ID, IsPermaLink: "false"},
		Description: desc,
		PubDate:     item.CreatedAt.UTC().Format(time.RFC1123Z),
		Categories:  []string{string(item.Category), string(item.SourcePlatform)},
	}
}
