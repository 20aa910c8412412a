package source

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/copewatch/pkg/domain"
)

// GuardianParams defines the Guardian content API adapter settings
type GuardianParams struct {
	BaseURL    string
	APIKey     string // "test" is used if empty, the API accepts it with a low quota
	Section    string
	Queries    []string
	PageSize   int
	Client     *Client
	Normalizer *Normalizer
}

// Guardian searches politics articles of the Guardian content API
type Guardian struct {
	GuardianParams
}

type guardianResponse struct {
	Response struct {
		Status  string `json:"status"`
		Results []struct {
			ID                 string    `json:"id"`
			SectionName        string    `json:"sectionName"`
			WebTitle           string    `json:"webTitle"`
			WebURL             string    `json:"webUrl"`
			WebPublicationDate time.Time `json:"webPublicationDate"`
			Fields             struct {
				TrailText  string `json:"trailText"`
				Standfirst string `json:"standfirst"`
				BodyText   string `json:"bodyText"`
			} `json:"fields"`
		} `json:"results"`
	} `json:"response"`
}

// NewGuardian makes a Guardian adapter
func NewGuardian(p GuardianParams) *Guardian {
	if p.BaseURL == "" {
		p.BaseURL = "https://content.guardianapis.com"
	}
	p.BaseURL = strings.TrimRight(p.BaseURL, "/")
	if p.APIKey == "" {
		p.APIKey = "test"
	}
	if p.Section == "" {
		p.Section = "politics"
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	return &Guardian{GuardianParams: p}
}

// Name of the adapter
func (g *Guardian) Name() string { return "guardian" }

// Fetch searches every query, newest first
func (g *Guardian) Fetch(ctx context.Context, _ domain.FetchRequest) ([]domain.ContentItem, error) {
	res := []domain.ContentItem{}
	for _, q := range g.Queries {
		params := url.Values{}
		params.Set("q", q)
		params.Set("section", g.Section)
		params.Set("show-fields", "trailText,standfirst,bodyText")
		params.Set("page-size", strconv.Itoa(g.PageSize))
		params.Set("order-by", "newest")
		params.Set("api-key", g.APIKey)

		var resp guardianResponse
		if err := g.Client.GetJSON(ctx, g.BaseURL+"/search?"+params.Encode(), &resp); err != nil {
			log.Printf("[WARN] guardian search %q failed: %v", q, err)
			continue
		}

		for _, r := range resp.Response.Results {
			if r.ID == "" {
				continue
			}
			id := "guardian-" + strings.ReplaceAll(r.ID, "/", "-")
			raw := Raw{
				ID:        id,
				Text:      pick(r.Fields.BodyText, r.Fields.Standfirst, r.Fields.TrailText, r.WebTitle),
				URL:       r.WebURL,
				Platform:  domain.PlatformGuardian,
				Username:  "The Guardian",
				Section:   pick(r.SectionName, "Politics"),
				Votes:     SimulatedVotes(id),
				CreatedAt: r.WebPublicationDate,
			}
			if item, ok := g.Normalizer.Item(raw); ok {
				res = append(res, item)
			}
		}
	}
	log.Printf("[DEBUG] guardian: %d items from %d queries", len(res), len(g.Queries))
	return res, nil
}
