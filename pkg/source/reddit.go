package source

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/copewatch/pkg/domain"
)

// RedditParams defines the Reddit adapter settings
type RedditParams struct {
	BaseURL         string
	Queries         []string
	Limit           int // posts per query
	CommentLimit    int // top comments per post
	MaxCommentPosts int // posts to fetch comments for, across all queries
	Client          *Client
	Normalizer      *Normalizer
}

// Reddit searches public Reddit listings for posts and their top comments
type Reddit struct {
	RedditParams
}

type redditListing struct {
	Data struct {
		Children []struct {
			Kind string      `json:"kind"`
			Data redditThing `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditThing struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Body       string  `json:"body"`
	Score      int     `json:"score"`
	Author     string  `json:"author"`
	Permalink  string  `json:"permalink"`
	Subreddit  string  `json:"subreddit"`
	CreatedUTC float64 `json:"created_utc"`
}

// NewReddit makes a Reddit adapter
func NewReddit(p RedditParams) *Reddit {
	if p.BaseURL == "" {
		p.BaseURL = "https://www.reddit.com"
	}
	p.BaseURL = strings.TrimRight(p.BaseURL, "/")
	if p.Limit <= 0 {
		p.Limit = 25
	}
	if p.CommentLimit <= 0 {
		p.CommentLimit = 10
	}
	return &Reddit{RedditParams: p}
}

// Name of the adapter
func (r *Reddit) Name() string { return "reddit" }

// Fetch searches all queries and collects accepted posts followed by top comments
func (r *Reddit) Fetch(ctx context.Context, req domain.FetchRequest) ([]domain.ContentItem, error) {
	sort := "new"
	if req.SortBy == domain.SortVotes {
		sort = "top"
	}

	res := []domain.ContentItem{}
	commentPosts := []string{}
	seenPosts := map[string]bool{}
	for _, q := range r.Queries {
		params := url.Values{}
		params.Set("q", q)
		params.Set("sort", sort)
		params.Set("t", "week")
		params.Set("limit", strconv.Itoa(r.Limit))
		params.Set("restrict_sr", "false")
		params.Set("raw_json", "1")

		var listing redditListing
		if err := r.Client.GetJSON(ctx, r.BaseURL+"/search.json?"+params.Encode(), &listing); err != nil {
			log.Printf("[WARN] reddit search %q failed: %v", q, err)
			continue
		}

		for _, ch := range listing.Data.Children {
			if ch.Kind != "t3" || ch.Data.ID == "" {
				continue
			}
			item, ok := r.Normalizer.Item(r.raw("post", ch.Data, pick(ch.Data.Selftext, ch.Data.Title)))
			if !ok {
				continue
			}
			res = append(res, item)
			if !seenPosts[ch.Data.ID] && len(commentPosts) < r.MaxCommentPosts {
				seenPosts[ch.Data.ID] = true
				commentPosts = append(commentPosts, ch.Data.ID)
			}
		}
	}

	for _, id := range commentPosts {
		res = append(res, r.comments(ctx, id)...)
	}
	log.Printf("[DEBUG] reddit: %d items from %d queries", len(res), len(r.Queries))
	return res, nil
}

// comments fetches top comments of a post, the response is [post listing, comment listing]
func (r *Reddit) comments(ctx context.Context, postID string) []domain.ContentItem {
	params := url.Values{}
	params.Set("sort", "top")
	params.Set("limit", strconv.Itoa(r.CommentLimit))
	params.Set("raw_json", "1")

	var listings []redditListing
	u := fmt.Sprintf("%s/comments/%s.json?%s", r.BaseURL, url.PathEscape(postID), params.Encode())
	if err := r.Client.GetJSON(ctx, u, &listings); err != nil {
		log.Printf("[WARN] reddit comments for %s failed: %v", postID, err)
		return nil
	}
	if len(listings) < 2 {
		return nil
	}

	res := []domain.ContentItem{}
	for _, ch := range listings[1].Data.Children {
		if ch.Kind != "t1" || ch.Data.ID == "" {
			continue
		}
		if item, ok := r.Normalizer.Item(r.raw("comment", ch.Data, ch.Data.Body)); ok {
			res = append(res, item)
		}
	}
	return res
}

func (r *Reddit) raw(kind string, t redditThing, text string) Raw {
	link := ""
	if t.Permalink != "" {
		link = "https://www.reddit.com" + t.Permalink
	}
	sec := int64(t.CreatedUTC)
	return Raw{
		ID:        fmt.Sprintf("reddit-%s-%s", kind, t.ID),
		Text:      text,
		URL:       link,
		Platform:  domain.PlatformReddit,
		Username:  t.Author,
		Section:   t.Subreddit,
		Votes:     max(t.Score, 0),
		CreatedAt: time.Unix(sec, 0).UTC(),
	}
}
