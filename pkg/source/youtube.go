package source

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/copewatch/pkg/domain"
)

// YouTubeParams defines the YouTube Data API adapter settings
type YouTubeParams struct {
	BaseURL          string
	APIKey           string
	Queries          []string
	MaxResults       int // videos per search query
	CommentLimit     int // comment threads per video
	MaxCommentVideos int // distinct videos to read comments from
	Concurrency      int
	Client           *Client
	Normalizer       *Normalizer
}

// YouTube reads comments on videos found by search queries
type YouTube struct {
	YouTubeParams
}

type ytVideo struct {
	ID    string
	Title string
}

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

type ytCommentsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			TopLevelComment struct {
				ID      string `json:"id"`
				Snippet struct {
					TextDisplay       string    `json:"textDisplay"`
					TextOriginal      string    `json:"textOriginal"`
					AuthorDisplayName string    `json:"authorDisplayName"`
					LikeCount         int       `json:"likeCount"`
					PublishedAt       time.Time `json:"publishedAt"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// NewYouTube makes a YouTube adapter
func NewYouTube(p YouTubeParams) *YouTube {
	if p.BaseURL == "" {
		p.BaseURL = "https://www.googleapis.com/youtube/v3"
	}
	p.BaseURL = strings.TrimRight(p.BaseURL, "/")
	if p.MaxResults <= 0 {
		p.MaxResults = 10
	}
	if p.CommentLimit <= 0 {
		p.CommentLimit = 20
	}
	if p.Concurrency <= 0 {
		p.Concurrency = 4
	}
	return &YouTube{YouTubeParams: p}
}

// Name of the adapter
func (y *YouTube) Name() string { return "youtube" }

// Fetch searches videos and collects their top comments, requires an API key
func (y *YouTube) Fetch(ctx context.Context, req domain.FetchRequest) ([]domain.ContentItem, error) {
	if y.APIKey == "" {
		return nil, fmt.Errorf("youtube: %w", ErrNotConfigured)
	}

	order := "date"
	if req.SortBy == domain.SortVotes {
		order = "viewCount"
	}

	videos := []ytVideo{}
	seen := map[string]bool{}
	for _, q := range y.Queries {
		if len(videos) >= y.MaxCommentVideos {
			break
		}
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("type", "video")
		params.Set("q", q)
		params.Set("order", order)
		params.Set("maxResults", strconv.Itoa(y.MaxResults))
		params.Set("regionCode", "GB")
		params.Set("relevanceLanguage", "en")
		params.Set("key", y.APIKey)

		var resp ytSearchResponse
		if err := y.Client.GetJSON(ctx, y.BaseURL+"/search?"+params.Encode(), &resp); err != nil {
			log.Printf("[WARN] youtube search %q failed: %v", q, err)
			continue
		}
		for _, it := range resp.Items {
			if it.ID.VideoID == "" || seen[it.ID.VideoID] || len(videos) >= y.MaxCommentVideos {
				continue
			}
			seen[it.ID.VideoID] = true
			videos = append(videos, ytVideo{ID: it.ID.VideoID, Title: it.Snippet.Title})
		}
	}

	// comments are fetched in parallel, each video writes to its own slot to keep order
	batches := make([][]domain.ContentItem, len(videos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(y.Concurrency)
	for i, v := range videos {
		g.Go(func() error {
			batches[i] = y.comments(gctx, v)
			return nil
		})
	}
	_ = g.Wait()

	res := []domain.ContentItem{}
	for _, b := range batches {
		res = append(res, b...)
	}
	log.Printf("[DEBUG] youtube: %d items from %d videos", len(res), len(videos))
	return res, nil
}

func (y *YouTube) comments(ctx context.Context, v ytVideo) []domain.ContentItem {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", v.ID)
	params.Set("maxResults", strconv.Itoa(y.CommentLimit))
	params.Set("order", "relevance")
	params.Set("textFormat", "plainText")
	params.Set("key", y.APIKey)

	var resp ytCommentsResponse
	if err := y.Client.GetJSON(ctx, y.BaseURL+"/commentThreads?"+params.Encode(), &resp); err != nil {
		log.Printf("[WARN] youtube comments for %s failed: %v", v.ID, err)
		return nil
	}

	res := []domain.ContentItem{}
	for _, it := range resp.Items {
		c := it.Snippet.TopLevelComment
		if it.ID == "" {
			continue
		}
		commentID := pick(c.ID, it.ID)
		raw := Raw{
			ID:        "youtube-comment-" + it.ID,
			Text:      pick(c.Snippet.TextOriginal, c.Snippet.TextDisplay),
			URL:       fmt.Sprintf("https://www.youtube.com/watch?v=%s&lc=%s", url.QueryEscape(v.ID), url.QueryEscape(commentID)),
			Platform:  domain.PlatformYouTube,
			Username:  c.Snippet.AuthorDisplayName,
			Section:   v.Title,
			Votes:     c.Snippet.LikeCount,
			CreatedAt: c.Snippet.PublishedAt,
		}
		if item, ok := y.Normalizer.Item(raw); ok {
			res = append(res, item)
		}
	}
	return res
}
