package tweet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
)

// ErrNotConfigured is returned when X credentials are missing
var ErrNotConfigured = errors.New("x credentials not configured")

// Credentials are OAuth 1.0a user context keys of the X app
type Credentials struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

// Complete reports whether all four values are set
func (c Credentials) Complete() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessTokenSecret != ""
}

// Tweet is the created post as returned by X
type Tweet struct {
	ID                  string   `json:"id"`
	Text                string   `json:"text"`
	EditHistoryTweetIDs []string `json:"edit_history_tweet_ids,omitempty"`
}

// XClientParams defines X API client settings
type XClientParams struct {
	Endpoint    string // API base, https://api.x.com if empty
	Credentials Credentials
	Timeout     time.Duration
	HTTPClient  *http.Client // base client wrapped by the oauth1 signer
}

// XClient posts to X API v2
type XClient struct {
	endpoint   string
	configured bool
	timeout    time.Duration
	client     *http.Client
}

// NewXClient makes an X client, a client with incomplete credentials fails on Post
func NewXClient(p XClientParams) *XClient {
	if p.Endpoint == "" {
		p.Endpoint = "https://api.x.com"
	}
	base := p.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: p.Timeout}
	}
	res := &XClient{endpoint: strings.TrimRight(p.Endpoint, "/"), configured: p.Credentials.Complete(), timeout: p.Timeout}
	if res.configured {
		cfg := oauth1.NewConfig(p.Credentials.APIKey, p.Credentials.APISecret)
		token := oauth1.NewToken(p.Credentials.AccessToken, p.Credentials.AccessTokenSecret)
		res.client = cfg.Client(context.WithValue(context.Background(), oauth1.HTTPClient, base), token)
	}
	return res
}

// Post creates a post with the given text
func (x *XClient) Post(ctx context.Context, text string) (*Tweet, error) {
	if !x.configured {
		return nil, ErrNotConfigured
	}
	// oauth1 keeps only the transport of the base client, so its timeout is applied here
	if x.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.timeout)
		defer cancel()
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("marshal tweet: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.endpoint+"/2/tweets", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post tweet: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("post tweet: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var res struct {
		Data Tweet `json:"data"`
	}
	if err := json.Unmarshal(respBody, &res); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &res.Data, nil
}
