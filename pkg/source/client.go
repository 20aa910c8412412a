package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/umputun/copewatch/pkg/metrics"
)

const maxResponseSize = 8 << 20

// ClientParams defines outbound http behaviour of a single adapter
type ClientParams struct {
	Name       string        // adapter name, used for metrics labels
	Timeout    time.Duration // per request, on top of the caller's context
	UserAgent  string
	CacheTTL   time.Duration // zero disables the response cache
	CacheSize  int
	RateLimit  float64 // requests per second, zero is unlimited
	Metrics    *metrics.Metrics
	HTTPClient *http.Client
}

// Client makes JSON GET requests for an adapter with optional caching and rate limiting
type Client struct {
	name      string
	timeout   time.Duration
	userAgent string
	http      *http.Client
	cache     *expirable.LRU[string, []byte]
	limiter   *rate.Limiter
	metrics   *metrics.Metrics
}

// StatusError is a non-2xx provider response
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// NewClient makes a client
func NewClient(p ClientParams) *Client {
	res := &Client{
		name:      p.Name,
		timeout:   p.Timeout,
		userAgent: p.UserAgent,
		http:      p.HTTPClient,
		metrics:   p.Metrics,
	}
	if res.http == nil {
		res.http = &http.Client{}
	}
	if res.timeout <= 0 {
		res.timeout = 10 * time.Second
	}
	if p.CacheTTL > 0 {
		size := p.CacheSize
		if size <= 0 {
			size = 256
		}
		res.cache = expirable.NewLRU[string, []byte](size, nil, p.CacheTTL)
	}
	if p.RateLimit > 0 {
		res.limiter = rate.NewLimiter(rate.Limit(p.RateLimit), 1)
	}
	return res
}

// GetJSON requests u and decodes the JSON body into v
func (c *Client) GetJSON(ctx context.Context, u string, v any) error {
	body, err := c.get(ctx, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s response: %w", c.name, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(u); ok {
			return body, nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	st := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveSourceRequest(c.name, "error", time.Since(st))
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err // url.Error carries the raw url with credentials
		}
		return nil, fmt.Errorf("request %s: %w", redactURL(u), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.ObserveSourceRequest(c.name, strconv.Itoa(resp.StatusCode), time.Since(st))
		return nil, &StatusError{Code: resp.StatusCode, Body: Truncate(string(body), 200)}
	}
	if err != nil {
		c.metrics.ObserveSourceRequest(c.name, "error", time.Since(st))
		return nil, fmt.Errorf("read %s: %w", redactURL(u), err)
	}
	c.metrics.ObserveSourceRequest(c.name, "ok", time.Since(st))

	if c.cache != nil {
		c.cache.Add(u, body)
	}
	return body, nil
}

// redactURL hides credentials passed as query parameters
func redactURL(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return "<invalid url>"
	}
	q := parsed.Query()
	changed := false
	for _, k := range []string{"key", "api-key", "api_key"} {
		if q.Has(k) {
			q.Set(k, "****")
			changed = true
		}
	}
	if changed {
		parsed.RawQuery = q.Encode()
	}
	return parsed.String()
}
