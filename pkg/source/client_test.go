package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/copewatch/pkg/metrics"
)

func TestClient_GetJSON(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "copewatch-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"name":"starmer","score":7}`))
		case "/bad-json":
			_, _ = w.Write([]byte(`{"name":`))
		default:
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("slow down"))
		}
	}))
	defer ts.Close()

	m := metrics.New()
	c := NewClient(ClientParams{Name: "test", Timeout: time.Second, UserAgent: "copewatch-test", Metrics: m})

	var v struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}
	require.NoError(t, c.GetJSON(context.Background(), ts.URL+"/ok", &v))
	assert.Equal(t, "starmer", v.Name)
	assert.Equal(t, 7, v.Score)

	err := c.GetJSON(context.Background(), ts.URL+"/limited", &v)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
	assert.Equal(t, "slow down", se.Body)

	err = c.GetJSON(context.Background(), ts.URL+"/bad-json", &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode test response")

	assert.Equal(t, int32(3), hits.Load(), "no cache configured")
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.SourceRequests.WithLabelValues("test", "ok")), 0.001)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.SourceRequests.WithLabelValues("test", "429")), 0.001)
}

func TestClient_Cache(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) > 1 && r.URL.Query().Get("q") == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"n":1}`))
	}))
	defer ts.Close()

	c := NewClient(ClientParams{Name: "cached", CacheTTL: time.Minute, CacheSize: 10})
	var v map[string]int
	for range 3 {
		require.NoError(t, c.GetJSON(context.Background(), ts.URL+"?q=a", &v))
	}
	assert.Equal(t, int32(1), hits.Load())

	require.NoError(t, c.GetJSON(context.Background(), ts.URL+"?q=b", &v))
	assert.Equal(t, int32(2), hits.Load(), "different url is a separate entry")

	require.Error(t, c.GetJSON(context.Background(), ts.URL+"?q=fail", &v))
	require.Error(t, c.GetJSON(context.Background(), ts.URL+"?q=fail", &v))
	assert.Equal(t, int32(4), hits.Load(), "failures are not cached")
}

func TestClient_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer ts.Close()

	c := NewClient(ClientParams{Name: "slow", Timeout: 50 * time.Millisecond})
	st := time.Now()
	var v any
	err := c.GetJSON(context.Background(), ts.URL+"?key=secret", &v)
	require.Error(t, err)
	assert.Less(t, time.Since(st), 900*time.Millisecond)
	assert.NotContains(t, err.Error(), "secret", "api keys are redacted from errors")
}

func TestClient_RateLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := NewClient(ClientParams{Name: "limited", RateLimit: 20})
	var v any
	st := time.Now()
	for range 3 {
		require.NoError(t, c.GetJSON(context.Background(), ts.URL, &v))
	}
	assert.GreaterOrEqual(t, time.Since(st), 80*time.Millisecond, "burst of 1 at 20 rps")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, c.GetJSON(ctx, ts.URL, &v))
}
