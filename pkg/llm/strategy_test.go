package llm

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/copewatch/pkg/config"
	"github.com/umputun/copewatch/pkg/tweet"
)

var testPools = tweet.Pools{
	Jokes:    []string{"Keir Starmer walks into a bar. Then U-turns."},
	Topics:   []string{"winter fuel"},
	Promises: []string{"no tax rises for working people"},
}

// fixedStrategy always returns the same template
type fixedStrategy string

func (f fixedStrategy) Name() string { return "fixed" }

func (f fixedStrategy) Template(context.Context, tweet.Rand, time.Time) string { return string(f) }

// chatServer answers every completion request with the next scripted reply, repeating the last one
func chatServer(t *testing.T, replies ...string) (*httptest.Server, *atomic.Int32, func() []openai.ChatCompletionRequest) {
	t.Helper()
	var calls atomic.Int32
	var mu sync.Mutex
	var reqs []openai.ChatCompletionRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		mu.Lock()
		reqs = append(reqs, req)
		mu.Unlock()

		n := int(calls.Add(1))
		reply := replies[min(n, len(replies))-1]
		resp := openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply}},
		}}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(ts.Close)
	return ts, &calls, func() []openai.ChatCompletionRequest {
		mu.Lock()
		defer mu.Unlock()
		return reqs
	}
}

func newTestStrategy(endpoint string, jsonMode bool) *Strategy {
	return NewStrategy(Params{
		Config: config.LLMConfig{Endpoint: endpoint, APIKey: "test-key", Model: "gpt-4o-mini",
			Temperature: 0.9, MaxTokens: 100, Timeout: 5 * time.Second, UseJSONMode: jsonMode},
		Pools:    testPools,
		Fallback: fixedStrategy("fallback joke"),
		SiteURL:  "https://twotierkeir.com",
	})
}

func TestStrategy_Template(t *testing.T) {
	ts, calls, reqs := chatServer(t, `"Starmer has broken {broken} promises before lunch. Details at {url}"`)
	s := newTestStrategy(ts.URL+"/v1", false)
	assert.Equal(t, StrategyName, s.Name())

	now := time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	text := s.Template(context.Background(), rand.New(rand.NewPCG(1, 2)), now)
	assert.Equal(t, "Starmer has broken {broken} promises before lunch. Details at {url}", text)
	assert.Equal(t, int32(1), calls.Load())

	require.Len(t, reqs(), 1)
	req := reqs()[0]
	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Equal(t, 100, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, defaultSystemPrompt, req.Messages[0].Content)
	assert.Contains(t, req.Messages[1].Content, "It is morning in the UK.")
	assert.Contains(t, req.Messages[1].Content, "Today's topic: winter fuel.")
	assert.Contains(t, req.Messages[1].Content, "- Keir Starmer walks into a bar. Then U-turns.")
	assert.Nil(t, req.ResponseFormat)
}

func TestStrategy_Template_RetryThenSuccess(t *testing.T) {
	ts, calls, _ := chatServer(t, "Sorry, {name} is busy", "", "Another U-turn, another Tuesday.")
	s := newTestStrategy(ts.URL+"/v1", false)

	text := s.Template(context.Background(), rand.New(rand.NewPCG(1, 2)), time.Now())
	assert.Equal(t, "Another U-turn, another Tuesday.", text)
	assert.Equal(t, int32(3), calls.Load())
}

func TestStrategy_Template_Fallback(t *testing.T) {
	t.Run("unusable answers", func(t *testing.T) {
		ts, calls, _ := chatServer(t, strings.Repeat("cope ", 60))
		s := newTestStrategy(ts.URL+"/v1", false)

		text := s.Template(context.Background(), rand.New(rand.NewPCG(1, 2)), time.Now())
		assert.Equal(t, "fallback joke", text)
		assert.Equal(t, int32(3), calls.Load(), "all attempts used")
	})

	t.Run("server error", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
		}))
		defer ts.Close()
		s := newTestStrategy(ts.URL+"/v1", false)

		_, err := s.Joke(context.Background(), rand.New(rand.NewPCG(1, 2)), time.Now())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm request failed")
		assert.Equal(t, int32(1), calls.Load(), "request errors are not retried")

		assert.Equal(t, "fallback joke", s.Template(context.Background(), rand.New(rand.NewPCG(1, 2)), time.Now()))
	})

	t.Run("no fallback", func(t *testing.T) {
		s := NewStrategy(Params{Config: config.LLMConfig{Endpoint: "http://127.0.0.1:1/v1", Timeout: time.Second}})
		assert.Empty(t, s.Template(context.Background(), rand.New(rand.NewPCG(1, 2)), time.Now()))
	})
}

func TestStrategy_JSONMode(t *testing.T) {
	ts, _, reqs := chatServer(t, `{"tweet": "Labour's growth plan: {pending} reviews and a lanyard."}`)
	s := newTestStrategy(ts.URL+"/v1", true)

	text, err := s.Joke(context.Background(), rand.New(rand.NewPCG(1, 2)), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Labour's growth plan: {pending} reviews and a lanyard.", text)

	req := reqs()[0]
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
	assert.True(t, strings.HasSuffix(req.Messages[0].Content, jsonModeSuffix))
}

func TestStrategy_parseResponse(t *testing.T) {
	s := newTestStrategy("http://localhost/v1", false)
	js := newTestStrategy("http://localhost/v1", true)

	tests := []struct {
		name    string
		s       *Strategy
		content string
		want    string
		wantErr error
	}{
		{name: "plain", s: s, content: "  Just a joke.  ", want: "Just a joke."},
		{name: "quoted", s: s, content: "“Quoted joke”", want: "Quoted joke"},
		{name: "empty", s: s, content: "  \"\" ", wantErr: errEmpty},
		{name: "unknown placeholder", s: s, content: "Ask {minister} about it", wantErr: errPlaceholder},
		{name: "stray brace", s: s, content: "Promises kept: {", wantErr: errPlaceholder},
		{name: "known placeholders", s: s, content: "{kept} kept, {broken} broken at {url}", want: "{kept} kept, {broken} broken at {url}"},
		{name: "fits after url fill", s: s, content: strings.Repeat("a", 240) + " {url}", want: strings.Repeat("a", 240) + " {url}"},
		{name: "too long after url fill", s: s, content: strings.Repeat("a", 250) + " {url}", wantErr: errTooLong},
		{name: "json", s: js, content: `{"tweet":"from json"}`, want: "from json"},
		{name: "json empty", s: js, content: `{"other":"x"}`, wantErr: errEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.s.parseResponse(tt.content)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := js.parseResponse("not json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse json response")
}

func TestStrategy_WithGenerator(t *testing.T) {
	ts, _, _ := chatServer(t, "{kept} promises kept. Receipts: {url}")
	s := newTestStrategy(ts.URL+"/v1", false)
	g := tweet.NewGenerator(tweet.GeneratorParams{SiteURL: "https://twotierkeir.com", Pools: testPools,
		Rand: rand.New(rand.NewPCG(3, 4))})

	text := g.Generate(context.Background(), s)
	assert.NotContains(t, text, "{")
	assert.Contains(t, text, "promises kept. Receipts: https://twotierkeir.com")
	assert.LessOrEqual(t, tweet.Length(text), tweet.MaxLength)
}
