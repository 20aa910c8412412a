// Package llm writes jokes with an OpenAI-compatible chat model. It plugs into the tweet
// generator as a strategy and falls back to a template strategy on any failure.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/copewatch/pkg/config"
	"github.com/umputun/copewatch/pkg/tweet"
)

// StrategyName is the name of the llm strategy
const StrategyName = "llm"

var (
	errEmpty       = errors.New("empty joke")
	errPlaceholder = errors.New("unknown placeholder")
	errTooLong     = errors.New("joke too long")
)

// Params defines llm strategy settings
type Params struct {
	Config   config.LLMConfig
	Pools    tweet.Pools    // examples and topics for the prompt
	Fallback tweet.Strategy // used when the model fails
	SiteURL  string         // for length estimation of {url}
}

// Strategy asks the model for a joke
type Strategy struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
	pools     tweet.Pools
	fallback  tweet.Strategy
	fillWidth map[string]int
}

// NewStrategy makes an llm strategy
func NewStrategy(p Params) *Strategy {
	clientConfig := openai.DefaultConfig(p.Config.APIKey)
	if p.Config.Endpoint != "" {
		clientConfig.BaseURL = p.Config.Endpoint
	}

	systemMsg := p.Config.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}
	if p.Config.Attempts <= 0 {
		p.Config.Attempts = 3
	}

	return &Strategy{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    p.Config,
		systemMsg: systemMsg,
		pools:     p.Pools,
		fallback:  p.Fallback,
		fillWidth: fillWidths(p.SiteURL, p.Pools),
	}
}

const defaultSystemPrompt = `You write posts for a satirical UK politics account that tracks the promises,
U-turns and excuses of Keir Starmer's government. The voice is dry, British and deadpan.

Rules:
- write exactly one post, at most 230 characters
- no hashtags, no emojis beyond one, no quotes around the post
- punch at politicians and policies, never at ordinary people
- you may use these placeholders, they are filled in later: {url} (link to the site),
  {broken} (count of broken promises), {pending} (pending promises), {kept} (kept promises),
  {promise} (a promise), {topic} (a policy topic). Use no other braces.
- reply with the post text only`

const jsonModeSuffix = "\n\nRespond with a JSON object: {\"tweet\": \"<post text>\"}"

// Name of the strategy
func (s *Strategy) Name() string { return StrategyName }

// Template returns a joke from the model, or the fallback's template if the model fails
func (s *Strategy) Template(ctx context.Context, rnd tweet.Rand, now time.Time) string {
	text, err := s.Joke(ctx, rnd, now)
	if err != nil {
		if s.fallback == nil {
			log.Printf("[WARN] llm joke failed, no fallback: %v", err)
			return ""
		}
		log.Printf("[WARN] llm joke failed, using %s: %v", s.fallback.Name(), err)
		return s.fallback.Template(ctx, rnd, now)
	}
	return text
}

// Joke asks the model for a joke. Unusable answers are retried up to the configured attempts,
// request errors are returned right away.
func (s *Strategy) Joke(ctx context.Context, rnd tweet.Rand, now time.Time) (string, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	systemMsg := s.systemMsg
	if s.config.UseJSONMode {
		systemMsg += jsonModeSuffix
	}
	prompt := s.buildPrompt(rnd, now)

	var lastErr error
	for attempt := 0; attempt < s.config.Attempts; attempt++ {
		chatReq := openai.ChatCompletionRequest{
			Model:       s.config.Model,
			Temperature: float32(s.config.Temperature),
			MaxTokens:   s.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemMsg},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		}
		if s.config.UseJSONMode {
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
		}

		resp, err := s.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return "", fmt.Errorf("llm request failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no response from llm")
		}

		text, err := s.parseResponse(resp.Choices[0].Message.Content)
		if err == nil {
			return text, nil
		}
		log.Printf("[DEBUG] llm attempt %d rejected: %v", attempt+1, err)
		lastErr = err
	}
	return "", fmt.Errorf("failed after %d attempts: %w", s.config.Attempts, lastErr)
}

// buildPrompt draws a topic and a few examples from the pools
func (s *Strategy) buildPrompt(rnd tweet.Rand, now time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "It is %s in the UK.", tweet.PartOfDay(now))
	if len(s.pools.Topics) > 0 {
		fmt.Fprintf(&sb, " Today's topic: %s.", s.pools.Topics[rnd.IntN(len(s.pools.Topics))])
	}

	examples := s.pools.All()
	if n := min(3, len(examples)); n > 0 {
		sb.WriteString("\n\nPosts in the account's voice, don't repeat them:\n")
		seen := map[int]bool{}
		for range n {
			i := rnd.IntN(len(examples))
			if seen[i] {
				continue
			}
			seen[i] = true
			sb.WriteString("- " + examples[i] + "\n")
		}
	}
	sb.WriteString("\nWrite one new post.")
	return sb.String()
}

// parseResponse extracts and validates the joke
func (s *Strategy) parseResponse(content string) (string, error) {
	text := content
	if s.config.UseJSONMode {
		var resp struct {
			Tweet string `json:"tweet"`
		}
		if err := json.Unmarshal([]byte(content), &resp); err != nil {
			return "", fmt.Errorf("failed to parse json response: %w", err)
		}
		text = resp.Tweet
	}

	text = strings.TrimSpace(text)
	text = strings.Trim(text, "\"“”")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errEmpty
	}

	rest := text
	for _, p := range tweet.Placeholders(text) {
		if !tweet.KnownPlaceholder(p) {
			return "", fmt.Errorf("%w %s", errPlaceholder, p)
		}
		rest = strings.ReplaceAll(rest, p, "")
	}
	if strings.ContainsAny(rest, "{}") {
		return "", fmt.Errorf("%w, stray brace in %q", errPlaceholder, text)
	}

	if l := s.filledLength(text); l > tweet.MaxLength {
		return "", fmt.Errorf("%w, %d chars after fill", errTooLong, l)
	}
	return text, nil
}

// filledLength is the worst-case length of text after placeholder fill
func (s *Strategy) filledLength(text string) int {
	res := tweet.Length(text)
	for _, p := range tweet.Placeholders(text) {
		res += s.fillWidth[p] - tweet.Length(p)
	}
	return res
}

// fillWidths returns the longest substitution of each placeholder
func fillWidths(siteURL string, pools tweet.Pools) map[string]int {
	longest := func(vals []string, def string) int {
		res := tweet.Length(def)
		for _, v := range vals {
			res = max(res, tweet.Length(v))
		}
		return res
	}
	site := tweet.Length(strings.TrimRight(siteURL, "/"))
	return map[string]int{
		"{url}":     site + longest(tweet.DefaultPages, ""),
		"{topic}":   longest(pools.Topics, "the economy"),
		"{promise}": longest(pools.Promises, "change"),
		"{broken}":  2,
		"{pending}": 2,
		"{kept}":    1,
	}
}
