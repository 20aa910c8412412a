package tweet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/copewatch/pkg/domain"
	"github.com/umputun/copewatch/pkg/metrics"
)

//go:generate moq -out mocks/poster.go -pkg mocks -skip-ensure -fmt goimports . Poster
//go:generate moq -out mocks/post_store.go -pkg mocks -skip-ensure -fmt goimports . PostStore

// ErrRateLimited is returned when posting limits don't allow another post
var ErrRateLimited = errors.New("rate limited")

// Poster sends text to the social platform
type Poster interface {
	Post(ctx context.Context, text string) (*Tweet, error)
}

// PostStore keeps the post log
type PostStore interface {
	SavePost(ctx context.Context, p domain.Post) error
	CountPostsSince(ctx context.Context, since time.Time) (int, error)
	LastPostedAt(ctx context.Context) (time.Time, error)
}

// Limits define posting frequency limits, zero values disable them
type Limits struct {
	MaxPerDay   int
	MinInterval time.Duration
}

// PublisherParams defines publisher dependencies
type PublisherParams struct {
	Poster  Poster
	Store   PostStore // optional, limits need it
	Limits  Limits
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// Publisher posts once per call, enforces limits and records every attempt
type Publisher struct {
	PublisherParams
	mu sync.Mutex
}

// NewPublisher makes a publisher
func NewPublisher(p PublisherParams) *Publisher {
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Publisher{PublisherParams: p}
}

// Publish posts text without retry. Returns ErrRateLimited if limits are hit,
// in that case nothing is sent.
func (p *Publisher) Publish(ctx context.Context, text string, trigger domain.PostTrigger) (*Tweet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkLimits(ctx); err != nil {
		p.Metrics.IncTweet(string(trigger), "rate_limited")
		return nil, err
	}

	tw, err := p.Poster.Post(ctx, text)
	if err == nil && tw == nil {
		tw = &Tweet{Text: text}
	}
	post := domain.Post{ID: uuid.NewString(), Text: text, Trigger: trigger, CreatedAt: p.Now().UTC()}
	if err != nil {
		post.Status, post.Error = domain.PostFailed, err.Error()
		log.Printf("[WARN] %s post failed: %v", trigger, err)
	} else {
		post.Status, post.TweetID = domain.PostPosted, tw.ID
		log.Printf("[INFO] %s post %s published, %d chars", trigger, tw.ID, Length(text))
	}
	p.Metrics.IncTweet(string(trigger), string(post.Status))

	if p.Store != nil {
		if serr := p.Store.SavePost(ctx, post); serr != nil {
			log.Printf("[WARN] can't save post %s: %v", post.ID, serr)
		}
	}

	if err != nil {
		return nil, err
	}
	return tw, nil
}

func (p *Publisher) checkLimits(ctx context.Context) error {
	if p.Store == nil || (p.Limits.MaxPerDay <= 0 && p.Limits.MinInterval <= 0) {
		return nil
	}
	now := p.Now()

	if p.Limits.MaxPerDay > 0 {
		count, err := p.Store.CountPostsSince(ctx, now.Add(-24*time.Hour))
		if err != nil {
			return fmt.Errorf("count recent posts: %w", err)
		}
		if count >= p.Limits.MaxPerDay {
			return fmt.Errorf("daily limit reached, %d/%d: %w", count, p.Limits.MaxPerDay, ErrRateLimited)
		}
	}

	if p.Limits.MinInterval > 0 {
		last, err := p.Store.LastPostedAt(ctx)
		if err != nil {
			return fmt.Errorf("last post time: %w", err)
		}
		if since := now.Sub(last); !last.IsZero() && since < p.Limits.MinInterval {
			return fmt.Errorf("last post %v ago, min interval %v: %w", since.Truncate(time.Second), p.Limits.MinInterval, ErrRateLimited)
		}
	}
	return nil
}
