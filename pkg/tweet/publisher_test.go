package tweet_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/copewatch/pkg/domain"
	"github.com/umputun/copewatch/pkg/metrics"
	"github.com/umputun/copewatch/pkg/tweet"
	"github.com/umputun/copewatch/pkg/tweet/mocks"
)

var now = time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

func store(count int, last time.Time) *mocks.PostStoreMock {
	return &mocks.PostStoreMock{
		SavePostFunc:        func(ctx context.Context, p domain.Post) error { return nil },
		CountPostsSinceFunc: func(ctx context.Context, since time.Time) (int, error) { return count, nil },
		LastPostedAtFunc:    func(ctx context.Context) (time.Time, error) { return last, nil },
	}
}

func TestPublisher_Publish(t *testing.T) {
	poster := &mocks.PosterMock{PostFunc: func(ctx context.Context, text string) (*tweet.Tweet, error) {
		return &tweet.Tweet{ID: "123", Text: text}, nil
	}}
	st := store(0, time.Time{})
	m := metrics.New()
	p := tweet.NewPublisher(tweet.PublisherParams{Poster: poster, Store: st, Metrics: m,
		Limits: tweet.Limits{MaxPerDay: 10, MinInterval: 30 * time.Minute}, Now: func() time.Time { return now }})

	tw, err := p.Publish(context.Background(), "a joke", domain.TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, "123", tw.ID)

	require.Len(t, poster.PostCalls(), 1)
	assert.Equal(t, "a joke", poster.PostCalls()[0].Text)
	require.Len(t, st.SavePostCalls(), 1)
	saved := st.SavePostCalls()[0].P
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, domain.PostPosted, saved.Status)
	assert.Equal(t, "123", saved.TweetID)
	assert.Equal(t, domain.TriggerManual, saved.Trigger)
	assert.Equal(t, now, saved.CreatedAt)
	assert.Equal(t, now.Add(-24*time.Hour), st.CountPostsSinceCalls()[0].Since)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.Tweets.WithLabelValues("manual", "posted")), 0.001)
}

func TestPublisher_Publish_Failure(t *testing.T) {
	poster := &mocks.PosterMock{PostFunc: func(ctx context.Context, text string) (*tweet.Tweet, error) {
		return nil, errors.New("post tweet: status 503: over capacity")
	}}
	st := store(0, time.Time{})
	p := tweet.NewPublisher(tweet.PublisherParams{Poster: poster, Store: st})

	_, err := p.Publish(context.Background(), "a joke", domain.TriggerCron)
	require.Error(t, err)
	assert.Len(t, poster.PostCalls(), 1, "no retry")
	require.Len(t, st.SavePostCalls(), 1)
	assert.Equal(t, domain.PostFailed, st.SavePostCalls()[0].P.Status)
	assert.Contains(t, st.SavePostCalls()[0].P.Error, "over capacity")
	assert.Empty(t, st.CountPostsSinceCalls(), "limits disabled")
}

func TestPublisher_Publish_Limits(t *testing.T) {
	poster := &mocks.PosterMock{PostFunc: func(ctx context.Context, text string) (*tweet.Tweet, error) {
		return &tweet.Tweet{ID: "1"}, nil
	}}

	t.Run("daily limit", func(t *testing.T) {
		st := store(5, time.Time{})
		p := tweet.NewPublisher(tweet.PublisherParams{Poster: poster, Store: st, Limits: tweet.Limits{MaxPerDay: 5},
			Now: func() time.Time { return now }})
		_, err := p.Publish(context.Background(), "x", domain.TriggerSchedule)
		require.Error(t, err)
		assert.True(t, errors.Is(err, tweet.ErrRateLimited))
		assert.Contains(t, err.Error(), "5/5")
		assert.Empty(t, st.SavePostCalls())
	})

	t.Run("min interval", func(t *testing.T) {
		st := store(1, now.Add(-10*time.Minute))
		p := tweet.NewPublisher(tweet.PublisherParams{Poster: poster, Store: st, Limits: tweet.Limits{MinInterval: 30 * time.Minute},
			Now: func() time.Time { return now }})
		_, err := p.Publish(context.Background(), "x", domain.TriggerSchedule)
		require.Error(t, err)
		assert.True(t, errors.Is(err, tweet.ErrRateLimited))
	})

	t.Run("interval passed", func(t *testing.T) {
		st := store(1, now.Add(-31*time.Minute))
		p := tweet.NewPublisher(tweet.PublisherParams{Poster: poster, Store: st, Limits: tweet.Limits{MaxPerDay: 5, MinInterval: 30 * time.Minute},
			Now: func() time.Time { return now }})
		_, err := p.Publish(context.Background(), "x", domain.TriggerSchedule)
		require.NoError(t, err)
	})

	assert.Len(t, poster.PostCalls(), 1, "only the allowed attempt posted")
}

func TestPublisher_Publish_NoStore(t *testing.T) {
	poster := &mocks.PosterMock{PostFunc: func(ctx context.Context, text string) (*tweet.Tweet, error) {
		return &tweet.Tweet{ID: "1"}, nil
	}}
	p := tweet.NewPublisher(tweet.PublisherParams{Poster: poster, Limits: tweet.Limits{MaxPerDay: 1}})
	for range 3 {
		_, err := p.Publish(context.Background(), "x", domain.TriggerManual)
		require.NoError(t, err)
	}
	assert.Len(t, poster.PostCalls(), 3)
}
