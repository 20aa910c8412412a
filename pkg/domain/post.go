package domain

import "time"

// PostStatus is the outcome of a posting attempt
type PostStatus string

// enum of post statuses
const (
	PostPosted PostStatus = "posted"
	PostFailed PostStatus = "failed"
)

// PostTrigger tells what initiated a posting attempt
type PostTrigger string

// enum of post triggers
const (
	TriggerManual   PostTrigger = "manual"
	TriggerCron     PostTrigger = "cron"
	TriggerSchedule PostTrigger = "schedule"
)

// Post is a recorded attempt to publish text to the social platform
type Post struct {
	ID        string      `json:"id" db:"id"`
	Text      string      `json:"text" db:"text"`
	Status    PostStatus  `json:"status" db:"status"`
	TweetID   string      `json:"tweet_id,omitempty" db:"tweet_id"`
	Error     string      `json:"error,omitempty" db:"error"`
	Trigger   PostTrigger `json:"trigger" db:"triggered_by"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}
