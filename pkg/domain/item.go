package domain

import (
	"strings"
	"time"
)

// Category is a cope classification label
type Category string

// enum of cope categories, CategoryAll is only valid as a filter
const (
	CategoryWhatabout  Category = "whatabout"
	CategoryDeflection Category = "deflection"
	CategoryDenial     Category = "denial"
	CategoryCopium     Category = "copium"
	CategoryAll        Category = "all"
)

// Categories lists all assignable categories in default priority order
var Categories = []Category{CategoryWhatabout, CategoryDeflection, CategoryDenial, CategoryCopium}

// Valid reports whether c is one of the assignable categories
func (c Category) Valid() bool {
	switch c {
	case CategoryWhatabout, CategoryDeflection, CategoryDenial, CategoryCopium:
		return true
	}
	return false
}

// Platform identifies where a piece of content came from
type Platform string

// enum of source platforms
const (
	PlatformReddit   Platform = "reddit"
	PlatformYouTube  Platform = "youtube"
	PlatformGuardian Platform = "guardian"
	PlatformX        Platform = "x"
	PlatformFacebook Platform = "facebook"
	PlatformOther    Platform = "other"
)

// SortKey defines aggregated list ordering
type SortKey string

// enum of sort keys, anything unknown sorts as SortRecent
const (
	SortRecent    SortKey = "recent"
	SortVotes     SortKey = "votes"
	SortCopeLevel SortKey = "cope_level"
)

// ParseSortKey converts a query value to SortKey, defaulting to SortRecent
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortVotes:
		return SortVotes
	case SortCopeLevel:
		return SortCopeLevel
	default:
		return SortRecent
	}
}

// ParseCategoryFilter converts a query value to a category filter, empty means all
func ParseCategoryFilter(s string) Category {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryAll
	}
	return Category(s)
}

// ContentItem is a single normalized and classified piece of commentary
type ContentItem struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	SourceURL      string    `json:"source_url,omitempty"`
	SourcePlatform Platform  `json:"source_platform"`
	SourceUsername string    `json:"source_username,omitempty"`
	Section        string    `json:"subreddit,omitempty"` // subreddit, newspaper section or feed name
	Category       Category  `json:"category"`
	CopeLevel      int       `json:"cope_level"`
	Votes          int       `json:"votes"`
	CreatedAt      time.Time `json:"created_at"`
}

// NormalizedID returns the id used for deduplication
func (c ContentItem) NormalizedID() string {
	return strings.ToLower(strings.TrimSpace(c.ID))
}

// Classification is the classifier output for a piece of text
type Classification struct {
	Category  Category
	CopeLevel int
}

// FetchRequest carries caller hints passed through to source adapters
type FetchRequest struct {
	Category Category
	SortBy   SortKey
}

// AggregateRequest defines filtering and ordering of an aggregated list
type AggregateRequest struct {
	Category Category
	SortBy   SortKey
}

// FetchRequest returns adapter hints for this aggregation
func (r AggregateRequest) FetchRequest() FetchRequest {
	return FetchRequest{Category: r.Category, SortBy: r.SortBy}
}
