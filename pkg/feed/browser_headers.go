package feed

import (
	"math/rand/v2"
	"net/http"
)

var feedLanguages = []string{"en-GB,en;q=0.9", "en-US,en;q=0.9", "en-GB,en-US;q=0.9,en;q=0.8"}

// addFeedHeaders sets accept headers for news feeds, some publishers reject bare clients
func addFeedHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept-Language", feedLanguages[rand.IntN(len(feedLanguages))]) //nolint:gosec // header variation only
}
