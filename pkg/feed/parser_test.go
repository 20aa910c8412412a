package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bbcPolitics = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
	<title>Politics News</title>
	<link>http://example.com/politics</link>
	<description>UK politics</description>
	<item>
		<title>Starmer defends winter fuel cut</title>
		<link>http://example.com/politics/1</link>
		<description>The prime minister said it was the right call</description>
		<content:encoded><![CDATA[<p>Keir Starmer defended the decision</p>]]></content:encoded>
		<pubDate>Mon, 02 Sep 2024 15:04:05 +0000</pubDate>
		<guid>politics-1</guid>
		<author>desk@example.com (Politics Desk)</author>
	</item>
	<item>
		<title>Labour conference opens</title>
		<link>http://example.com/politics/2</link>
		<description>Delegates gather in Liverpool</description>
		<pubDate>Tue, 03 Sep 2024 15:04:05 +0000</pubDate>
	</item>
	<item>
		<title>Untitled briefing</title>
	</item>
</channel>
</rss>`

func TestParser_Parse(t *testing.T) {
	var gotUA, gotAccept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA, gotAccept = r.Header.Get("User-Agent"), r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(bbcPolitics))
	}))
	defer ts.Close()

	p := NewParser(ParserParams{Timeout: 5 * time.Second, UserAgent: "copewatch-test"})
	f, err := p.Parse(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.Equal(t, "copewatch-test", gotUA)
	assert.Contains(t, gotAccept, "application/rss+xml")
	assert.Equal(t, "Politics News", f.Title)
	assert.Equal(t, "UK politics", f.Description)
	require.Len(t, f.Items, 3)

	first := f.Items[0]
	assert.Equal(t, "politics-1", first.GUID)
	assert.Equal(t, "Starmer defends winter fuel cut", first.Title)
	assert.Equal(t, "<p>Keir Starmer defended the decision</p>", first.Content)
	assert.Equal(t, "Politics Desk", first.Author)
	assert.Equal(t, 2024, first.Published.Year())

	assert.Equal(t, "http://example.com/politics/2", f.Items[1].GUID, "guid falls back to link")
	assert.Equal(t, "Politics News-Untitled briefing", f.Items[2].GUID, "guid falls back to titles")
	assert.True(t, f.Items[2].Published.IsZero())
}

func TestParser_Parse_MaxItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bbcPolitics))
	}))
	defer ts.Close()

	p := NewParser(ParserParams{Timeout: time.Second, MaxItems: 2})
	f, err := p.Parse(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Len(t, f.Items, 2)
}

func TestParser_Parse_Atom(t *testing.T) {
	atom := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Atom Politics</title>
	<subtitle>Commons sketches</subtitle>
	<entry>
		<title>PMQs sketch</title>
		<link href="http://example.com/sketch"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
		<updated>2024-09-04T12:00:00Z</updated>
		<summary>Another week of blaming the last lot</summary>
		<author><name>Sketch Writer</name></author>
	</entry>
</feed>`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(atom))
	}))
	defer ts.Close()

	f, err := NewParser(ParserParams{Timeout: time.Second}).Parse(context.Background(), ts.URL)
	require.NoError(t, err)
	require.Len(t, f.Items, 1)
	assert.Equal(t, "urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a", f.Items[0].GUID)
	assert.Equal(t, "Sketch Writer", f.Items[0].Author)
	assert.False(t, f.Items[0].Published.IsZero(), "updated used when published missing")
}

func TestParser_Parse_Errors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()
		_, err := NewParser(ParserParams{Timeout: time.Second}).Parse(context.Background(), ts.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code 503")
	})

	t.Run("invalid xml", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not xml"))
		}))
		defer ts.Close()
		_, err := NewParser(ParserParams{Timeout: time.Second}).Parse(context.Background(), ts.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("timeout", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer ts.Close()
		_, err := NewParser(ParserParams{Timeout: 50 * time.Millisecond}).Parse(context.Background(), ts.URL)
		require.Error(t, err)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := NewParser(ParserParams{Timeout: time.Second}).Parse(context.Background(), "not-a-url")
		require.Error(t, err)
	})
}
