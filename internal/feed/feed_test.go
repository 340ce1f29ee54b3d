package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// sampleRSS mixes redirect-URL items with a direct publisher link that the
// lister must skip.
const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Top stories - Google News</title>
  <item>
    <title>Quake shakes coast - Example Times</title>
    <link>https://news.google.com/rss/articles/CBMiquake?oc=5</link>
    <pubDate>Mon, 24 Aug 2026 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Direct link item</title>
    <link>https://example.com/direct</link>
    <pubDate>Mon, 24 Aug 2026 11:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Markets rally - Example Wire</title>
    <link>https://news.google.com/rss/articles/CBMimarkets?oc=5</link>
    <pubDate>Mon, 24 Aug 2026 12:00:00 GMT</pubDate>
  </item>
</channel>
</rss>`

func TestList_FiltersToRedirectURLs(t *testing.T) {
	t.Parallel()

	srv := newFeedServer(t, http.StatusOK, sampleRSS)
	l := NewLister(srv.Client(), "test-agent", nil)

	items, err := l.listFrom(context.Background(), srv.URL, Query{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("item count: got %d, want 2", len(items))
	}

	first := items[0]
	if first.Title != "Quake shakes coast" {
		t.Errorf("title: got %q, want %q", first.Title, "Quake shakes coast")
	}
	if first.Source != "Example Times" {
		t.Errorf("source: got %q, want %q", first.Source, "Example Times")
	}
	if first.RedirectURL != "https://news.google.com/rss/articles/CBMiquake?oc=5" {
		t.Errorf("redirect url: got %q", first.RedirectURL)
	}
	if first.PublishedAt.IsZero() {
		t.Error("published at: got zero time")
	}
}

func TestList_HonorsLimit(t *testing.T) {
	t.Parallel()

	srv := newFeedServer(t, http.StatusOK, sampleRSS)
	l := NewLister(srv.Client(), "", nil)

	items, err := l.listFrom(context.Background(), srv.URL, Query{Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("item count: got %d, want 1", len(items))
	}
}

func TestList_ServerError(t *testing.T) {
	t.Parallel()

	srv := newFeedServer(t, http.StatusTooManyRequests, "slow down")
	l := NewLister(srv.Client(), "", nil)

	_, err := l.listFrom(context.Background(), srv.URL, Query{Limit: 5})
	if err == nil {
		t.Fatal("expected error for 429 response, got nil")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the status code, got: %v", err)
	}
}

func TestList_MalformedFeed(t *testing.T) {
	t.Parallel()

	srv := newFeedServer(t, http.StatusOK, "<not-a-feed/>")
	l := NewLister(srv.Client(), "", nil)

	_, err := l.listFrom(context.Background(), srv.URL, Query{Limit: 5})
	if err == nil {
		t.Fatal("expected error for malformed feed, got nil")
	}
}

func TestFeedURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{
			"top stories",
			Query{},
			"https://news.google.com/rss",
		},
		{
			"localized top stories",
			Query{Language: "en-US", Country: "US", Edition: "US:en"},
			"https://news.google.com/rss?ceid=US%3Aen&gl=US&hl=en-US",
		},
		{
			"topic uppercased",
			Query{Topic: "technology"},
			"https://news.google.com/rss/headlines/section/topic/TECHNOLOGY",
		},
		{
			"geo",
			Query{Geo: "Toronto"},
			"https://news.google.com/rss/headlines/section/geo/Toronto",
		},
		{
			"search",
			Query{Search: "solar power", Language: "en-US"},
			"https://news.google.com/rss/search?hl=en-US&q=solar+power",
		},
		{
			"search wins over topic",
			Query{Search: "ai", Topic: "technology"},
			"https://news.google.com/rss/search?q=ai",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.query.feedURL(); got != tt.want {
				t.Errorf("feedURL: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitTitleSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title        string
		wantHeadline string
		wantSource   string
	}{
		{"Quake shakes coast - Example Times", "Quake shakes coast", "Example Times"},
		{"Plain headline", "Plain headline", ""},
		{"Multi - part - Publisher", "Multi - part", "Publisher"},
		{"  padded - Paper  ", "padded", "Paper"},
	}

	for _, tt := range tests {
		headline, source := splitTitleSource(tt.title)
		if headline != tt.wantHeadline || source != tt.wantSource {
			t.Errorf("splitTitleSource(%q): got (%q, %q), want (%q, %q)",
				tt.title, headline, source, tt.wantHeadline, tt.wantSource)
		}
	}
}

// newFeedServer serves one canned body for any request.
func newFeedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}
