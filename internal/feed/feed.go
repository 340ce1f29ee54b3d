// Package feed lists entries from Google News RSS feeds. The links it
// returns are article redirect URLs, the input the resolver consumes; the
// lister itself never resolves them.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jonesrussell/newsurl/internal/logger"
	"github.com/jonesrussell/newsurl/internal/resolver"
)

const (
	// feedBase is the root of the Google News RSS surface.
	feedBase = "https://news.google.com/rss"

	// maxFeedBytes caps how much of a feed body is read.
	maxFeedBytes = 4 * 1024 * 1024 // 4 MB

	acceptRSS = "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.1"
)

// Query selects which feed to list. Search, Topic and Geo pick the feed, in
// that order of precedence; with none set the top stories feed is used.
type Query struct {
	// Search is a free-text query (the /rss/search feed).
	Search string
	// Topic is a section name such as TECHNOLOGY or SPORTS.
	Topic string
	// Geo is a place name for local headlines.
	Geo string

	// Language, Country and Edition localize the feed (hl, gl, ceid).
	Language string
	Country  string
	Edition  string

	// Limit caps how many items are returned.
	Limit int
}

// Item is one feed entry whose link is a resolvable redirect URL.
type Item struct {
	Title       string
	Source      string
	RedirectURL string
	PublishedAt time.Time
}

// Lister fetches and filters Google News RSS feeds.
type Lister struct {
	client    *http.Client
	userAgent string
	log       logger.Logger
}

// NewLister creates a Lister. A nil client gets a default one with a
// timeout; a nil logger silences logging.
func NewLister(client *http.Client, userAgent string, log logger.Logger) *Lister {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Lister{client: client, userAgent: userAgent, log: log}
}

// List fetches the feed selected by q and returns its redirect-URL entries,
// newest first as the feed delivers them. Entries whose link is not an
// article redirect URL are skipped; there is nothing to resolve behind them.
func (l *Lister) List(ctx context.Context, q Query) ([]Item, error) {
	return l.listFrom(ctx, q.feedURL(), q)
}

// listFrom fetches and filters one concrete feed URL.
func (l *Lister) listFrom(ctx context.Context, feedURL string, q Query) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create feed request: %w", err)
	}
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}
	req.Header.Set("Accept", acceptRSS)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch feed: unexpected status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	parsed, err := gofeed.NewParser().Parse(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = len(parsed.Items)
	}

	items := make([]Item, 0, limit)
	skipped := 0
	for _, entry := range parsed.Items {
		if len(items) >= limit {
			break
		}

		link := strings.TrimSpace(entry.Link)
		if resolver.ValidateRedirectURL(link) != nil {
			skipped++
			continue
		}

		title, source := splitTitleSource(entry.Title)
		item := Item{
			Title:       title,
			Source:      source,
			RedirectURL: link,
		}
		if entry.PublishedParsed != nil {
			item.PublishedAt = *entry.PublishedParsed
		}
		items = append(items, item)
	}

	l.log.Debug("listed feed",
		logger.String("feed", feedURL),
		logger.Int("items", len(items)),
		logger.Int("skipped", skipped))

	return items, nil
}

// feedURL builds the RSS URL for the query.
func (q Query) feedURL() string {
	var path string
	switch {
	case q.Search != "":
		path = "/search"
	case q.Topic != "":
		path = "/headlines/section/topic/" + url.PathEscape(strings.ToUpper(q.Topic))
	case q.Geo != "":
		path = "/headlines/section/geo/" + url.PathEscape(q.Geo)
	}

	params := url.Values{}
	if q.Search != "" {
		params.Set("q", q.Search)
	}
	if q.Language != "" {
		params.Set("hl", q.Language)
	}
	if q.Country != "" {
		params.Set("gl", q.Country)
	}
	if q.Edition != "" {
		params.Set("ceid", q.Edition)
	}

	u := feedBase + path
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// splitTitleSource splits a Google News item title into headline and
// publisher. The feed formats titles as "Headline - Publisher"; titles
// without that suffix come back with an empty source.
func splitTitleSource(title string) (headline, source string) {
	title = strings.TrimSpace(title)
	idx := strings.LastIndex(title, " - ")
	if idx < 0 {
		return title, ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}
