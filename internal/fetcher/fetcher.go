// Package fetcher handles downloading and parsing donor RSS/Atom feeds.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/mmcdole/gofeed"

	"donorscan/internal/model"
)

// maxEntries bounds how many items are taken from a single feed. Older
// entries are never considered, which keeps per-source cost flat no
// matter how long a feed's backlog is.
const maxEntries = 30

// maxBodySize caps the response body read from a feed endpoint.
const maxBodySize = 5 * 1024 * 1024

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads and parses RSS feeds.
type Fetcher struct {
	client     HTTPClient
	attempts   uint
	retryDelay time.Duration
}

// New creates a Fetcher with the given HTTP client.
func New(client HTTPClient) *Fetcher {
	return &Fetcher{client: client, attempts: 3, retryDelay: time.Second}
}

// SetAttempts overrides the per-feed retry budget (useful for testing).
func (f *Fetcher) SetAttempts(n uint) {
	f.attempts = n
}

// SetRetryDelay overrides the base backoff delay between attempts.
func (f *Fetcher) SetRetryDelay(d time.Duration) {
	f.retryDelay = d
}

// Fetch downloads source's feed and returns up to maxEntries normalized
// entries, newest first as the feed orders them. Transient HTTP failures
// are retried with backoff. A feed that fails to parse cleanly but still
// yields readable items returns those items rather than nothing.
func (f *Fetcher) Fetch(ctx context.Context, source model.Source) ([]model.Entry, error) {
	var body string
	err := retry.Do(
		func() error {
			b, err := f.download(ctx, source.URL)
			if err != nil {
				return err
			}
			body = b
			return nil
		},
		retry.Attempts(f.attempts),
		retry.Delay(f.retryDelay),
		retry.MaxDelay(10*time.Second),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source.Name, err)
	}

	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		// Salvage whatever parsed despite the error.
		if feed == nil || len(feed.Items) == 0 {
			return nil, fmt.Errorf("parse %s: %w", source.Name, err)
		}
	}

	items := feed.Items
	if len(items) > maxEntries {
		items = items[:maxEntries]
	}

	entries := make([]model.Entry, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		entries = append(entries, model.Entry{
			Title:     item.Title,
			Summary:   itemSummary(item),
			Link:      item.Link,
			Published: itemPublished(item),
		})
	}
	return entries, nil
}

func (f *Fetcher) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "DonorScanBot/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// itemSummary prefers the RSS description over full content.
func itemSummary(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	return item.Content
}

// itemPublished returns the best-effort publication timestamp, falling
// back to the updated field and finally the raw string from the feed.
func itemPublished(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	if item.Published != "" {
		return item.Published
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC().Format(time.RFC3339)
	}
	return item.Updated
}
