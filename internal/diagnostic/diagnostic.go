// Package diagnostic probes feed endpoints and reports their health.
// It shares no logic with the scan pipeline: this is a thin status
// check for figuring out which of the registered feeds still work.
package diagnostic

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"donorscan/internal/fetcher"
	"donorscan/internal/model"
)

// Feed health states.
const (
	StatusWorking     = "working"
	StatusParseError  = "parse_error"
	StatusHTTPError   = "http_error"
	StatusUnreachable = "unreachable"
)

// Result describes the health of one feed endpoint.
type Result struct {
	Name       string
	URL        string
	Status     string
	HTTPStatus int
	FeedTitle  string
	Entries    int
	Err        string
}

// Checker probes feeds one at a time.
type Checker struct {
	client fetcher.HTTPClient
	delay  time.Duration
}

// New creates a Checker with the given HTTP client.
func New(client fetcher.HTTPClient) *Checker {
	return &Checker{client: client, delay: time.Second}
}

// SetDelay overrides the pause between probes.
func (c *Checker) SetDelay(d time.Duration) {
	c.delay = d
}

// CheckAll probes every source and returns one Result per source.
// Probe failures are Results, never errors.
func (c *Checker) CheckAll(ctx context.Context, sources []model.Source) []Result {
	results := make([]Result, 0, len(sources))
	for i, src := range sources {
		if ctx.Err() != nil {
			break
		}
		if i > 0 && c.delay > 0 {
			time.Sleep(c.delay)
		}
		results = append(results, c.Check(ctx, src))
	}
	return results
}

// Check probes a single source.
func (c *Checker) Check(ctx context.Context, src model.Source) Result {
	result := Result{Name: src.Name, URL: src.URL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		result.Status = StatusUnreachable
		result.Err = err.Error()
		return result
	}
	req.Header.Set("User-Agent", "DonorScanBot/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		result.Status = StatusUnreachable
		result.Err = err.Error()
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.HTTPStatus = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		result.Status = StatusHTTPError
		result.Err = fmt.Sprintf("server returned %d", resp.StatusCode)
		return result
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		result.Status = StatusUnreachable
		result.Err = err.Error()
		return result
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		result.Status = StatusParseError
		result.Err = err.Error()
		// Report whatever parsed despite the error.
		if feed != nil {
			result.FeedTitle = feed.Title
			result.Entries = len(feed.Items)
		}
		return result
	}

	result.Status = StatusWorking
	result.FeedTitle = feed.Title
	result.Entries = len(feed.Items)
	return result
}

// Summarize renders a report grouped by status.
func Summarize(results []Result) string {
	var b strings.Builder

	byStatus := map[string][]Result{}
	for _, r := range results {
		byStatus[r.Status] = append(byStatus[r.Status], r)
	}

	fmt.Fprintf(&b, "Checked %d feeds: %d working, %d broken\n",
		len(results), len(byStatus[StatusWorking]), len(results)-len(byStatus[StatusWorking]))

	for _, status := range []string{StatusWorking, StatusParseError, StatusHTTPError, StatusUnreachable} {
		rs := byStatus[status]
		if len(rs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", status)
		for _, r := range rs {
			switch status {
			case StatusWorking:
				fmt.Fprintf(&b, "  %-45s %d entries\n", r.Name, r.Entries)
			case StatusParseError:
				fmt.Fprintf(&b, "  %-45s %s (%d entries salvaged)\n", r.Name, r.Err, r.Entries)
			default:
				fmt.Fprintf(&b, "  %-45s %s\n", r.Name, r.Err)
			}
		}
	}
	return b.String()
}
