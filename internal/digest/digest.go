// Package digest formats and delivers the daily opportunity summary.
package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"donorscan/internal/model"
	"donorscan/internal/pipeline"
)

// Caps on how much of the result set a single digest carries.
const (
	maxUrgent = 5
	maxTop    = 10
)

// Sender delivers one digest message over a channel (email, Telegram).
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

// Subject builds the digest subject line for a scan result.
func Subject(stats pipeline.Stats, now time.Time) string {
	return fmt.Sprintf("%d New Donor Opportunities — %s", stats.Found, now.Format("Jan 2, 2006"))
}

// Format renders the plain-text digest body. Results are expected in
// pipeline order: domain-specific first, then relevance descending.
func Format(opps []model.Opportunity, stats pipeline.Stats, profile model.Profile, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Daily Donor Opportunities — %s\n", now.Format("January 2, 2006"))
	fmt.Fprintf(&b, "Focus: %s | %s\n\n", titleCase(profile.Country), strings.Join(profile.Sectors, ", "))

	fmt.Fprintf(&b, "Summary\n")
	fmt.Fprintf(&b, "  Total opportunities: %d\n", stats.Found)
	fmt.Fprintf(&b, "  New since last scan: %d\n", stats.NewCount)
	fmt.Fprintf(&b, "  Domain-specific:     %d\n", stats.DomainCount)
	if stats.SourcesFailed > 0 {
		fmt.Fprintf(&b, "  Unreachable sources: %d of %d\n", stats.SourcesFailed, stats.SourcesScanned)
	}

	var urgent []model.Opportunity
	for _, o := range opps {
		if o.Deadline != nil {
			urgent = append(urgent, o)
		}
	}
	if len(urgent) > 0 {
		b.WriteString("\nUpcoming deadlines\n")
		for i, o := range urgent {
			if i == maxUrgent {
				break
			}
			fmt.Fprintf(&b, "  - %s\n    deadline %s | %s\n    %s\n", o.Title, *o.Deadline, o.Source, o.URL)
		}
	}

	b.WriteString("\nTop opportunities\n")
	for i, o := range opps {
		if i == maxTop {
			break
		}
		marker := " "
		if o.DomainMatch {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %d. %s\n", marker, i+1, o.Title)
		fmt.Fprintf(&b, "     %s | relevance %.1f/10 | %s\n", o.Source, o.Relevance, strings.Join(o.Sectors, ", "))
		if o.Amount != nil {
			fmt.Fprintf(&b, "     amount: %s\n", *o.Amount)
		}
		fmt.Fprintf(&b, "     %s\n", o.URL)
	}

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}
