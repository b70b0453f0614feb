// Package pipeline orchestrates a full scan: fetch every registered
// feed, filter entries against the interest profile, extract structured
// fields, score relevance, and update the seen-URL store.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"donorscan/internal/extract"
	"donorscan/internal/model"
	"donorscan/internal/score"
	"donorscan/internal/storage"
)

// maxDescription bounds the description carried into an Opportunity.
const maxDescription = 600

// Fetcher retrieves the entries of a single feed source.
type Fetcher interface {
	Fetch(ctx context.Context, source model.Source) ([]model.Entry, error)
}

// Stats summarizes one scan run.
type Stats struct {
	SourcesScanned int
	SourcesFailed  int
	Found          int
	NewCount       int
	DomainCount    int
}

// Pipeline runs scans. Sources are fetched sequentially, tier by tier,
// with a small delay between feeds so remote servers are not hammered.
type Pipeline struct {
	sources   []model.Source
	fetcher   Fetcher
	store     storage.SeenStore
	scorer    *score.Scorer
	log       *slog.Logger
	delay     time.Duration
	threshold float64
	now       func() time.Time
}

// New creates a Pipeline over the given sources.
func New(sources []model.Source, fetcher Fetcher, store storage.SeenStore, scorer *score.Scorer, log *slog.Logger) *Pipeline {
	return &Pipeline{
		sources:   sources,
		fetcher:   fetcher,
		store:     store,
		scorer:    scorer,
		log:       log,
		delay:     500 * time.Millisecond,
		threshold: 6,
		now:       time.Now,
	}
}

// SetDelay overrides the politeness delay between source fetches.
func (p *Pipeline) SetDelay(d time.Duration) {
	p.delay = d
}

// SetThreshold overrides the score cutoff of the third inclusion path.
func (p *Pipeline) SetThreshold(v float64) {
	p.threshold = v
}

// SetClock overrides the discovery timestamp source (useful for testing).
func (p *Pipeline) SetClock(now func() time.Time) {
	p.now = now
}

// Scan runs one full pass over all sources and returns the qualifying
// opportunities, domain-specific entries first, then by relevance
// descending. An empty result is a normal outcome. The only fatal error
// is an invalid profile; per-source and per-entry failures are logged
// and skipped.
func (p *Pipeline) Scan(ctx context.Context, profile model.Profile) ([]model.Opportunity, Stats, error) {
	var stats Stats

	if err := validateProfile(profile); err != nil {
		return nil, stats, err
	}
	profile = normalizeProfile(profile)

	if err := p.store.Load(ctx); err != nil {
		// Fail open: re-showing an old item beats crashing.
		p.log.Warn("load seen store, starting from empty set", "error", err)
	}

	sources := make([]model.Source, len(p.sources))
	copy(sources, p.sources)
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Priority.Rank() < sources[j].Priority.Rank()
	})

	p.log.Info("starting scan",
		"sources", len(sources),
		"country", profile.Country,
		"show_all", profile.ShowAll)

	var results []model.Opportunity
	for i, src := range sources {
		if ctx.Err() != nil {
			p.log.Warn("scan interrupted", "remaining_sources", len(sources)-i)
			break
		}
		if i > 0 && p.delay > 0 {
			time.Sleep(p.delay)
		}

		stats.SourcesScanned++
		entries, err := p.fetcher.Fetch(ctx, src)
		if err != nil {
			stats.SourcesFailed++
			p.log.Error("fetch source", "source", src.Name, "error", err)
			continue
		}

		found := 0
		for _, entry := range entries {
			if opp, ok := p.evaluate(entry, src, profile); ok {
				results = append(results, opp)
				found++
			}
		}
		if found > 0 {
			p.log.Info("found opportunities", "source", src.Name, "count", found)
		}
	}

	if err := p.store.Flush(ctx); err != nil {
		// The run's results are still valid; only next run's dedup suffers.
		p.log.Error("flush seen store", "error", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].DomainMatch != results[j].DomainMatch {
			return results[i].DomainMatch
		}
		return results[i].Relevance > results[j].Relevance
	})

	for _, opp := range results {
		stats.Found++
		if opp.IsNew {
			stats.NewCount++
		}
		if opp.DomainMatch {
			stats.DomainCount++
		}
	}

	p.log.Info("scan complete",
		"found", stats.Found,
		"new", stats.NewCount,
		"domain_specific", stats.DomainCount,
		"failed_sources", stats.SourcesFailed)

	return results, stats, nil
}

// evaluate applies the inclusion decision to one entry and, when it
// qualifies, builds the Opportunity record and marks the URL seen.
func (p *Pipeline) evaluate(entry model.Entry, src model.Source, profile model.Profile) (model.Opportunity, bool) {
	url := entry.Link
	if url == "" {
		return model.Opportunity{}, false
	}
	if !profile.ShowAll && p.store.Contains(url) {
		return model.Opportunity{}, false
	}

	text := strings.ToLower(entry.Title + " " + entry.Summary)

	domainMatch := p.scorer.DomainMatch(text)
	geoRelevant := containsAny(text, src.Keywords)
	sectorRelevant := containsAny(text, profile.Sectors)
	hasFunding := score.HasFundingLanguage(text)
	relevance := p.scorer.Score(text, src, profile)

	// Funding language gates every path: precision over recall.
	include := hasFunding &&
		(domainMatch ||
			(geoRelevant && sectorRelevant) ||
			relevance >= p.threshold)
	if !include {
		return model.Opportunity{}, false
	}

	opp := model.Opportunity{
		Source:      src.Name,
		Category:    src.Category,
		Priority:    src.Priority,
		Title:       entry.Title,
		Description: truncate(entry.Summary, maxDescription),
		URL:         url,
		Published:   entry.Published,
		Discovered:  p.now(),
		Deadline:    extract.Deadline(text),
		Amount:      extract.Amount(text),
		Sectors:     extract.Sectors(text),
		Relevance:   relevance,
		DomainMatch: domainMatch,
		IsNew:       !p.store.Contains(url),
	}

	// Record even in show-all mode so future runs dedup correctly.
	p.store.Record(url)
	return opp, true
}

func validateProfile(profile model.Profile) error {
	if strings.TrimSpace(profile.Country) == "" {
		return fmt.Errorf("profile: country is required")
	}
	if len(profile.Sectors) == 0 {
		return fmt.Errorf("profile: at least one sector is required")
	}
	return nil
}

func normalizeProfile(profile model.Profile) model.Profile {
	profile.Country = strings.ToLower(strings.TrimSpace(profile.Country))
	sectors := make([]string, 0, len(profile.Sectors))
	for _, s := range profile.Sectors {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			sectors = append(sectors, s)
		}
	}
	profile.Sectors = sectors
	return profile
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, strings.ToLower(w)) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
