package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"donorscan/internal/model"
	"donorscan/internal/score"
	"donorscan/internal/storage"
)

type fakeFetcher struct {
	entries map[string][]model.Entry
	errs    map[string]error
}

func (f *fakeFetcher) Fetch(_ context.Context, src model.Source) ([]model.Entry, error) {
	if err, ok := f.errs[src.Name]; ok {
		return nil, err
	}
	return f.entries[src.Name], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProfile() model.Profile {
	return model.Profile{
		Country: "tanzania",
		Sectors: []string{"children", "education", "health", "food", "agriculture"},
	}
}

func highSource(name string) model.Source {
	return model.Source{
		Name:     name,
		URL:      "https://feeds.example.org/" + name,
		Category: "aggregator",
		Keywords: []string{"tanzania", "east africa", "africa", "children"},
		Priority: model.PriorityHigh,
	}
}

// fixtureEntries mirrors testdata/donor_feed.xml.
func fixtureEntries() []model.Entry {
	return []model.Entry{
		{
			Title:     "Tanzania Education Grant — Apply by 12/31/2025, up to $50,000",
			Summary:   "Grants of up to $50,000 for primary education projects in Tanzania. Application deadline: 12/31/2025.",
			Link:      "https://feeds.example.org/donor/tz-education-grant",
			Published: "2025-11-03T08:00:00Z",
		},
		{
			Title:   "Tanzania launches new school curriculum",
			Summary: "The ministry of education in Tanzania has unveiled a revised school curriculum for 2026.",
			Link:    "https://feeds.example.org/donor/tz-curriculum",
		},
		{
			Title:   "Call for proposals: orphanage and foster care support",
			Summary: "Grant funding for orphanage programs, foster placement and child protection across east africa. Closes: 15/01/2026. Budget of USD 100,000 per project.",
			Link:    "https://feeds.example.org/donor/orphanage-call",
		},
		{
			Title:   "Quarterly market report for coffee exporters",
			Summary: "Commodity price trends for the fourth quarter.",
			Link:    "https://feeds.example.org/donor/coffee-report",
		},
	}
}

func newPipeline(f Fetcher, store storage.SeenStore, sources ...model.Source) *Pipeline {
	p := New(sources, f, store, score.New(score.DefaultConfig()), discardLogger())
	p.SetDelay(0)
	return p
}

func TestScanIncludesAndExtracts(t *testing.T) {
	src := highSource("donor")
	f := &fakeFetcher{entries: map[string][]model.Entry{"donor": fixtureEntries()}}
	store := storage.NewMemory()
	p := newPipeline(f, store, src)
	fixed := time.Date(2025, 11, 4, 9, 0, 0, 0, time.UTC)
	p.SetClock(func() time.Time { return fixed })

	results, stats, err := p.Scan(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if stats.Found != 2 {
		t.Fatalf("found %d opportunities, want 2 (curriculum and coffee items excluded)", stats.Found)
	}

	// Domain-specific entry sorts first despite both qualifying.
	if !results[0].DomainMatch {
		t.Error("first result must be the domain-specific one")
	}
	if results[0].URL != "https://feeds.example.org/donor/orphanage-call" {
		t.Errorf("first result = %s", results[0].URL)
	}

	grant := results[1]
	if grant.URL != "https://feeds.example.org/donor/tz-education-grant" {
		t.Fatalf("second result = %s", grant.URL)
	}
	if grant.Deadline == nil || *grant.Deadline != "12/31/2025" {
		t.Errorf("deadline = %v, want 12/31/2025", grant.Deadline)
	}
	if grant.Amount == nil || *grant.Amount != "up to $50,000" {
		t.Errorf("amount = %v, want up to $50,000", grant.Amount)
	}
	hasEducation := false
	for _, s := range grant.Sectors {
		if s == "education" {
			hasEducation = true
		}
	}
	if !hasEducation {
		t.Errorf("sectors = %v, want education included", grant.Sectors)
	}
	if grant.Relevance < 4 || grant.Relevance > 10 {
		t.Errorf("relevance = %v, want within [4, 10]", grant.Relevance)
	}
	if !grant.IsNew {
		t.Error("first sighting must be new")
	}
	if !grant.Discovered.Equal(fixed) {
		t.Errorf("discovered = %v, want %v", grant.Discovered, fixed)
	}

	if store.FlushCount() != 1 {
		t.Errorf("flush called %d times, want exactly 1", store.FlushCount())
	}
}

func TestScanFundingLanguageGate(t *testing.T) {
	// Geo and sector relevance without any funding vocabulary: excluded
	// on every inclusion path.
	src := highSource("donor")
	f := &fakeFetcher{entries: map[string][]model.Entry{"donor": {
		{
			Title:   "Tanzania launches new school curriculum",
			Summary: "Education reform for children across tanzania and east africa.",
			Link:    "https://feeds.example.org/donor/no-funding",
		},
	}}}
	p := newPipeline(f, storage.NewMemory(), src)

	results, _, err := p.Scan(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0: no funding language may ever pass", len(results))
	}
}

func TestScanIdempotentDedup(t *testing.T) {
	src := highSource("donor")
	f := &fakeFetcher{entries: map[string][]model.Entry{"donor": fixtureEntries()}}
	store := storage.NewMemory()

	first, _, err := newPipeline(f, store, src).Scan(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("first scan must find opportunities")
	}

	second, _, err := newPipeline(f, store, src).Scan(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second scan found %d records, want 0 on unchanged feed", len(second))
	}
}

func TestScanShowAllBypassesDedupButRecords(t *testing.T) {
	src := highSource("donor")
	f := &fakeFetcher{entries: map[string][]model.Entry{"donor": fixtureEntries()}}
	store := storage.NewMemory()

	profile := testProfile()
	if _, _, err := newPipeline(f, store, src).Scan(context.Background(), profile); err != nil {
		t.Fatalf("first scan: %v", err)
	}

	profile.ShowAll = true
	results, _, err := newPipeline(f, store, src).Scan(context.Background(), profile)
	if err != nil {
		t.Fatalf("show-all scan: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("show-all must re-include previously seen items")
	}
	for _, opp := range results {
		if opp.IsNew {
			t.Errorf("%s marked new on second sighting", opp.URL)
		}
	}

	// Every qualifying URL is in the store regardless of mode.
	urls := store.URLs()
	sort.Strings(urls)
	want := []string{
		"https://feeds.example.org/donor/orphanage-call",
		"https://feeds.example.org/donor/tz-education-grant",
	}
	if diff := cmp.Diff(want, urls); diff != "" {
		t.Errorf("store contents mismatch (-want +got):\n%s", diff)
	}
}

func TestScanPartialSourceFailure(t *testing.T) {
	srcs := []model.Source{
		highSource("a"), highSource("b"), highSource("c"),
		highSource("d"), highSource("e"),
	}
	entry := func(n string) model.Entry {
		return model.Entry{
			Title:   "Education grant for children in tanzania",
			Summary: "Apply for school funding.",
			Link:    "https://feeds.example.org/" + n + "/grant",
		}
	}
	f := &fakeFetcher{
		entries: map[string][]model.Entry{
			"a": {entry("a")}, "c": {entry("c")}, "e": {entry("e")},
		},
		errs: map[string]error{
			"b": errors.New("connection refused"),
			"d": errors.New("malformed feed"),
		},
	}
	p := newPipeline(f, storage.NewMemory(), srcs...)

	results, stats, err := p.Scan(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("scan must not fail on per-source errors: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want 3 from the healthy sources", len(results))
	}
	if stats.SourcesFailed != 2 {
		t.Errorf("failed sources = %d, want 2", stats.SourcesFailed)
	}
	if stats.SourcesScanned != 5 {
		t.Errorf("scanned sources = %d, want 5", stats.SourcesScanned)
	}
}

func TestScanInvalidProfile(t *testing.T) {
	p := newPipeline(&fakeFetcher{}, storage.NewMemory(), highSource("donor"))

	tests := []struct {
		name    string
		profile model.Profile
	}{
		{"empty country", model.Profile{Sectors: []string{"education"}}},
		{"no sectors", model.Profile{Country: "tanzania"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := p.Scan(context.Background(), tt.profile); err == nil {
				t.Error("expected fatal configuration error")
			}
		})
	}
}

func TestScanEmptyResultIsNotError(t *testing.T) {
	f := &fakeFetcher{entries: map[string][]model.Entry{}}
	p := newPipeline(f, storage.NewMemory(), highSource("donor"))

	results, stats, err := p.Scan(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(results) != 0 || stats.Found != 0 {
		t.Errorf("want empty result, got %d", len(results))
	}
}

func TestScanSortsDomainFirstThenRelevance(t *testing.T) {
	src := highSource("donor")
	f := &fakeFetcher{entries: map[string][]model.Entry{"donor": {
		{
			Title:   "Small grant for farmers",
			Summary: "Agriculture funding in africa.",
			Link:    "https://feeds.example.org/donor/1",
		},
		{
			Title:   "Major education grant for tanzania schools",
			Summary: "Education funding for primary schools in tanzania. Deadline approaching, apply now.",
			Link:    "https://feeds.example.org/donor/2",
		},
		{
			Title:   "Orphanage grant",
			Summary: "Funding call for orphanage residential care.",
			Link:    "https://feeds.example.org/donor/3",
		},
	}}}
	p := newPipeline(f, storage.NewMemory(), src)

	results, _, err := p.Scan(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].URL != "https://feeds.example.org/donor/3" {
		t.Errorf("domain-specific item must sort first, got %s", results[0].URL)
	}
	if results[1].Relevance < results[2].Relevance {
		t.Errorf("non-domain items must sort by relevance descending: %v then %v",
			results[1].Relevance, results[2].Relevance)
	}
}
