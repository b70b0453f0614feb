// Package score computes the bounded relevance score for feed entries.
package score

import (
	"math"
	"sort"
	"strings"

	"donorscan/internal/model"
)

// BonusTier awards Bonus points when at least MinMatches domain keywords
// appear in the text.
type BonusTier struct {
	MinMatches int
	Bonus      float64
}

// Config defines the tunable parts of the scoring model. Different
// deployments carry different domain keyword sets and bonus tiers; the
// defaults target child-welfare funding.
type Config struct {
	// DomainKeywords are the high-value terms whose presence marks an
	// entry as domain-specific.
	DomainKeywords []string
	// DomainTiers award escalating bonuses by count of domain keyword
	// matches. Evaluated highest MinMatches first; only one applies.
	DomainTiers []BonusTier
	// Region and Continent feed the geography bonus below the exact
	// country match.
	Region    string
	Continent string
	// SectorCap bounds the total sector-overlap bonus.
	SectorCap float64
	// SectorPoints is awarded per profile sector found in the text.
	SectorPoints float64
	// MaxScore is the clamp ceiling.
	MaxScore float64
}

// DefaultConfig returns the standard child-welfare scoring configuration.
func DefaultConfig() Config {
	return Config{
		DomainKeywords: []string{
			"orphan", "orphanage", "children", "child welfare", "vulnerable children",
			"ovc", "child care", "childcare", "foster", "adoption", "street children",
			"child protection", "children in need", "disadvantaged children",
			"children's home", "residential care", "family support",
		},
		DomainTiers: []BonusTier{
			{MinMatches: 3, Bonus: 5},
			{MinMatches: 2, Bonus: 4},
			{MinMatches: 1, Bonus: 3},
		},
		Region:       "east africa",
		Continent:    "africa",
		SectorCap:    2,
		SectorPoints: 0.5,
		MaxScore:     10,
	}
}

var priorityBonus = map[model.PriorityTier]float64{
	model.PriorityVeryHigh: 1.5,
	model.PriorityHigh:     1,
	model.PriorityMedium:   0.5,
	model.PriorityLow:      0,
}

var urgencyWords = []string{"deadline", "closing soon", "urgent", "apply now", "limited time"}

var fundingWords = []string{
	"grant", "funding", "opportunity", "proposal", "rfp",
	"call", "application", "tender", "competition", "award",
	"donation", "sponsor", "partnership", "support",
}

// Scorer evaluates entry text against an interest profile.
type Scorer struct {
	cfg Config
}

// New creates a Scorer. Tiers are sorted so the largest match-count
// threshold is checked first regardless of configuration order.
func New(cfg Config) *Scorer {
	tiers := make([]BonusTier, len(cfg.DomainTiers))
	copy(tiers, cfg.DomainTiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinMatches > tiers[j].MinMatches })
	cfg.DomainTiers = tiers
	return &Scorer{cfg: cfg}
}

// Score computes the relevance of lowercased text for the given source
// and profile. The result is rounded to one decimal and clamped to the
// configured ceiling; all terms are non-negative so no floor is needed.
func (s *Scorer) Score(text string, src model.Source, profile model.Profile) float64 {
	var score float64

	matches := s.domainMatches(text)
	for _, tier := range s.cfg.DomainTiers {
		if matches >= tier.MinMatches {
			score += tier.Bonus
			break
		}
	}

	// Geography: exact country beats region beats continent.
	switch {
	case strings.Contains(text, strings.ToLower(profile.Country)):
		score += 2
	case s.cfg.Region != "" && strings.Contains(text, s.cfg.Region):
		score += 1.5
	case s.cfg.Continent != "" && strings.Contains(text, s.cfg.Continent):
		score += 1
	}

	var sectorScore float64
	for _, sector := range profile.Sectors {
		if strings.Contains(text, strings.ToLower(sector)) {
			sectorScore += s.cfg.SectorPoints
		}
	}
	score += math.Min(sectorScore, s.cfg.SectorCap)

	score += priorityBonus[src.Priority]

	if containsAny(text, urgencyWords) {
		score += 1
	}

	return math.Min(math.Round(score*10)/10, s.cfg.MaxScore)
}

// DomainMatch reports whether any domain keyword appears in the text.
func (s *Scorer) DomainMatch(text string) bool {
	return s.domainMatches(text) > 0
}

func (s *Scorer) domainMatches(text string) int {
	n := 0
	for _, kw := range s.cfg.DomainKeywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// HasFundingLanguage reports whether the text contains any grant/call
// vocabulary. Entries without it never qualify as opportunities.
func HasFundingLanguage(text string) bool {
	return containsAny(text, fundingWords)
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
