// Package model defines the domain types used across the application.
package model

import "time"

// PriorityTier orders feed sources by how likely they are to carry
// relevant opportunities. Higher tiers are scanned first and earn a
// larger scoring bonus.
type PriorityTier string

// Supported priority tiers, highest first.
const (
	PriorityVeryHigh PriorityTier = "very_high"
	PriorityHigh     PriorityTier = "high"
	PriorityMedium   PriorityTier = "medium"
	PriorityLow      PriorityTier = "low"
)

// Tiers lists all priority tiers in scan order.
var Tiers = []PriorityTier{PriorityVeryHigh, PriorityHigh, PriorityMedium, PriorityLow}

// Rank returns the scan-order rank of a tier (0 is scanned first).
// Unknown tiers sort last.
func (p PriorityTier) Rank() int {
	for i, t := range Tiers {
		if t == p {
			return i
		}
	}
	return len(Tiers)
}

// Source describes one RSS/Atom feed endpoint for a donor or aggregator.
type Source struct {
	Name     string
	URL      string
	Category string
	Keywords []string
	Priority PriorityTier
}

// Entry is a single raw feed item, normalized across feed formats.
// Entries are transient: produced by the fetcher, consumed by the
// pipeline, never persisted.
type Entry struct {
	Title     string
	Summary   string
	Link      string
	Published string
}

// Opportunity is a single funding announcement that passed the
// inclusion filters. URL is its identity across scans.
type Opportunity struct {
	Source      string
	Category    string
	Priority    PriorityTier
	Title       string
	Description string
	URL         string
	Published   string
	Discovered  time.Time
	Deadline    *string
	Amount      *string
	Sectors     []string
	Relevance   float64
	DomainMatch bool
	IsNew       bool
}

// Profile is the caller-supplied interest configuration driving
// geography and sector matching.
type Profile struct {
	Country string
	Sectors []string
	ShowAll bool
}
