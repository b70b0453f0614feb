// Package extract implements heuristic field extraction from opportunity text.
//
// All functions expect lowercased input and are pure: no pattern match is
// an error, it just yields a nil result. Patterns are tried in priority
// order and the first hit wins, even when a later pattern would capture a
// "better" value.
package extract

import "regexp"

// pattern pairs a compiled regex with the capture group holding the value.
// Group 0 means the whole match.
type pattern struct {
	re    *regexp.Regexp
	group int
}

func (p pattern) find(text string) (string, bool) {
	m := p.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[p.group], true
}

const numericDate = `(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`

const monthName = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var deadlinePatterns = []pattern{
	{regexp.MustCompile(`(?i)deadline[:\s]+` + numericDate), 1},
	{regexp.MustCompile(`(?i)due[:\s]+` + numericDate), 1},
	{regexp.MustCompile(`(?i)closes?[:\s]+` + numericDate), 1},
	{regexp.MustCompile(`(?i)application deadline[:\s]+` + numericDate), 1},
	{regexp.MustCompile(`(?i)submit by[:\s]+` + numericDate), 1},
	{regexp.MustCompile(`(?i)(` + monthName + `\s+\d{1,2},?\s+\d{4})`), 1},
	{regexp.MustCompile(`(?i)(\d{1,2}\s+` + monthName + `\s+\d{4})`), 1},
}

const amountTail = `\d+(?:,\d{3})*(?:\s?(?:million|thousand|[kmb]))?`

var amountPatterns = []pattern{
	{regexp.MustCompile(`(?i)(?:up to|maximum|max|worth)\s+\$\s?` + amountTail), 0},
	{regexp.MustCompile(`(?i)\$\s?` + amountTail), 0},
	{regexp.MustCompile(`(?i)(?:usd|eur|gbp|tzs)\s?` + amountTail), 0},
	{regexp.MustCompile(`(?i)\d+(?:,\d{3})*\s+(?:usd|eur|gbp|tzs)`), 0},
}

// Deadline extracts an application deadline from text. The patterns
// prefer explicit "deadline:"-style phrasing over bare month-name dates.
// Returns nil if no pattern matches.
func Deadline(text string) *string {
	return first(deadlinePatterns, text)
}

// Amount extracts a funding amount from text, preferring "up to $N"
// phrasing over bare currency amounts. Returns nil if no pattern matches.
func Amount(text string) *string {
	return first(amountPatterns, text)
}

func first(patterns []pattern, text string) *string {
	for _, p := range patterns {
		if v, ok := p.find(text); ok {
			return &v
		}
	}
	return nil
}
