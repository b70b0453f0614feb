// Package export writes scan results to timestamped CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"donorscan/internal/model"
)

var header = []string{
	"source", "category", "priority", "title", "description", "url",
	"published", "discovered", "deadline", "amount", "sectors",
	"relevance_score", "domain_specific", "is_new",
}

// Writer produces the CSV report files for one scan.
type Writer struct {
	dir string
}

// NewWriter creates a Writer that writes into dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteReports writes the full result set plus the filtered subsets the
// daily workflow reviews: domain-specific records, high-relevance records
// (score >= 7), and records carrying a deadline. Subset files are only
// written when non-empty. Returns the paths written.
func (w *Writer) WriteReports(opps []model.Opportunity, now time.Time) ([]string, error) {
	if len(opps) == 0 {
		return nil, nil
	}
	stamp := now.Format("20060102_1504")

	var domain, highPriority, urgent []model.Opportunity
	for _, o := range opps {
		if o.DomainMatch {
			domain = append(domain, o)
		}
		if o.Relevance >= 7 {
			highPriority = append(highPriority, o)
		}
		if o.Deadline != nil {
			urgent = append(urgent, o)
		}
	}

	files := []struct {
		name string
		rows []model.Opportunity
	}{
		{fmt.Sprintf("donor_opportunities_%s.csv", stamp), opps},
		{fmt.Sprintf("DOMAIN_SPECIFIC_%s.csv", stamp), domain},
		{fmt.Sprintf("HIGH_PRIORITY_%s.csv", stamp), highPriority},
		{fmt.Sprintf("URGENT_DEADLINES_%s.csv", stamp), urgent},
	}

	var written []string
	for _, f := range files {
		if len(f.rows) == 0 {
			continue
		}
		path := filepath.Join(w.dir, f.name)
		if err := writeCSV(path, f.rows); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeCSV(path string, opps []model.Opportunity) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, o := range opps {
		if err := cw.Write(record(o)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func record(o model.Opportunity) []string {
	return []string{
		o.Source,
		o.Category,
		string(o.Priority),
		o.Title,
		o.Description,
		o.URL,
		o.Published,
		o.Discovered.Format("2006-01-02 15:04"),
		strOrEmpty(o.Deadline),
		strOrEmpty(o.Amount),
		strings.Join(o.Sectors, ";"),
		strconv.FormatFloat(o.Relevance, 'f', 1, 64),
		strconv.FormatBool(o.DomainMatch),
		strconv.FormatBool(o.IsNew),
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
