package core

import (
	"time"
)

// Record is one normalized inventory line item.
type Record struct {
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	SourceFile  string  `json:"source_file"` // Set by the loader, never by input data
}

// Inventory is an ordered sequence of records.
// Order is file order (lexicographic by name) then row order within a file.
type Inventory []Record

// Len returns the number of records.
func (inv Inventory) Len() int {
	return len(inv)
}

// IsEmpty reports whether the inventory holds no records.
func (inv Inventory) IsEmpty() bool {
	return len(inv) == 0
}

// FileStatus indicates whether a candidate file contributed rows.
type FileStatus string

const (
	FileAccepted FileStatus = "accepted"
	FileRejected FileStatus = "rejected"
)

// SkippedRow describes a data row of an accepted file that was left out.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// FileOutcome is the per-file result of a load.
type FileOutcome struct {
	Name           string       `json:"name"`
	Status         FileStatus   `json:"status"`
	Rows           int          `json:"rows"`
	MissingColumns []string     `json:"missing_columns,omitempty"`
	Kind           ErrorKind    `json:"kind,omitempty"`
	Reason         string       `json:"reason,omitempty"`
	SkippedRows    []SkippedRow `json:"skipped_rows,omitempty"`
}

// LoadSummary is the diagnostic report of one load attempt.
type LoadSummary struct {
	ID         string        `json:"id"`
	Directory  string        `json:"directory"`
	Trigger    string        `json:"trigger"`
	RemoteAddr string        `json:"remote_addr,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	Files      []FileOutcome `json:"files"`
	Accepted   int           `json:"accepted"`
	Rejected   int           `json:"rejected"`
	TotalRows  int           `json:"total_rows"`
}

// NoValidFiles reports whether the load accepted nothing.
func (s LoadSummary) NoValidFiles() bool {
	return s.Accepted == 0
}

// Rejections returns the outcomes of rejected files in load order.
func (s LoadSummary) Rejections() []FileOutcome {
	var out []FileOutcome
	for _, f := range s.Files {
		if f.Status == FileRejected {
			out = append(out, f)
		}
	}
	return out
}

// CategoryStats holds the statistics of one category group.
// All values are rounded to two decimal places.
type CategoryStats struct {
	Category      string  `json:"category"`
	QuantitySum   float64 `json:"quantity_sum"`
	QuantityMean  float64 `json:"quantity_mean"`
	QuantityCount int     `json:"quantity_count"`
	PriceMean     float64 `json:"price_mean"`
	PriceMin      float64 `json:"price_min"`
	PriceMax      float64 `json:"price_max"`
}

// CategoryReport is the category-grouped report.
// Categories are ordered by first appearance in the inventory.
type CategoryReport struct {
	Categories []CategoryStats `json:"categories"`
}

// Lookup returns the stats for an exact category name.
func (r CategoryReport) Lookup(category string) (CategoryStats, bool) {
	for _, c := range r.Categories {
		if c.Category == category {
			return c, true
		}
	}
	return CategoryStats{}, false
}

// Len returns the number of category groups.
func (r CategoryReport) Len() int {
	return len(r.Categories)
}
