package core

// schema.go defines the canonical record shape and header validation.
//
// The column names are the input contract and are matched verbatim after
// cell cleanup. Extra columns are permitted and dropped during projection.

import (
	"fmt"
	"strings"
)

// Canonical input column names.
const (
	ColProductName = "nom du produit"
	ColCategory    = "catégorie"
	ColQuantity    = "quantité"
	ColUnitPrice   = "prix unitaire"
)

// RequiredColumns lists the input columns every file must carry, in the
// order used for validation messages.
var RequiredColumns = []string{ColProductName, ColCategory, ColQuantity, ColUnitPrice}

// ValidationResult is the outcome of validating a candidate header.
type ValidationResult struct {
	Valid          bool
	MissingColumns []string // Canonical order
}

// Err returns a validation error for path, or nil if the result is valid.
func (v ValidationResult) Err(path string) error {
	if v.Valid {
		return nil
	}
	return &Error{
		Kind: KindValidation,
		Op:   "load",
		Path: path,
		Msg:  fmt.Sprintf("missing required columns: %s", strings.Join(v.MissingColumns, ", ")),
	}
}

// Validate checks candidate header columns against RequiredColumns.
func Validate(columns []string) ValidationResult {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[CleanCell(c)] = struct{}{}
	}

	var missing []string
	for _, req := range RequiredColumns {
		if _, ok := present[req]; !ok {
			missing = append(missing, req)
		}
	}

	return ValidationResult{Valid: len(missing) == 0, MissingColumns: missing}
}

// HeaderIndex maps cleaned column names to their position in a row.
type HeaderIndex map[string]int

// MakeHeaderIndex builds a HeaderIndex from a header row.
// When a column name repeats, the first occurrence wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := CleanCell(h)
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}

// cell returns the cleaned value of column name in row.
func (h HeaderIndex) cell(row []string, name string) string {
	pos, ok := h[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return CleanCell(row[pos])
}
