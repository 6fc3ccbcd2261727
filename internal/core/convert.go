package core

// convert.go turns raw CSV cells into typed record values.
//
// These functions handle the messy reality of exported spreadsheets:
//   - Currency symbols and thousands separators in numbers
//   - Decimal commas ("12,50", "1.234,56") common in French exports
//   - Accounting format for negatives ("(12.50)")
//   - Excel formula prefixes (="value") and stray quotes
//
// Numbers are validated with a strict pattern first and then scanned into
// pgtype.Numeric, which gives exact decimal parsing before conversion to
// float64.

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates a cleaned numeric string: integers and decimals.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// decimalCommaRegex matches a single decimal comma that cannot be a
// thousands separator ("12,5" or "12,50", but not "1,500").
var decimalCommaRegex = regexp.MustCompile(`^[+-]?\d+,(\d{1,2}|\d{4,})$`)

// dotGroupedRegex matches dot-grouped thousands with a decimal comma
// ("1.234,56", "1.234.567,8").
var dotGroupedRegex = regexp.MustCompile(`^[+-]?\d{1,3}(\.\d{3})+,\d+$`)

// ToNumeric converts a cell to pgtype.Numeric.
// Returns Valid=false for empty or malformed input.
func ToNumeric(s string) pgtype.Numeric {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Numeric{Valid: false}
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.NewReplacer(
		"$", "",
		"\u20ac", "", // Euro
		"\u00a3", "", // Pound
		"\u00a0", "", // No-break space, a French thousands separator
		" ", "",
	).Replace(s)

	switch {
	case strings.LastIndex(s, ",") > strings.LastIndex(s, ".") && strings.Contains(s, "."):
		// Comma after dots: the dots group thousands.
		if !dotGroupedRegex.MatchString(s) {
			return pgtype.Numeric{Valid: false}
		}
		s = strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	case decimalCommaRegex.MatchString(s):
		s = strings.Replace(s, ",", ".", 1)
	default:
		s = strings.ReplaceAll(s, ",", "")
	}

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

// ParseNumber converts a cell to float64.
func ParseNumber(s string) (float64, error) {
	n := ToNumeric(s)
	if !n.Valid {
		if strings.TrimSpace(s) == "" {
			return 0, fmt.Errorf("empty value")
		}
		return 0, fmt.Errorf("invalid number %q", s)
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f.Float64, nil
}

// ParsePriceRange parses inclusive price bounds supplied as text.
func ParsePriceRange(minStr, maxStr string) (float64, float64, error) {
	lo, err := ParseNumber(minStr)
	if err != nil {
		return 0, 0, inputFormatError("price range", fmt.Sprintf("invalid minimum price %q", minStr))
	}
	hi, err := ParseNumber(maxStr)
	if err != nil {
		return 0, 0, inputFormatError("price range", fmt.Sprintf("invalid maximum price %q", maxStr))
	}
	return lo, hi, nil
}

// ParseQuantityRange parses inclusive quantity bounds supplied as text.
// Both bounds must be integral; "10.0" is accepted, "10.5" is not.
func ParseQuantityRange(minStr, maxStr string) (int, int, error) {
	lo, ok := parseIntegral(minStr)
	if !ok {
		return 0, 0, inputFormatError("quantity range", fmt.Sprintf("invalid minimum quantity %q: must be an integer", minStr))
	}
	hi, ok := parseIntegral(maxStr)
	if !ok {
		return 0, 0, inputFormatError("quantity range", fmt.Sprintf("invalid maximum quantity %q: must be an integer", maxStr))
	}
	return lo, hi, nil
}

func parseIntegral(s string) (int, bool) {
	v, err := ParseNumber(s)
	if err != nil || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatAmount renders a value with two decimals for export.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
