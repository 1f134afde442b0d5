package normalizer

import (
	"math"
	"strconv"
	"strings"

	"loadboard/domain/schedule"

	"golang.org/x/text/unicode/norm"
)

// nullLike holds lower-cased cell values that spreadsheet exports use for missing data.
var nullLike = map[string]bool{
	"":     true,
	"nan":  true,
	"none": true,
	"null": true,
	"nat":  true,
}

// IsNullLike reports whether a cell should be treated as missing.
func IsNullLike(raw string) bool {
	return nullLike[strings.ToLower(strings.TrimSpace(raw))]
}

// NormalizeColumnName trims, collapses whitespace runs to "_" and lower-cases.
// "  Course   Title" becomes "course_title".
func NormalizeColumnName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}

// CleanText applies NFKC, trims, and maps empty or null-like values to Unknown.
func CleanText(raw string) string {
	s := strings.TrimSpace(norm.NFKC.String(raw))
	if IsNullLike(s) {
		return schedule.Unknown
	}
	return s
}

// ParseMinutes coerces a duration cell to whole minutes. Unparseable, missing
// and negative values become 0; fractional values are truncated.
func ParseMinutes(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return max(n, 0)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}
