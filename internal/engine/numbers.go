package engine

import (
	"math"
	"strconv"
	"strings"
)

// parseNumber extracts a float from the loose numeric strings stored in
// routine documents: "12", "12,5", "80kg", "3 min", "10-12" (range takes the
// lower bound). Returns false for blank or non-numeric input.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSuffix(strings.ToLower(s), "kg")
	// "10-12" means a range; progress the lower bound. A leading '-' is a sign.
	if i := strings.Index(s, "-"); i > 0 {
		s = s[:i]
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// formatNumber renders a float without trailing zeros ("12", "12.5").
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// roundInt is round-half-away-from-zero, matching how committed progression
// values were always rounded.
func roundInt(f float64) int {
	return int(math.Round(f))
}

// roundTenth keeps one decimal (used for RIR only).
func roundTenth(f float64) float64 {
	return math.Round(f*10) / 10
}

// parseInt coerces to int, tolerating float-ish strings ("3.0"). Returns
// false for blank or non-numeric input.
func parseInt(raw string) (int, bool) {
	f, ok := parseNumber(raw)
	if !ok {
		return 0, false
	}
	return roundInt(f), true
}

// WeightOrZero reads a planned weight, treating blank or non-numeric as zero.
func WeightOrZero(raw string) float64 {
	f, ok := parseNumber(raw)
	if !ok {
		return 0
	}
	return f
}

// AddWeight shifts a planned weight by delta, keeping the numeric-or-blank
// string form. A blank plan counts as zero.
func AddWeight(raw string, delta float64) string {
	return formatNumber(WeightOrZero(raw) + delta)
}
