package normalize

import (
	"strconv"
	"strings"
)

// Placeholder odds strings that mean "no price yet" rather than a value.
var oddsPlaceholders = map[string]struct{}{
	"SP":   {},
	"NR":   {},
	"SCR":  {},
	"VOID": {},
}

// ParseOdds converts an odds string into its fractional-decimal value:
// "5/2" and "5-2" give 2.5, "EVS"/"EVENS" give 1.0, and decimal betting
// odds d > 1 give d-1. Placeholders (SP, NR, SCR, VOID) and anything
// unparseable return nil. The function never panics; every failure path is
// a nil result.
func ParseOdds(raw string) *float64 {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "-", "/")
	if _, ok := oddsPlaceholders[s]; ok {
		return nil
	}
	if s == "EVS" || s == "EVENS" {
		return oddsValue(1.0)
	}
	if num, den, found := strings.Cut(s, "/"); found {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN != nil || errD != nil || d <= 0 {
			return nil
		}
		return oddsValue(n / d)
	}
	dec, err := strconv.ParseFloat(s, 64)
	if err != nil || dec <= 1 {
		return nil
	}
	return oddsValue(dec - 1.0)
}

// IsPlaceholderOdds reports whether the raw string is a known non-price
// marker ("SP", "NR", "SCR", "VOID" or blank).
func IsPlaceholderOdds(raw string) bool {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return true
	}
	_, ok := oddsPlaceholders[s]
	return ok
}

// DecimalOdds converts a fractional value to full decimal odds (stake
// included), used wherever implied probabilities are needed.
func DecimalOdds(fractional float64) float64 {
	return fractional + 1.0
}

func oddsValue(v float64) *float64 {
	return &v
}
