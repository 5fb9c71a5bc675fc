package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	atClausePattern     = regexp.MustCompile(` at .*$`)
	parentheticalPattern = regexp.MustCompile(`\s*\([^)]*\)`)

	// Venue-type qualifiers stripped from course names. Order matters:
	// "racecourse" must go before "track" so "racetrack" is not mangled.
	venueSuffixes = []string{"park", "raceway", "racecourse", "track", "stadium", "greyhound", "harness"}
)

// CourseName cleans and standardizes a racetrack name: lowercase, trailing
// "at X" clauses and parenthetical qualifiers removed, common venue-type
// words stripped, whitespace collapsed. It is the basis for track keys and
// must be applied before key generation.
func CourseName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return ""
	}
	name = atClausePattern.ReplaceAllString(name, "")
	name = parentheticalPattern.ReplaceAllString(name, "")
	for _, suffix := range venueSuffixes {
		name = strings.ReplaceAll(name, suffix, "")
	}
	return strings.Join(strings.Fields(name), " ")
}

var raceTypeAliases = []struct {
	key   string
	value string
}{
	{"mdn clm", "Maiden Claiming"},
	{"maiden claiming", "Maiden Claiming"},
	{"mdn sp wt", "Maiden Special Weight"},
	{"maiden special weight", "Maiden Special Weight"},
	{"optional claiming", "Allowance Optional Claiming"},
	{"alw opt clm", "Allowance Optional Claiming"},
	{"clm", "Claiming"},
	{"claiming", "Claiming"},
	{"alw", "Allowance"},
	{"allowance", "Allowance"},
	{"stk", "Stakes"},
	{"stakes", "Stakes"},
	{"hcap", "Handicap"},
	{"handicap", "Handicap"},
}

var titleCaser = cases.Title(language.English)

// RaceType standardizes race-type abbreviations ("Mdn Clm", "Alw") into
// their long forms, title-casing anything unrecognized.
func RaceType(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	for _, alias := range raceTypeAliases {
		if strings.Contains(lowered, alias.key) {
			return alias.value
		}
	}
	return titleCaser.String(lowered)
}
