package normalize

import "strings"

// Canonical discipline names.
const (
	DisciplineThoroughbred = "thoroughbred"
	DisciplineHarness      = "harness"
	DisciplineGreyhound    = "greyhound"
	DisciplineJump         = "jump"
)

var disciplineKeywords = []struct {
	keyword    string
	discipline string
}{
	{"greyhound", DisciplineGreyhound},
	{"dog", DisciplineGreyhound},
	{"harness", DisciplineHarness},
	{"trot", DisciplineHarness},
	{"standardbred", DisciplineHarness},
	{"pacing", DisciplineHarness},
	{"steeplechase", DisciplineJump},
	{"hurdle", DisciplineJump},
	{"chase", DisciplineJump},
	{"national hunt", DisciplineJump},
	{"jump", DisciplineJump},
}

// Discipline classifies a free-text discipline description into the closed
// set {thoroughbred, harness, greyhound, jump}. Unknown input defaults to
// thoroughbred.
func Discipline(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	for _, entry := range disciplineKeywords {
		if strings.Contains(lowered, entry.keyword) {
			return entry.discipline
		}
	}
	return DisciplineThoroughbred
}
