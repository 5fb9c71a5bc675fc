package normalize

import "testing"

func TestCourseName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"Ascot", "ascot"},
		{"ASCOT", "ascot"},
		{"  Ascot  ", "ascot"},
		{"Ascot Racecourse", "ascot"},
		{"Yonkers Raceway", "yonkers"},
		{"Monmore Greyhound Stadium", "monmore"},
		{"Churchill Downs at Louisville", "churchill downs"},
		{"Belmont Park (NY)", "belmont"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CourseName(tc.raw); got != tc.want {
			t.Fatalf("CourseName(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestRaceType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"Mdn Clm", "Maiden Claiming"},
		{"MAIDEN CLAIMING", "Maiden Claiming"},
		{"Mdn Sp Wt", "Maiden Special Weight"},
		{"Alw Opt Clm", "Allowance Optional Claiming"},
		{"Optional Claiming", "Allowance Optional Claiming"},
		{"Clm 10000", "Claiming"},
		{"Alw", "Allowance"},
		{"Stk", "Stakes"},
		{"Hcap", "Handicap"},
		{"handicap chase", "Handicap"},
		{"novice hurdle", "Novice Hurdle"},
	}
	for _, tc := range cases {
		if got := RaceType(tc.raw); got != tc.want {
			t.Fatalf("RaceType(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
