package normalize

import "testing"

func TestParseTime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"7:30 PM", "19:30"},
		{"7:30PM", "19:30"},
		{"7:30 pm", "19:30"},
		{"12:00 PM", "12:00"},
		{"12:15 AM", "00:15"},
		{"19:30", "19:30"},
		{"19.30", "19:30"},
		{"9:05", "09:05"},
		{"Race starts at 2:45 PM sharp", "14:45"},
		{"", ""},
		{"   ", ""},
		{"no time here", ""},
		{"25:00", ""},
		{"13:00 PM", ""},
		{"10:75", ""},
	}
	for _, tc := range cases {
		if got := ParseTime(tc.raw); got != tc.want {
			t.Fatalf("ParseTime(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
