package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var clockPattern = regexp.MustCompile(`\b(\d{1,2})[:.](\d{2})\s*([AaPp][Mm])?\b`)

// ParseTime extracts a 24-hour "HH:MM" post time from free-form text. It
// accepts "7:30 PM", "19.30" and "19:30" forms, converting 12-hour input
// with the usual special cases (12 AM is 00, 12 PM stays 12). Returns the
// empty string when no valid clock time is present.
func ParseTime(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	match := clockPattern.FindStringSubmatch(raw)
	if match == nil {
		return ""
	}

	hour, err := strconv.Atoi(match[1])
	if err != nil {
		return ""
	}
	minute, err := strconv.Atoi(match[2])
	if err != nil || minute > 59 {
		return ""
	}

	switch strings.ToUpper(match[3]) {
	case "PM":
		if hour > 12 {
			return ""
		}
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour > 12 {
			return ""
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return ""
		}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute)
}
