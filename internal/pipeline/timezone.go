package pipeline

import "strings"

// Zones resolves the IANA timezone for a track, preferring explicit
// per-track overrides, then the country default, then the configured
// fallback.
type Zones struct {
	Default string
	Tracks  map[string]string
}

var countryZones = map[string]string{
	"GB":     "Europe/London",
	"GB/IRE": "Europe/London",
	"IRE":    "Europe/Dublin",
	"FR":     "Europe/Paris",
	"US":     "America/New_York",
	"USA":    "America/New_York",
	"CA":     "America/Toronto",
	"AU":     "Australia/Sydney",
	"NZ":     "Pacific/Auckland",
	"HK":     "Asia/Hong_Kong",
	"JP":     "Asia/Tokyo",
	"ZA":     "Africa/Johannesburg",
}

// ForTrack returns the zone name for a course/country pair.
func (z Zones) ForTrack(course, country string) string {
	if zone, ok := z.Tracks[strings.ToLower(strings.TrimSpace(course))]; ok {
		return zone
	}
	if zone, ok := countryZones[strings.ToUpper(strings.TrimSpace(country))]; ok {
		return zone
	}
	if z.Default != "" {
		return z.Default
	}
	return "UTC"
}
