package normalize

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonDigitPattern = regexp.MustCompile(`[^\d]`)

// CanonicalTrackKey turns a raw track name into the stable, URL-safe join
// key used by every downstream merge. It is deterministic and idempotent:
// applying it to its own output yields the same key.
func CanonicalTrackKey(raw string) string {
	name := CourseName(raw)
	if name == "" {
		return "unknown_track"
	}
	return strings.ReplaceAll(name, " ", "_")
}

// CanonicalRaceKey builds the globally unique race join key
// "<track_key>::r<zero-padded-number>". Two sources must agree on this key
// for their documents to coalesce.
func CanonicalRaceKey(track string, raceNumber int) string {
	return fmt.Sprintf("%s::r%02d", CanonicalTrackKey(track), raceNumber)
}

// RaceID derives the deterministic cache key for a race from the
// normalized course name, the calendar day and the digits of the post
// time. Identical races observed by different sources hash to the same ID.
func RaceID(course string, day time.Time, postTime string) string {
	key := CourseName(course) + "|" + day.Format("2006-01-02") + "|" + nonDigitPattern.ReplaceAllString(postTime, "")
	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:])[:12]
}
