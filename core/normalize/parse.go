package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sentinels the portal uses for "no value". Compared after trimming.
var absentValues = map[string]struct{}{
	"":          {},
	"-":         {},
	"--":        {},
	"n/a":       {},
	"[no data]": {},
}

// Absent reports whether a scraped field carries no usable value.
func Absent(s string) bool {
	_, ok := absentValues[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Str trims a scraped field and maps sentinels to the empty string.
func Str(s string) string {
	if Absent(s) {
		return ""
	}
	return strings.TrimSpace(s)
}

var numericRe = regexp.MustCompile(`-?[\d,]+\.?\d*`)

// Float extracts a number from a scraped field, tolerating thousand
// separators and trailing units ("182.5 m"). Sentinels and garbage yield
// the default.
func Float(s string, def float64) float64 {
	if Absent(s) {
		return def
	}
	m := numericRe.FindString(s)
	if m == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return def
	}
	return f
}

// Int is Float truncated to an integer.
func Int(s string, def int) int {
	f := Float(s, float64(def))
	return int(f)
}

// Timestamp layouts seen in the portal's tables, most specific first.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
	"01/02 15:04",
	"01-02 15:04",
}

// Naive ISO 8601 layouts (a T separator but no offset); localized to the
// port timezone like the space-separated forms.
var isoLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Time parses a scraped timestamp in the given port timezone. RFC 3339
// strings are accepted as-is; bare layouts, including naive ISO forms, are
// localized to loc, and layouts without a year pick the year that puts the
// timestamp nearest the current time. The zero time signals an unparseable
// or absent value.
func Time(s string, loc *time.Location) time.Time {
	s = Str(s)
	if s == "" {
		return time.Time{}
	}
	if strings.Contains(s, "T") {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
		for _, layout := range isoLayouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t
			}
		}
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "2006") {
			t = nearestYear(t, time.Now().In(loc), loc)
		}
		return t
	}
	return time.Time{}
}

// nearestYear resolves a year-less timestamp to the year that places it
// closest to now, so a December row scraped in January lands in the year
// that just ended rather than eleven months ahead.
func nearestYear(t, now time.Time, loc *time.Location) time.Time {
	var best time.Time
	bestDiff := time.Duration(-1)
	for _, yr := range []int{now.Year() - 1, now.Year(), now.Year() + 1} {
		cand := time.Date(yr, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
		diff := cand.Sub(now)
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = cand, diff
		}
	}
	return best
}
