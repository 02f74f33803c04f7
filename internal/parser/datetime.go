package parser

import (
	"regexp"
	"strings"
	"time"

	"DelistRadar/internal/domain/models"
)

var (
	dateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|[A-Za-z]+\s\d{1,2},\s\d{4}`)
	// Group 1 is the clock value, group 2 the optional UTC marker.
	timeRe = regexp.MustCompile(`(\d{1,2}:\d{2}(?:\s?[AP]M)?|\d{1,2}\s?[AP]M)(\s*\(?UTC\)?)?`)
)

// proximityKeywords anchor the date search in long-form prose: the date
// closest to one of these is the delisting date.
var proximityKeywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)will terminate trading`),
	regexp.MustCompile(`(?i)cease trading`),
	regexp.MustCompile(`(?i)delisting of`),
	regexp.MustCompile(`(?i)delist`),
}

// proximityWindow is the character span searched around a chosen date for a
// time value.
const proximityWindow = 30

// ExtractDateTimeTitleFirst searches the title for a date before falling back
// to the body; the time is searched only in the body (titles rarely carry
// one). Both values come back normalized, with the unknown sentinel when
// nothing matched.
func ExtractDateTimeTitleFirst(title, body string) (string, string) {
	rawDate := dateRe.FindString(title)
	if rawDate == "" {
		rawDate = dateRe.FindString(body)
	}

	date := models.UnknownSentinel
	if rawDate != "" {
		date = NormalizeDate(rawDate)
	}

	return date, firstTime(body)
}

// ExtractDateTimeProximity picks the date whose offset distance to the
// nearest delisting keyword is minimal, then searches a fixed window around
// it for a time. With no keyword in the text the first date wins; with no
// date at all both values are the unknown sentinel.
func ExtractDateTimeProximity(text string) (string, string) {
	dateLocs := dateRe.FindAllStringIndex(text, -1)
	if len(dateLocs) == 0 {
		return models.UnknownSentinel, models.UnknownSentinel
	}

	var keywordStarts []int
	for _, re := range proximityKeywords {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			keywordStarts = append(keywordStarts, loc[0])
		}
	}

	best := dateLocs[0]
	if len(keywordStarts) > 0 {
		minDist := -1
		for _, d := range dateLocs {
			for _, k := range keywordStarts {
				dist := d[0] - k
				if dist < 0 {
					dist = -dist
				}
				// Strict less keeps the earliest date on ties.
				if minDist < 0 || dist < minDist {
					minDist = dist
					best = d
				}
			}
		}
	}

	date := NormalizeDate(text[best[0]:best[1]])

	lo := best[0] - proximityWindow
	if lo < 0 {
		lo = 0
	}
	hi := best[1] + proximityWindow
	if hi > len(text) {
		hi = len(text)
	}
	return date, firstTime(text[lo:hi])
}

// firstTime returns the first normalized time in text, or the sentinel.
func firstTime(text string) string {
	m := timeRe.FindStringSubmatch(text)
	if m == nil {
		return models.UnknownSentinel
	}
	t := NormalizeTime(strings.TrimSpace(m[1]))
	if strings.Contains(m[2], "UTC") {
		t += " (UTC)"
	}
	return t
}

// NormalizeDate rewrites a recognized date to YYYY-MM-DD. Strings that fail
// every known layout pass through unchanged rather than being discarded.
func NormalizeDate(s string) string {
	for _, layout := range []string{"2006-01-02", "January 2, 2006", "Jan 2, 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// NormalizeTime rewrites a recognized clock value to 24-hour HH:MM.
// Unrecognized values pass through unchanged.
func NormalizeTime(s string) string {
	cleaned := strings.ReplaceAll(strings.ToUpper(s), " ", "")
	for _, layout := range []string{"15:04", "3:04PM", "3PM"} {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format("15:04")
		}
	}
	return s
}
