package ical

import (
	"regexp"
	"strconv"
	"time"
)

var (
	// Bare 8-digit run: the date-only all-day encoding (YYYYMMDD).
	dateOnlyRe = regexp.MustCompile(`\d{8}`)
	// Date-time encoding (YYYYMMDDTHHMMSS with optional trailing Z). When a
	// line matches this form it wins over the bare run, but only the date
	// portion is kept.
	dateTimeRe = regexp.MustCompile(`(\d{8})T\d{6}Z?`)
)

// ExtractDate pulls the calendar date out of a date-bearing field line such
// as "DTSTART:20240603" or "DTEND;TZID=Europe/Paris:20240612T110000Z". The
// digits are read as local wall-clock values, so no zone conversion happens;
// time of day is discarded. The second return value is false when the line
// matches neither encoding.
func ExtractDate(line string) (time.Time, bool) {
	digits := dateOnlyRe.FindString(line)
	if m := dateTimeRe.FindStringSubmatch(line); m != nil {
		digits = m[1]
	}
	if digits == "" {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(digits[:4])
	month, _ := strconv.Atoi(digits[4:6])
	day, _ := strconv.Atoi(digits[6:8])

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
