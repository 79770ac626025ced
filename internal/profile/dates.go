package profile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateRangeRe matches an experience date range such as "2020 - 2023",
// "Jan 2020 – Present" or "01/2019 to 06/2021". Group 1 is the start
// token, group 2 the end token.
var dateRangeRe = regexp.MustCompile(`(?i)((?:[a-z]{3,9}\.?\s+)?(?:19|20)\d{2}|\d{1,2}/(?:19|20)\d{2})\s*(?:[-–—]|to|until)\s*((?:[a-z]{3,9}\.?\s+)?(?:19|20)\d{2}|\d{1,2}/(?:19|20)\d{2}|present|current|now|ongoing)`)

var (
	yearOnlyRe   = regexp.MustCompile(`^(?:19|20)\d{2}$`)
	monthSlashRe = regexp.MustCompile(`^(\d{1,2})/((?:19|20)\d{2})$`)
	monthNameRe  = regexp.MustCompile(`^([a-z]{3,9})\.?\s+((?:19|20)\d{2})$`)
)

var monthNumbers = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// parseDateToken parses one side of a date range: "2020", "Jan 2020",
// "January 2020" or "01/2020". Day precision is not kept; everything
// anchors to the first of the month.
func parseDateToken(tok string) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(tok))

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return t.UTC(), nil
	}
	if yearOnlyRe.MatchString(s) {
		year, _ := strconv.Atoi(s)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	}
	if m := monthSlashRe.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			month = 1
		}
		return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
	}
	if m := monthNameRe.FindStringSubmatch(s); m != nil {
		month, ok := monthNumbers[m[1][:3]]
		if !ok {
			month = time.January
		}
		year, _ := strconv.Atoi(m[2])
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", tok)
}
