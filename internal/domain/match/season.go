package match

import (
	"fmt"
	"strings"
	"time"
)

// SeasonStartMonth is the first month credited to a new season.
const SeasonStartMonth = time.August

var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// SeasonOf labels the season a kickoff belongs to: August onwards opens
// "Y-(Y+1)", anything earlier closes "(Y-1)-Y".
func SeasonOf(t time.Time) string {
	year := t.Year()
	if t.Month() >= SeasonStartMonth {
		return SeasonLabel(year)
	}
	return SeasonLabel(year - 1)
}

func SeasonLabel(startYear int) string {
	return fmt.Sprintf("%d-%d", startYear, startYear+1)
}

// SeasonFileName is the document name a fetched season is stored under.
func SeasonFileName(startYear int) string {
	return SeasonLabel(startYear) + ".json"
}

// ParseDatetime accepts the provider's "YYYY-MM-DD HH:MM:SS" plus ISO 8601
// variants. Times without an offset are taken as UTC.
func ParseDatetime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range datetimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDatetime, value)
}
