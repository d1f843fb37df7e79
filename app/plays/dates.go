package plays

import (
	"fmt"
	"time"
)

const isoDateFormat = "2006-01-02T15:04:05.000Z07:00"

var dateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}

// toISODate converts a list post date into an ISO-8601 UTC timestamp.
func toISODate(value string) (string, error) {
	t, err := parseDate(value)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(isoDateFormat), nil
}
