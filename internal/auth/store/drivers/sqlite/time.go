package sqlite

import (
	"fmt"
	"time"
)

// timeLayout is the canonical storage format for expiry deadlines. The
// fractional part is fixed-width and the zone is always "Z" (values are
// formatted in UTC), so lexicographic comparison of stored strings matches
// chronological order. DeleteExpiredResets relies on that in SQL.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// naiveLayouts cover timezone-naive ISO-8601 strings written by earlier
// tooling. Naive values are treated as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime decodes a stored timestamp, tolerating both timezone-aware and
// timezone-naive forms.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("sqlite: unparseable timestamp %q", s)
}
