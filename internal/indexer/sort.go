package indexer

import (
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-folio/internal/blog"
)

// dateLayouts are tried in order when ordering records by date.
var dateLayouts = []string{
	blog.DateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate parses a record date using the accepted layouts, reading zoneless
// values as UTC.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// SortByDate orders records newest first. Records whose date cannot be parsed
// are placed as if dated fallback. Equal dates keep their input order.
func SortByDate(records []blog.DocumentRecord, fallback time.Time) {
	type keyed struct {
		at  time.Time
		rec blog.DocumentRecord
	}

	items := make([]keyed, len(records))
	for i, rec := range records {
		at, ok := ParseDate(rec.Date)
		if !ok {
			at = fallback
		}
		items[i] = keyed{at: at, rec: rec}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		return b.at.Compare(a.at)
	})

	for i := range items {
		records[i] = items[i].rec
	}
}
