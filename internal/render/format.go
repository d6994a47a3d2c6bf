package render

import (
	"strconv"

	"github.com/goliatone/go-folio/internal/indexer"
)

// DisplayDateLayout is the long form used on cards and document headers.
const DisplayDateLayout = "January 2, 2006"

// FormatDate renders raw in DisplayDateLayout. Values no layout accepts are
// returned unchanged.
func FormatDate(raw string) string {
	parsed, ok := indexer.ParseDate(raw)
	if !ok {
		return raw
	}
	return parsed.Format(DisplayDateLayout)
}

// revealDelay is the staggered animation delay of the card at index.
func revealDelay(index int) string {
	return strconv.FormatFloat(float64(index)/10, 'f', -1, 64) + "s"
}
