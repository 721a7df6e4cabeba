// Package dateformat renders and reads the moment-style date formats used by
// daily-note file names and templates (YYYY-MM-DD, Do MMMM, LL, ...).
package dateformat

import (
	"fmt"
	"time"

	"github.com/nleeper/goment"
)

// DefaultFormat is the daily-note format used when nothing else is configured.
const DefaultFormat = "YYYY-MM-DD"

// Format renders t using a moment-style format string. An empty format
// renders the ISO-8601 default, as moment does.
func Format(t time.Time, format string) string {
	g, err := goment.New(t)
	if err != nil {
		return t.Format(time.RFC3339)
	}
	if format == "" {
		return g.Format()
	}
	return g.Format(format)
}

// Parse reads value according to format and returns that wall-clock time in
// loc. The value must format back to itself exactly, so trailing text,
// impossible days and tokens the parser skips are all rejected.
func Parse(format, value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	g, err := goment.New(value, format)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q as %q: %w", value, format, err)
	}
	p := g.ToTime()
	t := time.Date(p.Year(), p.Month(), p.Day(), p.Hour(), p.Minute(), p.Second(), 0, loc)

	if back := Format(t, format); back != value {
		return time.Time{}, fmt.Errorf("parse %q as %q: reads back as %q", value, format, back)
	}
	return t, nil
}
