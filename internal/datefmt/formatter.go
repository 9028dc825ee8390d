// Package datefmt rewrites ISO-8601 datetime substrings into a friendly
// long-date form. Refinement labels and tokens coming back from the backend
// embed raw datetimes; everything else passes through untouched.
package datefmt

import (
	"regexp"
	"time"
)

// Matches full datetimes with seconds and optional fractional seconds, plus
// the minute-precision variant, each requiring an explicit offset or Z.
var iso8601Regex = regexp.MustCompile(
	`(\d{4}-[01]\d-[0-3]\dT[0-2]\d:[0-5]\d:[0-5]\d\.\d+([+-][0-2]\d:[0-5]\d|Z))` +
		`|(\d{4}-[01]\d-[0-3]\dT[0-2]\d:[0-5]\d:[0-5]\d([+-][0-2]\d:[0-5]\d|Z))` +
		`|(\d{4}-[01]\d-[0-3]\dT[0-2]\d:[0-5]\d([+-][0-2]\d:[0-5]\d|Z))`)

var parseLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
}

const defaultLayout = "January 2, 2006"

// Formatter renders datetimes for display. Construct one per process and
// inject it where needed instead of reaching for shared global state.
type Formatter struct {
	layout string
}

type Option func(*Formatter)

// WithLayout overrides the long-date layout, e.g. "2. January 2006".
func WithLayout(layout string) Option {
	return func(f *Formatter) {
		f.layout = layout
	}
}

func New(opts ...Option) *Formatter {
	f := &Formatter{layout: defaultLayout}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Prettify replaces every ISO-8601 datetime substring in input with its
// long-date rendering. Substrings that fail to parse are left as is.
func (f *Formatter) Prettify(input string) string {
	return iso8601Regex.ReplaceAllStringFunc(input, func(match string) string {
		for _, layout := range parseLayouts {
			if t, err := time.Parse(layout, match); err == nil {
				return t.Format(f.layout)
			}
		}
		return match
	})
}
