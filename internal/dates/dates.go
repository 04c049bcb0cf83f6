// Package dates provides strict date validation and reformatting helpers for
// the NASA service flows. All services exchange dates as yyyy-mm-dd strings.
package dates

import (
	"regexp"
	"time"
)

// LayoutISO is the wire format used by every NASA endpoint.
const LayoutISO = "2006-01-02"

// LayoutISOTime is the datetime format used by the EPIC API.
const LayoutISOTime = "2006-01-02 15:04:05"

// LayoutLong is the human-readable date format used in posts.
const LayoutLong = "Jan 2, 2006"

// LayoutLongTime is the human-readable datetime format used in EPIC posts.
const LayoutLongTime = "Jan 2, 2006 15:04:05"

var strictDate = regexp.MustCompile(`^[12]\d{3}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)

// now is swapped out in tests to pin the current date.
var now = time.Now

// IsValid reports whether the input matches the strict calendar pattern and
// parses as a real date. The regexp rejects obviously malformed input early;
// parsing catches impossible dates such as 2023-02-31.
func IsValid(input string) bool {
	if !strictDate.MatchString(input) {
		return false
	}
	_, err := time.Parse(LayoutISO, input)
	return err == nil
}

// After reports whether first is strictly after second. Both must be valid
// yyyy-mm-dd strings; malformed input compares as not-after.
func After(first, second string) bool {
	a, err := time.Parse(LayoutISO, first)
	if err != nil {
		return false
	}
	b, err := time.Parse(LayoutISO, second)
	if err != nil {
		return false
	}
	return a.After(b)
}

// IsFuture reports whether the input date is strictly after the current
// calendar date.
func IsFuture(input string) bool {
	return After(input, Today())
}

// Today returns the current date formatted as yyyy-mm-dd.
func Today() string {
	return now().Format(LayoutISO)
}

// Reformat parses input using inLayout and renders it using outLayout.
// On parse failure the input is returned unchanged so a half-broken upstream
// payload still produces a readable post.
func Reformat(input, inLayout, outLayout string) string {
	t, err := time.Parse(inLayout, input)
	if err != nil {
		return input
	}
	return t.Format(outLayout)
}

// ReformatISOTime renders an RFC3339-style timestamp (as returned by the NASA
// image library) using outLayout.
func ReformatISOTime(input, outLayout string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, input); err == nil {
			return t.Format(outLayout)
		}
	}
	return input
}
