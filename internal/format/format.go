package format

import (
	"strconv"
	"strings"
	"time"
)

// Count formats n with thousands separators: 1234 => "1,234".
func Count(n int) string {
	return thousandSep(int64(n))
}

func thousandSep(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Date formats t as "Jan 2, 2006". Zero times render empty.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// LongDate formats t as "January 2, 2006" for article bylines.
func LongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// ISODate formats t for <time datetime> and JSON-LD.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// Stat renders a headline figure with its suffix, e.g. 500 and "+" => "500+".
func Stat(n int, suffix string) string {
	return Count(n) + suffix
}
