// Package codec holds the value normalizers the validator delegates to:
// flexible date parsing and country code to country name conversion.
package codec

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrEmptyDate is returned by ParseDate for blank input.
var ErrEmptyDate = errors.New("codec: empty date")

// ParseDate parses s as RFC 3339 or, failing that, in any layout dateparse
// recognizes (for example 2021/01/02, 01/02/2021, Jan 2 2021, 2021/01/02 15:04).
// Input without a zone is interpreted as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}
	// Accept RFC3339Nano (trailing zeros optional)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return dateparse.ParseIn(s, time.UTC)
}

// FormatDate renders t canonically: UTC, RFC3339Nano (Go trims trailing zeros).
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// NormalizeTimestamp accepts only RFC 3339 text and renders it with FormatDate.
func NormalizeTimestamp(s string) (string, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return FormatDate(t), nil
}

// NormalizeDate parses s with ParseDate and renders it with FormatDate.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(t), nil
}
