package util

import (
	"fmt"
	"time"
)

const (
	ISODateLayout = "2006-01-02"
	DOBLayout     = "02-01-2006"
)

// ParseDate accepts YYYY-MM-DD or a full RFC3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(ISODateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// ParseDOB accepts the hall-ticket form format DD-MM-YYYY as well as
// the ISO YYYY-MM-DD a date input produces.
func ParseDOB(value string) (time.Time, error) {
	if t, err := time.Parse(DOBLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(ISODateLayout, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date of birth %q", value)
}

func FormatDOB(t time.Time) string {
	return t.Format(DOBLayout)
}
