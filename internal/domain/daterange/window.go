// Package daterange bounds and validates the query window shared between the
// search form and the record editor.
package daterange

import (
	"errors"
	"time"
)

// DateLayout is the calendar-date layout for window bounds.
const DateLayout = "2006-01-02"

// Window bounds: queries may reach 7 days into the past and 16 days ahead.
const (
	DaysBack  = 7
	DaysAhead = 16
)

var (
	// ErrStartAfterEnd is returned when the start date sorts after the end date.
	ErrStartAfterEnd = errors.New("start date must be before end date")
	// ErrOutOfWindow is returned when either bound lies outside the allowed window.
	ErrOutOfWindow = errors.New("dates must be within 7 days ago to 16 days ahead")
	// ErrPartialRange is returned by ValidatePair when only one bound is set.
	ErrPartialRange = errors.New("both start and end dates are required")
	// ErrBadDate is returned for bounds that are not ISO calendar dates.
	ErrBadDate = errors.New("dates must use the YYYY-MM-DD format")
)

// Window is the permitted date-range bounds relative to "now". It is derived
// state: recompute it for every validation, never cache it.
type Window struct {
	Min time.Time
	Max time.Time
}

// ComputeWindow derives the allowed window from the supplied instant,
// truncated to calendar-date granularity.
func ComputeWindow(now time.Time) Window {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Window{
		Min: day.AddDate(0, 0, -DaysBack),
		Max: day.AddDate(0, 0, DaysAhead),
	}
}

// Contains reports whether the given date lies inside the window.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Min) && !d.After(w.Max)
}

// MinDate returns the lower bound formatted as an ISO date.
func (w Window) MinDate() string { return w.Min.Format(DateLayout) }

// MaxDate returns the upper bound formatted as an ISO date.
func (w Window) MaxDate() string { return w.Max.Format(DateLayout) }

// Validate checks a (start, end) pair against the window in the search form's
// permissive mode: an empty pair means "current weather" and a single bound is
// tolerated. ISO dates sort chronologically, so the order check compares the
// raw strings.
func Validate(start, end string, w Window) error {
	if start == "" && end == "" {
		return nil
	}
	if start != "" && end != "" && start > end {
		return ErrStartAfterEnd
	}
	for _, bound := range []string{start, end} {
		if bound == "" {
			continue
		}
		d, err := time.Parse(DateLayout, bound)
		if err != nil {
			return ErrBadDate
		}
		if !w.Contains(d) {
			return ErrOutOfWindow
		}
	}
	return nil
}

// ValidatePair is the strict form used at the store and editor boundary: a
// record must carry both bounds or neither, never exactly one.
func ValidatePair(start, end string, w Window) error {
	if (start == "") != (end == "") {
		return ErrPartialRange
	}
	return Validate(start, end, w)
}

// IsValidationError reports whether err is one of the range validation
// failures, as opposed to a transport or store error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrStartAfterEnd) ||
		errors.Is(err, ErrOutOfWindow) ||
		errors.Is(err, ErrPartialRange) ||
		errors.Is(err, ErrBadDate)
}
