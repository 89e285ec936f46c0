package period

import (
	"errors"
	"fmt"
)

// ErrInvalidDateRange is returned when a range ends before it starts.
var ErrInvalidDateRange = errors.New("invalid date range")

// Range is an inclusive span of calendar months.
type Range struct {
	Start Month
	End   Month
}

// NewRange returns the inclusive range start..end.
func NewRange(start, end Month) (Range, error) {
	if start.IsZero() || end.IsZero() {
		return Range{}, fmt.Errorf("%w: start and end months are required", ErrInvalidDateRange)
	}
	if end.Before(start) {
		return Range{}, fmt.Errorf("%w: end %s is before start %s", ErrInvalidDateRange, end, start)
	}
	return Range{Start: start, End: end}, nil
}

// ParseRange parses two "Mon-YY" strings into a Range.
func ParseRange(start, end string) (Range, error) {
	s, err := Parse(start)
	if err != nil {
		return Range{}, fmt.Errorf("parsing start period: %w", err)
	}
	e, err := Parse(end)
	if err != nil {
		return Range{}, fmt.Errorf("parsing end period: %w", err)
	}
	return NewRange(s, e)
}

// Len returns the number of months in the range.
func (r Range) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return r.End.Index() - r.Start.Index() + 1
}

// Months enumerates every month in the range in ascending order.
func (r Range) Months() []Month {
	n := r.Len()
	months := make([]Month, 0, n)
	for i := 0; i < n; i++ {
		months = append(months, r.Start.AddMonths(i))
	}
	return months
}

// Contains reports whether m falls inside the range.
func (r Range) Contains(m Month) bool {
	return !m.Before(r.Start) && !m.After(r.End)
}

func (r Range) String() string {
	return r.Start.Label() + ".." + r.End.Label()
}
