package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidMonthFormat is returned when a "Mon-YY" string cannot be parsed.
var ErrInvalidMonthFormat = errors.New("invalid month format")

const (
	labelFormat = "Jan-06"
	keyFormat   = "2006-01"
	// DateFormat is the display format for posting dates, e.g. "31/05/2024".
	DateFormat = "02/01/2006"
)

// Month is a calendar month. The zero value is not a valid month.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth returns the Month for a year and month number.
func NewMonth(year int, month time.Month) Month {
	return Month{Year: year, Month: month}
}

// Of returns the Month containing t.
func Of(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Parse parses a "Mon-YY" string such as "Jan-24".
func Parse(s string) (Month, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(labelFormat, s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q (want Mon-YY, e.g. Jan-24)", ErrInvalidMonthFormat, s)
	}
	return Of(t), nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Month {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseList parses one or more "Mon-YY" strings. Blank values are skipped.
func ParseList(values ...string) ([]Month, error) {
	var months []Month
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		m, err := Parse(v)
		if err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, nil
}

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Index returns a monotonically increasing month number, year*12 + (month-1).
func (m Month) Index() int {
	return m.Year*12 + int(m.Month) - 1
}

// AddMonths returns the month n months after m (n may be negative).
func (m Month) AddMonths(n int) Month {
	i := m.Index() + n
	return Month{Year: i / 12, Month: time.Month(i%12 + 1)}
}

// Before reports whether m is strictly before o.
func (m Month) Before(o Month) bool { return m.Index() < o.Index() }

// After reports whether m is strictly after o.
func (m Month) After(o Month) bool { return m.Index() > o.Index() }

// First returns midnight UTC on the first day of the month.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// LastDay returns midnight UTC on the last calendar day of the month.
func (m Month) LastDay() time.Time {
	return m.First().AddDate(0, 1, -1)
}

// Key returns the sortable month key, e.g. "2024-01".
func (m Month) Key() string {
	return m.First().Format(keyFormat)
}

// Label returns the "Mon-YY" form, e.g. "Jan-24".
func (m Month) Label() string {
	return m.First().Format(labelFormat)
}

func (m Month) String() string {
	return m.Label()
}
