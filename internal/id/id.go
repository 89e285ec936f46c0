package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/prepaid/internal/period"
)

// Posting returns the ID shared by both legs of one posting, like
// "2024-05-002" for the second item posted in May 2024.
func Posting(m period.Month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", m.Year, int(m.Month), seq)
}

// Leg returns a leg ID like "2024-05-002a" (leg 0='a', 1='b').
func Leg(posting string, leg int) string {
	return posting + string(rune('a'+leg))
}

// Parse splits a posting or leg ID into its month and sequence number.
func Parse(s string) (period.Month, int, error) {
	base := Group(s)

	parts := strings.SplitN(base, "-", 3)
	if len(parts) != 3 {
		return period.Month{}, 0, fmt.Errorf("invalid posting ID format: %q", s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return period.Month{}, 0, fmt.Errorf("invalid year in posting ID %q: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return period.Month{}, 0, fmt.Errorf("invalid month in posting ID %q", s)
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq < 1 {
		return period.Month{}, 0, fmt.Errorf("invalid sequence in posting ID %q", s)
	}

	return period.NewMonth(year, time.Month(month)), seq, nil
}

// Group strips the leg suffix from a leg ID.
// "2024-05-002a" -> "2024-05-002"
func Group(legID string) string {
	i := len(legID)
	for i > 0 && legID[i-1] >= 'a' && legID[i-1] <= 'z' {
		i--
	}
	return legID[:i]
}
