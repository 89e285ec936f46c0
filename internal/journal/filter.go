package journal

import (
	"errors"
	"strings"

	"github.com/cleared-dev/prepaid/internal/model"
	"github.com/cleared-dev/prepaid/internal/period"
)

// ErrNoMatchingEntries means a filter matched nothing. It is not a failure;
// callers use it to skip an export.
var ErrNoMatchingEntries = errors.New("no matching journal entries")

// Criteria selects journal entries. Empty fields match everything; when both
// are set an entry must match both.
type Criteria struct {
	Items  []string
	Months []period.Month
}

// ByItems matches entries for any of the given item names, case-insensitively.
func ByItems(names ...string) Criteria {
	return Criteria{Items: names}
}

// ByMonths matches entries posted in any of the given months.
func ByMonths(months ...period.Month) Criteria {
	return Criteria{Months: months}
}

// And returns criteria requiring both c and o.
func (c Criteria) And(o Criteria) Criteria {
	return Criteria{
		Items:  append(append([]string(nil), c.Items...), o.Items...),
		Months: append(append([]period.Month(nil), c.Months...), o.Months...),
	}
}

// IsEmpty reports whether the criteria match everything.
func (c Criteria) IsEmpty() bool {
	return len(c.itemSet()) == 0 && len(c.Months) == 0
}

// Filter returns the entries matching c, preserving order. The result is
// never nil; an empty slice means nothing matched.
func Filter(entries []model.JournalEntry, c Criteria) []model.JournalEntry {
	items := c.itemSet()
	dates := make(map[string]bool, len(c.Months))
	for _, m := range c.Months {
		dates[m.LastDay().Format(period.DateFormat)] = true
	}

	result := make([]model.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if len(items) > 0 && !items[normalizeItem(e.Item)] {
			continue
		}
		if len(dates) > 0 && !dates[e.Date.Format(period.DateFormat)] {
			continue
		}
		result = append(result, e)
	}
	return result
}

func (c Criteria) itemSet() map[string]bool {
	set := make(map[string]bool, len(c.Items))
	for _, name := range c.Items {
		if n := normalizeItem(name); n != "" {
			set[n] = true
		}
	}
	return set
}

func normalizeItem(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
