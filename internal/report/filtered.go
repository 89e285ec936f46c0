package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/prepaid/internal/journal"
	"github.com/cleared-dev/prepaid/internal/model"
)

// FilteredFileName returns the workbook name for a filtered export, e.g.
// "entries_webhosting_may24.xlsx". Unfiltered parts read "all".
func FilteredFileName(c journal.Criteria) string {
	var items []string
	for _, name := range c.Items {
		n := strings.ToLower(strings.Join(strings.Fields(name), ""))
		if n != "" {
			items = append(items, n)
		}
	}

	var months []string
	for _, m := range c.Months {
		months = append(months, strings.ToLower(strings.ReplaceAll(m.Label(), "-", "")))
	}

	return fmt.Sprintf("entries_%s_%s.xlsx", joinOrAll(items), joinOrAll(months))
}

func joinOrAll(parts []string) string {
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, "_")
}

// ExportFiltered writes the entries matching c to a "Filtered" sheet in dir
// and returns the file path and the number of entries written. When nothing
// matches no file is written and the error is journal.ErrNoMatchingEntries.
func ExportFiltered(dir string, entries []model.JournalEntry, c journal.Criteria) (string, int, error) {
	matched := journal.Filter(entries, c)
	if len(matched) == 0 {
		return "", 0, journal.ErrNoMatchingEntries
	}

	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return "", 0, err
	}
	if err := f.SetSheetName("Sheet1", FilteredSheet); err != nil {
		return "", 0, fmt.Errorf("naming filtered sheet: %w", err)
	}
	if err := journalTable(matched).write(f, FilteredSheet, 1, st); err != nil {
		return "", 0, fmt.Errorf("writing filtered sheet: %w", err)
	}

	path := filepath.Join(dir, FilteredFileName(c))
	if err := save(f, path); err != nil {
		return "", 0, err
	}
	return path, len(matched), nil
}
