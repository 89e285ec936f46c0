package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/prepaid/internal/journal"
	"github.com/cleared-dev/prepaid/internal/model"
	"github.com/cleared-dev/prepaid/internal/period"
	"github.com/cleared-dev/prepaid/internal/schedule"
)

// Sheet names.
const (
	ScheduleSheet = "Prepayment Schedule"
	JournalSheet  = "Journal Entries"
	FilteredSheet = "Filtered"
)

// Layout of the schedule sheet.
const (
	headerRow    = 3
	firstDataRow = headerRow + 1
	TotalLabel   = "Total Balance:"
)

// Title returns the merged heading on the schedule sheet.
func Title(asAt period.Month) string {
	return "Prepayment schedule as at   " + asAt.Label()
}

// ScheduleHeader returns the schedule column titles for the given months.
func ScheduleHeader(months []period.Month) []string {
	header := []string{"Item", "Invoice Number", "Invoice Amount"}
	for _, m := range months {
		header = append(header, m.Label())
	}
	return append(header, "Balance")
}

// WriteReport writes the schedule and journal sheets to a new workbook at path.
// All rows must share the same output range.
func WriteReport(path string, rows []schedule.Row, entries []model.JournalEntry, asAt period.Month) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", ScheduleSheet); err != nil {
		return fmt.Errorf("naming schedule sheet: %w", err)
	}
	if err := writeSchedule(f, rows, asAt, st); err != nil {
		return fmt.Errorf("writing schedule sheet: %w", err)
	}

	if _, err := f.NewSheet(JournalSheet); err != nil {
		return fmt.Errorf("adding journal sheet: %w", err)
	}
	if err := journalTable(entries).write(f, JournalSheet, 1, st); err != nil {
		return fmt.Errorf("writing journal sheet: %w", err)
	}

	f.SetActiveSheet(0)
	return save(f, path)
}

func writeSchedule(f *excelize.File, rows []schedule.Row, asAt period.Month, st styles) error {
	var months []period.Month
	if len(rows) > 0 {
		for _, mc := range rows[0].Columns {
			months = append(months, mc.Month)
		}
	}

	header := ScheduleHeader(months)
	t := table{header: header}
	for i, row := range rows {
		if len(row.Columns) != len(months) {
			return fmt.Errorf("row %d (%s): %d month columns, want %d", i+1, row.Item.Name, len(row.Columns), len(months))
		}
		cells := []cell{
			textCell(row.Item.Name),
			textCell(row.Item.InvoiceRef),
			numberCell(row.Item.Cost),
		}
		for _, mc := range row.Columns {
			if amt, ok := mc.Cell.Amount(); ok {
				cells = append(cells, numberCell(amt))
			} else {
				cells = append(cells, blankCell())
			}
		}
		cells = append(cells, numberCell(row.Balance))
		t.rows = append(t.rows, cells)
	}

	sheet := ScheduleSheet
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return fmt.Errorf("merging title: %w", err)
	}
	if err := f.SetCellValue(sheet, "A1", Title(asAt)); err != nil {
		return fmt.Errorf("writing title: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", st.title); err != nil {
		return fmt.Errorf("styling title: %w", err)
	}

	if err := t.write(f, sheet, headerRow, st); err != nil {
		return err
	}

	// Total sits on the first row after the data, under the Balance column.
	balanceCol := len(header)
	totalRow := firstDataRow + len(rows)
	if err := setCell(f, sheet, balanceCol-1, totalRow, TotalLabel); err != nil {
		return err
	}
	totalCell, err := excelize.CoordinatesToCellName(balanceCol, totalRow)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		// An empty SUM range would refer to the total cell itself.
		if err := f.SetCellValue(sheet, totalCell, 0); err != nil {
			return fmt.Errorf("writing total: %w", err)
		}
	} else {
		formula := fmt.Sprintf("SUM(%s%d:%s%d)", lastCol, firstDataRow, lastCol, totalRow-1)
		if err := f.SetCellFormula(sheet, totalCell, formula); err != nil {
			return fmt.Errorf("writing total formula: %w", err)
		}
	}
	if err := f.SetCellStyle(sheet, totalCell, totalCell, st.total); err != nil {
		return fmt.Errorf("styling total: %w", err)
	}
	return nil
}

func journalTable(entries []model.JournalEntry) table {
	t := table{header: journal.Columns()}
	for _, e := range entries {
		t.rows = append(t.rows, []cell{
			textCell(e.Date.Format(period.DateFormat)),
			textCell(e.Description),
			textCell(e.Reference),
			textCell(e.Account),
			{value: e.Amount.InexactFloat64(), text: e.Amount.StringFixed(journal.AmountPlaces)},
		})
	}
	return t
}

func numberCell(d decimal.Decimal) cell {
	return cell{value: d.InexactFloat64(), text: d.String()}
}

func save(f *excelize.File, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
