package report

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	colPadding  = 2
	numberFmt   = "#,##0.00"
	borderColor = "000000"
)

// styles holds the style IDs registered on one workbook.
type styles struct {
	border int
	title  int
	total  int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error

	edges := []excelize.Border{
		{Type: "left", Color: borderColor, Style: 1},
		{Type: "top", Color: borderColor, Style: 1},
		{Type: "right", Color: borderColor, Style: 1},
		{Type: "bottom", Color: borderColor, Style: 1},
	}
	if s.border, err = f.NewStyle(&excelize.Style{Border: edges}); err != nil {
		return s, fmt.Errorf("creating border style: %w", err)
	}

	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return s, fmt.Errorf("creating title style: %w", err)
	}

	format := numberFmt
	s.total, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &format,
	})
	if err != nil {
		return s, fmt.Errorf("creating total style: %w", err)
	}
	return s, nil
}

// cell is one value in a table along with the text used to size its column.
type cell struct {
	value any
	text  string
}

func textCell(s string) cell {
	return cell{value: s, text: s}
}

func blankCell() cell {
	return cell{}
}

// table is a bordered block of cells anchored at a top-left row.
type table struct {
	header []string
	rows   [][]cell
}

// write renders t onto sheet starting at startRow (1-based) in column A,
// borders every cell and widens each column to its longest value.
func (t table) write(f *excelize.File, sheet string, startRow int, st styles) error {
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = utf8.RuneCountInString(h)
		if err := setCell(f, sheet, i+1, startRow, h); err != nil {
			return err
		}
	}

	for r, row := range t.rows {
		for c, v := range row {
			if v.value != nil {
				if err := setCell(f, sheet, c+1, startRow+1+r, v.value); err != nil {
					return err
				}
			}
			if n := utf8.RuneCountInString(v.text); n > widths[c] {
				widths[c] = n
			}
		}
	}

	if len(t.header) == 0 {
		return nil
	}
	first, err := excelize.CoordinatesToCellName(1, startRow)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(t.header), startRow+len(t.rows))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, first, last, st.border); err != nil {
		return fmt.Errorf("styling %s: %w", sheet, err)
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(w+colPadding)); err != nil {
			return fmt.Errorf("sizing column %s: %w", name, err)
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, name, value); err != nil {
		return fmt.Errorf("writing %s!%s: %w", sheet, name, err)
	}
	return nil
}
