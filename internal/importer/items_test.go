package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/prepaid/internal/period"
	"github.com/cleared-dev/prepaid/internal/schedule"
)

const header = "Item,Invoice Number,Invoice Amount,Duration Months,Start Month\n"

func TestLoadItems_Testdata(t *testing.T) {
	items, err := LoadItems("../../testdata/prepaid_items.csv")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Webhosting", items[0].Name)
	assert.Equal(t, "46248", items[0].InvoiceRef)
	assert.Equal(t, "10000.00", items[0].Cost.StringFixed(2))
	assert.Equal(t, 12, items[0].DurationMonths)
	assert.Equal(t, period.MustParse("Jan-24"), items[0].StartMonth)

	assert.Equal(t, "Insurance", items[1].Name)
	assert.Equal(t, 9, items[1].DurationMonths)
	assert.Equal(t, "Apr-24", items[1].StartMonth.Label())
}

func TestReadItems_InvoiceRefIsNotNumeric(t *testing.T) {
	csv := header + "Rent,000412,600,6,Jan-24\nAudit,INV-7,100,1,Feb-24\n"
	items, err := ReadItems(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "000412", items[0].InvoiceRef)
	assert.Equal(t, "INV-7", items[1].InvoiceRef)
}

func TestReadItems_HeaderVariants(t *testing.T) {
	csv := "start_month, invoice_amount,ITEM,Notes,invoice number,Duration  Months\n" +
		"Mar-24,\"1,500.50\",Licence,ignored,L-1,3\n"
	items, err := ReadItems(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Licence", items[0].Name)
	assert.Equal(t, "L-1", items[0].InvoiceRef)
	assert.Equal(t, "1500.50", items[0].Cost.StringFixed(2))
	assert.Equal(t, "Mar-24", items[0].StartMonth.Label())
}

func TestReadItems_ByteOrderMark(t *testing.T) {
	items, err := ReadItems(strings.NewReader("\ufeff" + header + "Rent,1,600,6,Jan-24\n"))
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestReadItems_SkipsBlankLines(t *testing.T) {
	items, err := ReadItems(strings.NewReader(header + "Rent,1,600,6,Jan-24\n,,,,\n"))
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestReadItems_HeaderOnly(t *testing.T) {
	items, err := ReadItems(strings.NewReader(header))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReadItems_MissingColumn(t *testing.T) {
	csv := "Item,Invoice Number,Invoice Amount,Start Month\nRent,1,600,Jan-24\n"
	_, err := ReadItems(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequiredColumn)
	assert.Contains(t, err.Error(), "Duration Months")
}

func TestReadItems_EmptyFile(t *testing.T) {
	_, err := ReadItems(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingRequiredColumn)
}

func TestReadItems_RowErrors(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		wantErr error
		wantMsg string
	}{
		{"empty value", "Rent,,600,6,Jan-24", ErrMissingRequiredColumn, "Invoice Number is empty"},
		{"short row", "Rent,1,600", ErrMissingRequiredColumn, "Duration Months is empty"},
		{"bad month", "Rent,1,600,6,2024-01", period.ErrInvalidMonthFormat, "parsing Start Month"},
		{"zero duration", "Rent,1,600,0,Jan-24", schedule.ErrInvalidDuration, "must be positive"},
		{"non-numeric duration", "Rent,1,600,six,Jan-24", schedule.ErrInvalidDuration, "parsing Duration Months"},
		{"negative amount", "Rent,1,-600,6,Jan-24", schedule.ErrInvalidCost, "must be positive"},
		{"bad amount", "Rent,1,lots,6,Jan-24", nil, "parsing Invoice Amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadItems(strings.NewReader(header + tt.row + "\n"))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), "row 2 (Rent)")
		})
	}
}

func TestReadItems_ReportsEveryBadRow(t *testing.T) {
	csv := header +
		"Webhosting,46248,10000,12,Jan-24\n" +
		"Broken,1,100,0,Jan-24\n" +
		"Insurance,89017,1200,9,Apr-24\n" +
		"AlsoBroken,2,100,3,Smarch-24\n"

	items, err := ReadItems(strings.NewReader(csv))
	require.Error(t, err)
	assert.Nil(t, items)

	var re *RowError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 3, re.Row)
	assert.Equal(t, "Broken", re.Item)
	assert.Contains(t, err.Error(), "row 5 (AlsoBroken)")
}

func TestLoadItems_NotFound(t *testing.T) {
	_, err := LoadItems(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
