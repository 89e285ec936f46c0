package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/prepaid/internal/period"
)

var testTime = time.Date(2024, 10, 31, 9, 15, 0, 0, time.UTC)

const header = "timestamp,run_id,action,as_at,items,entries,file"

func testRun() *Run {
	run := NewRun(period.MustParse("Oct-24"), testTime)
	run.Add(ActionReport, 2, 42, "prepayment_schedule_flexible.xlsx")
	run.Add(ActionFiltered, 2, 4, "entries_all_may24.xlsx")
	return run
}

func TestNewRun(t *testing.T) {
	a := NewRun(period.MustParse("Oct-24"), testTime)
	b := NewRun(period.MustParse("Oct-24"), testTime)
	assert.NotEqual(t, a.ID, b.ID)
	_, err := uuid.Parse(a.ID)
	assert.NoError(t, err)
}

func TestAdd_StampsRun(t *testing.T) {
	run := testRun()
	require.Len(t, run.Records, 2)
	for _, rec := range run.Records {
		assert.Equal(t, run.ID, rec.RunID)
		assert.Equal(t, testTime, rec.Time)
		assert.Equal(t, "Oct-24", rec.AsAt.Label())
	}
}

func TestSave_NewFile(t *testing.T) {
	dir := t.TempDir()
	run := testRun()
	require.NoError(t, run.Save(dir))

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, header, lines[0])
	assert.Equal(t, "2024-10-31T09:15:00Z,"+run.ID+",report,Oct-24,2,42,prepayment_schedule_flexible.xlsx", lines[1])
}

func TestSave_AppendsAcrossRuns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	require.NoError(t, testRun().Save(dir))

	second := NewRun(period.MustParse("Nov-24"), testTime.Add(time.Hour))
	second.Add(ActionSkipped, 2, 0, "entries_all_jan26.xlsx")
	require.NoError(t, second.Save(dir))

	records, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, ActionReport, records[0].Action)
	assert.Equal(t, ActionSkipped, records[2].Action)
	assert.Equal(t, second.ID, records[2].RunID)
	assert.Equal(t, 0, records[2].Entries)
	assert.Equal(t, "Nov-24", records[2].AsAt.Label())
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	run := testRun()
	require.NoError(t, run.Save(dir))

	records, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, run.Records, records)
}

func TestRead_NotFound(t *testing.T) {
	records, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestRead_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewRun(period.MustParse("Oct-24"), testTime).Save(dir))

	records, err := Read(dir)
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestRead_BadRows(t *testing.T) {
	id := uuid.NewString()
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"bad timestamp", "yesterday," + id + ",report,Oct-24,2,42,a.xlsx", "parsing timestamp"},
		{"bad run id", "2024-10-31T09:15:00Z,run-1,report,Oct-24,2,42,a.xlsx", "parsing run_id"},
		{"bad as-at", "2024-10-31T09:15:00Z," + id + ",report,October,2,42,a.xlsx", "parsing as_at"},
		{"bad count", "2024-10-31T09:15:00Z," + id + ",report,Oct-24,two,42,a.xlsx", "parsing items"},
		{"short row", "2024-10-31T09:15:00Z," + id + ",report", "wrong number of fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(header+"\n"+tt.row+"\n"), 0o644))

			_, err := Read(dir)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
