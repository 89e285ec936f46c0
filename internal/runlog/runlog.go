package runlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/cleared-dev/prepaid/internal/period"
)

// FileName is the run log's name inside the output directory.
const FileName = "export-log.csv"

// Actions recorded in the run log.
const (
	ActionReport   = "report"
	ActionFiltered = "filtered_export"
	ActionSkipped  = "filtered_export_skipped"
)

// columns is the run log header in file order.
var columns = []string{"timestamp", "run_id", "action", "as_at", "items", "entries", "file"}

// Record is one file written (or skipped) by a run.
type Record struct {
	Time    time.Time
	RunID   string
	Action  string
	AsAt    period.Month
	Items   int // items scheduled in the run
	Entries int // journal entries written to File
	File    string
}

// Run collects the records of one invocation so they share an ID and time.
type Run struct {
	ID      string
	AsAt    period.Month
	Started time.Time
	Records []Record
}

// NewRun starts a run with a fresh UUID.
func NewRun(asAt period.Month, now time.Time) *Run {
	return &Run{ID: uuid.NewString(), AsAt: asAt, Started: now.UTC()}
}

// Add records one action of the run.
func (r *Run) Add(action string, items, entries int, file string) {
	r.Records = append(r.Records, Record{
		Time:    r.Started,
		RunID:   r.ID,
		Action:  action,
		AsAt:    r.AsAt,
		Items:   items,
		Entries: entries,
		File:    file,
	})
}

// Save appends the run's records to <dir>/export-log.csv, writing the
// header when the file is new.
func (r *Run) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	_, statErr := os.Stat(path)
	newFile := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if newFile {
		if err := cw.Write(columns); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for _, rec := range r.Records {
		if err := cw.Write(rec.fields()); err != nil {
			return fmt.Errorf("writing %s record: %w", rec.Action, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (rec Record) fields() []string {
	return []string{
		rec.Time.UTC().Format(time.RFC3339),
		rec.RunID,
		rec.Action,
		rec.AsAt.Label(),
		strconv.Itoa(rec.Items),
		strconv.Itoa(rec.Entries),
		rec.File,
	}
}

// Read returns every record in <dir>/export-log.csv, oldest first.
// A missing file yields no records.
func Read(dir string) ([]Record, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readRecords(f)
}

func readRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(columns)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	var records []Record
	for i, row := range rows {
		if i == 0 {
			continue
		}
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string) (Record, error) {
	ts, err := time.Parse(time.RFC3339, row[0])
	if err != nil {
		return Record{}, fmt.Errorf("parsing timestamp: %w", err)
	}
	if _, err := uuid.Parse(row[1]); err != nil {
		return Record{}, fmt.Errorf("parsing run_id %q: %w", row[1], err)
	}
	asAt, err := period.Parse(row[3])
	if err != nil {
		return Record{}, fmt.Errorf("parsing as_at: %w", err)
	}
	items, err := strconv.Atoi(row[4])
	if err != nil {
		return Record{}, fmt.Errorf("parsing items %q: %w", row[4], err)
	}
	entries, err := strconv.Atoi(row[5])
	if err != nil {
		return Record{}, fmt.Errorf("parsing entries %q: %w", row[5], err)
	}
	return Record{
		Time:    ts,
		RunID:   row[1],
		Action:  row[2],
		AsAt:    asAt,
		Items:   items,
		Entries: entries,
		File:    row[6],
	}, nil
}
