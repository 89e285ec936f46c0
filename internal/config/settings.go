package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/prepaid/internal/journal"
	"github.com/cleared-dev/prepaid/internal/period"
	"github.com/cleared-dev/prepaid/internal/schedule"
)

// Settings is a validated Config with months parsed and paths resolved.
type Settings struct {
	AsAt         period.Month
	Range        period.Range
	Filter       journal.Criteria
	Input        string
	AccountsFile string
	OutputDir    string
	ReportPath   string
	Git          GitConfig
}

// ScheduleOptions returns the options passed to the schedule generator.
func (s *Settings) ScheduleOptions() schedule.Options {
	return schedule.Options{AsAt: s.AsAt, Range: s.Range}
}

// Resolve validates the config and returns typed Settings. Relative paths are
// resolved against baseDir. Every problem found is reported.
func (c *Config) Resolve(baseDir string) (*Settings, error) {
	var errs []error
	s := &Settings{Git: c.Git}

	asAt, err := period.Parse(c.AsAt)
	if err != nil {
		errs = append(errs, fmt.Errorf("as_at: %w", err))
	}
	s.AsAt = asAt

	rng, err := period.ParseRange(c.Period.Start, c.Period.End)
	if err != nil {
		errs = append(errs, fmt.Errorf("period: %w", err))
	}
	s.Range = rng

	months, err := period.ParseList(c.Filters.Months...)
	if err != nil {
		errs = append(errs, fmt.Errorf("filters.months: %w", err))
	}
	s.Filter = journal.ByItems(c.Filters.Items...).And(journal.ByMonths(months...))

	if strings.TrimSpace(c.Input) == "" {
		errs = append(errs, errors.New("input: path is required"))
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		errs = append(errs, errors.New("output_dir: path is required"))
	}
	if strings.TrimSpace(c.ReportName) == "" {
		errs = append(errs, errors.New("report_name: file name is required"))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	s.Input = resolvePath(baseDir, c.Input)
	if c.AccountsFile != "" {
		s.AccountsFile = resolvePath(baseDir, c.AccountsFile)
	}
	s.OutputDir = resolvePath(baseDir, c.OutputDir)
	s.ReportPath = filepath.Join(s.OutputDir, c.ReportName)
	return s, nil
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}
