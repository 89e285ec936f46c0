package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/prepaid/internal/accounts"
	"github.com/cleared-dev/prepaid/internal/config"
	"github.com/cleared-dev/prepaid/internal/importer"
	"github.com/cleared-dev/prepaid/internal/journal"
	"github.com/cleared-dev/prepaid/internal/logging"
	"github.com/cleared-dev/prepaid/internal/model"
	"github.com/cleared-dev/prepaid/internal/schedule"
)

// overrides are per-command flags that take precedence over the config
// file and the environment.
type overrides struct {
	asAt      string
	start     string
	end       string
	input     string
	outputDir string
	items     []string
	months    []string
}

func addOverrideFlags(cmd *cobra.Command, o *overrides) {
	f := cmd.Flags()
	f.StringVar(&o.asAt, "as-at", "", "as-at month, e.g. Oct-24")
	f.StringVar(&o.start, "start", "", "first month of the schedule, e.g. Jan-24")
	f.StringVar(&o.end, "end", "", "last month of the schedule, e.g. Dec-24")
	f.StringVar(&o.input, "input", "", "prepaid items CSV")
	f.StringVar(&o.outputDir, "output-dir", "", "directory for generated reports")
	f.StringSliceVar(&o.items, "item", nil, "only entries for these items (repeat or comma separate)")
	f.StringSliceVar(&o.months, "month", nil, "only entries posted in these months (repeat or comma separate)")
}

func (o *overrides) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("as-at") {
		cfg.AsAt = o.asAt
	}
	if f.Changed("start") {
		cfg.Period.Start = o.start
	}
	if f.Changed("end") {
		cfg.Period.End = o.end
	}
	if f.Changed("input") {
		cfg.Input = o.input
	}
	if f.Changed("output-dir") {
		cfg.OutputDir = o.outputDir
	}
	if f.Changed("item") {
		cfg.Filters.Items = config.SplitList(o.items...)
	}
	if f.Changed("month") {
		cfg.Filters.Months = config.SplitList(o.months...)
	}
}

// loadSettings reads the config file, then applies environment variables and
// flags. Returns the settings and the project directory holding the config.
// A missing default config file is not an error; everything may come from
// the environment and flags instead.
func loadSettings(cmd *cobra.Command, root *rootOptions, o *overrides) (*config.Settings, string, error) {
	path := root.configPath
	explicit := path != ""
	if !explicit {
		path = config.FileName
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(absPath)
	if err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, "", err
		}
		root.logger.WithField(logging.FieldPath, absPath).Debug("no config file, using defaults")
		cfg = config.Default()
	}

	cfg.ApplyEnv()
	o.apply(cmd, cfg)

	dir := filepath.Dir(absPath)
	s, err := cfg.Resolve(dir)
	if err != nil {
		return nil, "", err
	}
	return s, dir, nil
}

// generate reads the items and produces validated schedule rows and journal entries.
func generate(ctx context.Context, s *config.Settings, log logrus.FieldLogger) ([]schedule.Row, []model.JournalEntry, error) {
	items, err := importer.LoadItems(s.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("loading items: %w", err)
	}

	var mapper accounts.Mapper = accounts.Positional{}
	if s.AccountsFile != "" {
		svc, err := accounts.Load(s.AccountsFile)
		if err != nil {
			return nil, nil, err
		}
		log.WithField(logging.FieldPath, s.AccountsFile).Debugf("loaded %d account mappings", len(svc.All()))
		mapper = svc
	}

	rows, err := schedule.GenerateAll(ctx, items, s.ScheduleOptions())
	if err != nil {
		return nil, nil, err
	}
	for _, row := range rows {
		if row.Truncated() {
			log.WithFields(logrus.Fields{
				logging.FieldItem:   row.Item.Name,
				logging.FieldMonths: row.FilledMonths,
			}).Warnf("schedule ends at %s before the item is fully amortized", s.Range.End)
		}
	}

	entries := journal.Expand(rows, mapper)
	if problems := journal.Validate(entries); len(problems) > 0 {
		errs := make([]error, len(problems))
		for i, p := range problems {
			errs[i] = p
		}
		return nil, nil, fmt.Errorf("journal entries failed validation: %w", errors.Join(errs...))
	}

	log.WithFields(logrus.Fields{
		logging.FieldRows:    len(rows),
		logging.FieldEntries: len(entries),
	}).Info("schedule generated")
	return rows, entries, nil
}
