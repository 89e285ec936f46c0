package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/prepaid/internal/period"
)

func sampleConfig() *Config {
	cfg := Default()
	cfg.AsAt = "Oct-24"
	cfg.Period = PeriodConfig{Start: "Jan-24", End: "Feb-25"}
	cfg.Filters = FiltersConfig{
		Items:  StringList{"Webhosting", "Insurance"},
		Months: StringList{"May-24", "Jun-24"},
	}
	return cfg
}

func TestRoundTrip(t *testing.T) {
	cfg := sampleConfig()
	cfg.AccountsFile = "account-map.csv"

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "prepaid_items.csv", cfg.Input)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "prepayment_schedule_flexible.xlsx", cfg.ReportName)
	assert.False(t, cfg.Git.AutoCommit)
	assert.Equal(t, "Prepaid Bot", cfg.Git.AuthorName)
	assert.Equal(t, "prepaid@cleared.dev", cfg.Git.AuthorEmail)
	assert.Empty(t, cfg.AsAt)
	assert.Empty(t, cfg.Filters.Items)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("as_at: Oct-24\nperiod: {start: Jan-24, end: Dec-24}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Oct-24", cfg.AsAt)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "prepaid_items.csv", cfg.Input)
}

func TestLoad_FiltersScalarOrList(t *testing.T) {
	tests := []struct {
		name       string
		yaml       string
		wantItems  StringList
		wantMonths StringList
	}{
		{"scalars", "filters:\n  items: Webhosting\n  months: May-24\n", StringList{"Webhosting"}, StringList{"May-24"}},
		{"lists", "filters:\n  items: [Webhosting, Insurance]\n  months:\n    - May-24\n    - Jun-24\n", StringList{"Webhosting", "Insurance"}, StringList{"May-24", "Jun-24"}},
		{"comma scalar", "filters:\n  months: \"May-24, Jun-24\"\n", nil, StringList{"May-24", "Jun-24"}},
		{"list keeps commas", "filters:\n  items: [\"Acme, Inc\"]\n", StringList{"Acme, Inc"}, nil},
		{"omitted", "as_at: Oct-24\n", nil, nil},
		{"empty scalar", "filters:\n  items: \"\"\n", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantItems, cfg.Filters.Items)
			assert.Equal(t, tt.wantMonths, cfg.Filters.Months)
		})
	}
}

func TestLoad_FiltersRejectMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("filters:\n  items: {a: b}\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a value or a list")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, sampleConfig()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "as_at: Oct-24")
	assert.Contains(t, contents, "start: Jan-24")
	assert.Contains(t, contents, "output_dir: output")
	assert.Contains(t, contents, "auto_commit: false")
	assert.NotContains(t, contents, "accounts_file")
}

func TestApplyLookup(t *testing.T) {
	env := map[string]string{
		EnvAsAt:        "Dec-24",
		EnvEndPeriod:   "Dec-25",
		EnvItemFilter:  "Webhosting, Rent",
		EnvMonthFilter: "",
		EnvOutputDir:   "",
	}
	cfg := sampleConfig()
	cfg.ApplyLookup(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, "Dec-24", cfg.AsAt)
	assert.Equal(t, "Jan-24", cfg.Period.Start)
	assert.Equal(t, "Dec-25", cfg.Period.End)
	assert.Equal(t, StringList{"Webhosting", "Rent"}, cfg.Filters.Items)
	assert.Nil(t, cfg.Filters.Months, "an empty variable clears the filter")
	assert.Equal(t, "output", cfg.OutputDir, "an empty path keeps the configured one")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAsAt, "Nov-24")
	t.Setenv(EnvInput, "items.csv")

	cfg := sampleConfig()
	cfg.ApplyEnv()
	assert.Equal(t, "Nov-24", cfg.AsAt)
	assert.Equal(t, "items.csv", cfg.Input)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(EnvStartPeriod+"=Mar-24\n"), 0o644))
	t.Setenv(EnvStartPeriod, "")
	require.NoError(t, os.Unsetenv(EnvStartPeriod))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "Mar-24", os.Getenv(EnvStartPeriod))

	err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	cfg := sampleConfig()
	s, err := cfg.Resolve("/books")
	require.NoError(t, err)

	assert.Equal(t, period.MustParse("Oct-24"), s.AsAt)
	assert.Equal(t, 14, s.Range.Len())
	assert.Equal(t, []string{"Webhosting", "Insurance"}, s.Filter.Items)
	assert.Equal(t, []period.Month{period.MustParse("May-24"), period.MustParse("Jun-24")}, s.Filter.Months)
	assert.Equal(t, filepath.Join("/books", "prepaid_items.csv"), s.Input)
	assert.Equal(t, filepath.Join("/books", "output"), s.OutputDir)
	assert.Equal(t, filepath.Join("/books", "output", "prepayment_schedule_flexible.xlsx"), s.ReportPath)
	assert.Empty(t, s.AccountsFile)

	opts := s.ScheduleOptions()
	assert.Equal(t, s.AsAt, opts.AsAt)
	assert.Equal(t, s.Range, opts.Range)
}

func TestResolve_AbsolutePathsKept(t *testing.T) {
	cfg := sampleConfig()
	cfg.Input = "/data/items.csv"
	cfg.AccountsFile = "map.csv"
	s, err := cfg.Resolve("/books")
	require.NoError(t, err)
	assert.Equal(t, "/data/items.csv", s.Input)
	assert.Equal(t, filepath.Join("/books", "map.csv"), s.AccountsFile)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		wantMsg string
	}{
		{"bad as-at", func(c *Config) { c.AsAt = "October" }, period.ErrInvalidMonthFormat, "as_at"},
		{"missing as-at", func(c *Config) { c.AsAt = "" }, period.ErrInvalidMonthFormat, "as_at"},
		{"end before start", func(c *Config) { c.Period.End = "Dec-23" }, period.ErrInvalidDateRange, "period"},
		{"bad start", func(c *Config) { c.Period.Start = "24-01" }, period.ErrInvalidMonthFormat, "parsing start period"},
		{"bad month filter", func(c *Config) { c.Filters.Months = StringList{"May"} }, period.ErrInvalidMonthFormat, "filters.months"},
		{"no input", func(c *Config) { c.Input = " " }, nil, "input: path is required"},
		{"no output", func(c *Config) { c.OutputDir = "" }, nil, "output_dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sampleConfig()
			tt.mutate(cfg)
			_, err := cfg.Resolve("")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestResolve_ReportsAllProblems(t *testing.T) {
	cfg := sampleConfig()
	cfg.AsAt = "bad"
	cfg.Period.End = "Dec-23"
	_, err := cfg.Resolve("")
	require.Error(t, err)
	assert.ErrorIs(t, err, period.ErrInvalidMonthFormat)
	assert.ErrorIs(t, err, period.ErrInvalidDateRange)
}
