package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the conventional config file name in a project directory.
const FileName = "prepaid.yaml"

// Config represents the top-level prepaid.yaml configuration.
type Config struct {
	AsAt         string        `yaml:"as_at"` // "Mon-YY", e.g. "Oct-24"
	Period       PeriodConfig  `yaml:"period"`
	Filters      FiltersConfig `yaml:"filters,omitempty"`
	Input        string        `yaml:"input"`
	AccountsFile string        `yaml:"accounts_file,omitempty"`
	OutputDir    string        `yaml:"output_dir"`
	ReportName   string        `yaml:"report_name"`
	Git          GitConfig     `yaml:"git"`
}

// PeriodConfig is the inclusive span of months shown in the schedule.
type PeriodConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// FiltersConfig selects journal entries for the filtered export.
// Each field accepts a single value or a list.
type FiltersConfig struct {
	Items  StringList `yaml:"items,omitempty"`
	Months StringList `yaml:"months,omitempty"`
}

// GitConfig controls committing generated reports.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a prepaid.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with defaults for a new project. The period
// fields are left empty and must be filled in before a run.
func Default() *Config {
	return &Config{
		Input:      "prepaid_items.csv",
		OutputDir:  "output",
		ReportName: "prepayment_schedule_flexible.xlsx",
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Prepaid Bot",
			AuthorEmail: "prepaid@cleared.dev",
		},
	}
}
