package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/prepaid/internal/config"
	"github.com/cleared-dev/prepaid/internal/gitops"
	"github.com/cleared-dev/prepaid/internal/importer"
	"github.com/cleared-dev/prepaid/internal/logging"
	"github.com/cleared-dev/prepaid/internal/period"
)

// sampleItems seeds a new project's items file.
var sampleItems = [][]string{
	{"Webhosting", "46248", "10000", "12", "Jan-24"},
	{"Insurance", "89017", "1200", "9", "Apr-24"},
}

func newInitCommand(root *rootOptions) *cobra.Command {
	var asAt string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new prepaid project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			month := period.Of(time.Now())
			if asAt != "" {
				if month, err = period.Parse(asAt); err != nil {
					return fmt.Errorf("parsing --as-at: %w", err)
				}
			}

			if err := runInit(absDir, month, !noGit, cmd.OutOrStdout()); err != nil {
				return err
			}
			root.logger.WithField(logging.FieldPath, absDir).Debug("project initialized")
			return nil
		},
	}

	cmd.Flags().StringVar(&asAt, "as-at", "", "as-at month for the new config (default current month)")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

func runInit(dir string, asAt period.Month, withGit bool, out io.Writer) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	cfg := config.Default()
	if err := os.MkdirAll(filepath.Join(dir, cfg.OutputDir), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", cfg.OutputDir, err)
	}

	// The period defaults to the as-at month's calendar year.
	cfg.AsAt = asAt.Label()
	cfg.Period.Start = period.NewMonth(asAt.Year, time.January).Label()
	cfg.Period.End = period.NewMonth(asAt.Year, time.December).Label()
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	var items strings.Builder
	items.WriteString(strings.Join(importer.Columns, ",") + "\n")
	for _, row := range sampleItems {
		items.WriteString(strings.Join(row, ",") + "\n")
	}
	if err := os.WriteFile(filepath.Join(dir, cfg.Input), []byte(items.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Input, err)
	}

	gitignore := ".env\n~$*.xlsx\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, cfg.OutputDir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if !withGit {
		fmt.Fprintf(out, "Initialized prepaid project at %s\n", dir)
		return nil
	}

	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir, io.Discard); err != nil {
			return err
		}
	}

	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(dir, "init: prepaid project", author)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized prepaid project at %s (%s)\n", dir, hash)
	return nil
}
