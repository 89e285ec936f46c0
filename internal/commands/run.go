package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/prepaid/internal/config"
	"github.com/cleared-dev/prepaid/internal/gitops"
	"github.com/cleared-dev/prepaid/internal/journal"
	"github.com/cleared-dev/prepaid/internal/logging"
	"github.com/cleared-dev/prepaid/internal/report"
	"github.com/cleared-dev/prepaid/internal/runlog"
)

func newRunCommand(root *rootOptions) *cobra.Command {
	var o overrides
	var commit bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate the schedule report and filtered journal export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, dir, err := loadSettings(cmd, root, &o)
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), s, dir, commit || s.Git.AutoCommit, root.logger, cmd.OutOrStdout())
		},
	}

	addOverrideFlags(cmd, &o)
	cmd.Flags().BoolVar(&commit, "commit", false, "commit generated files to git (also git.auto_commit)")

	return cmd
}

func runReport(ctx context.Context, s *config.Settings, dir string, commit bool, logger *logrus.Logger, out io.Writer) error {
	run := runlog.NewRun(s.AsAt, time.Now())
	log := logger.WithField(logging.FieldRunID, run.ID)

	rows, entries, err := generate(ctx, s, log)
	if err != nil {
		return err
	}

	if err := report.WriteReport(s.ReportPath, rows, entries, s.AsAt); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(out, "Report exported to %s\n", s.ReportPath)
	run.Add(runlog.ActionReport, len(rows), len(entries), filepath.Base(s.ReportPath))

	filtered, n, err := report.ExportFiltered(s.OutputDir, entries, s.Filter)
	switch {
	case errors.Is(err, journal.ErrNoMatchingEntries):
		name := report.FilteredFileName(s.Filter)
		fmt.Fprintln(out, "No matching journal entries for your filter.")
		log.WithField(logging.FieldPath, name).Info("nothing to export")
		run.Add(runlog.ActionSkipped, len(rows), 0, name)
	case err != nil:
		return fmt.Errorf("exporting filtered entries: %w", err)
	default:
		fmt.Fprintf(out, "Exported filtered journal entries to %s\n", filtered)
		log.WithFields(logrus.Fields{logging.FieldPath: filtered, logging.FieldEntries: n}).Debug("filtered export written")
		run.Add(runlog.ActionFiltered, len(rows), n, filepath.Base(filtered))
	}

	if err := run.Save(s.OutputDir); err != nil {
		return fmt.Errorf("writing run log: %w", err)
	}

	if !commit {
		return nil
	}
	return commitOutput(dir, s, log, out)
}

func commitOutput(dir string, s *config.Settings, log logrus.FieldLogger, out io.Writer) error {
	if !gitops.IsRepo(dir) {
		log.WithField(logging.FieldPath, dir).Warn("not a git repository, skipping commit")
		return nil
	}

	rel, err := filepath.Rel(dir, s.OutputDir)
	if err != nil {
		return fmt.Errorf("resolving output dir: %w", err)
	}
	reportRel, err := filepath.Rel(dir, s.ReportPath)
	if err != nil {
		return fmt.Errorf("resolving report path: %w", err)
	}

	author := gitops.Author{Name: s.Git.AuthorName, Email: s.Git.AuthorEmail}
	msg := gitops.ReportMessage(s.AsAt.Label(), []string{filepath.ToSlash(reportRel)})
	hash, err := gitops.Commit(dir, msg, author, rel)
	if errors.Is(err, gitops.ErrNothingToCommit) {
		log.Info("reports unchanged, nothing to commit")
		return nil
	}
	if err != nil {
		return fmt.Errorf("committing reports: %w", err)
	}

	fmt.Fprintf(out, "Committed reports (%s)\n", hash)
	return nil
}
