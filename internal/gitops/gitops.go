package gitops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNothingToCommit is returned when the staged paths have no changes.
var ErrNothingToCommit = errors.New("nothing to commit")

// Author identifies who commits generated reports.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// env sets the committer to the author so commits work without a global git identity.
func (a Author) env() []string {
	return append(os.Environ(),
		"GIT_AUTHOR_NAME="+a.Name,
		"GIT_AUTHOR_EMAIL="+a.Email,
		"GIT_COMMITTER_NAME="+a.Name,
		"GIT_COMMITTER_EMAIL="+a.Email,
	)
}

// Init initializes a new git repository at dir. git's own output goes to out.
func Init(dir string, out io.Writer) error {
	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// Commit stages paths (all changes when none are given) and creates a commit.
// Returns the short commit hash, or ErrNothingToCommit when nothing changed.
func Commit(dir, message string, author Author, paths ...string) (string, error) {
	args := []string{"add", "-A"}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	add := exec.Command("git", args...)
	add.Dir = dir
	if out, err := add.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	diff := exec.Command("git", "diff", "--cached", "--quiet")
	diff.Dir = dir
	if err := diff.Run(); err == nil {
		return "", ErrNothingToCommit
	}

	commit := exec.Command("git", "commit", "-m", message, "--author", author.String())
	commit.Dir = dir
	commit.Env = author.env()
	if out, err := commit.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	rev := exec.Command("git", "rev-parse", "--short", "HEAD")
	rev.Dir = dir
	out, err := rev.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// ReportMessage builds the commit message for a report run.
func ReportMessage(asAt string, files []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "reports: prepayment schedule as at %s", asAt)
	if len(files) > 0 {
		b.WriteString("\n\n")
		for _, f := range files {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}
	return b.String()
}
