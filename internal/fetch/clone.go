package fetch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/stencil-labs/stencil/internal/template"
)

// tmpSuffix is appended to the target dir during atomic clone.
const tmpSuffix = ".tmp"

// NormalizeRepoURL expands the "owner/repo" GitHub shorthand and leaves full
// URLs and SSH remotes untouched.
func NormalizeRepoURL(repo string) string {
	if strings.Contains(repo, "://") || strings.HasPrefix(repo, "git@") {
		return repo
	}
	if strings.Count(repo, "/") == 1 && !strings.HasPrefix(repo, "/") {
		return "https://github.com/" + repo
	}
	return repo
}

// Clone downloads the template source into targetDir with a shallow clone.
// The clone is atomic: it writes to a .tmp directory first and renames on
// success; on failure the .tmp directory is cleaned up. The clone's .git
// directory is removed; the download is a file tree, not a repository.
func Clone(source template.Source, targetDir string) error {
	if err := ensureGit(); err != nil {
		return err
	}

	if entries, err := os.ReadDir(targetDir); err == nil && len(entries) > 0 {
		return fmt.Errorf("target directory %s is not empty", targetDir)
	}

	repoURL := NormalizeRepoURL(source.Repo)
	tmpDir := targetDir + tmpSuffix

	// Clean up any leftover tmp dir from a previous failed attempt.
	_ = os.RemoveAll(tmpDir)

	if err := os.MkdirAll(filepath.Dir(tmpDir), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	args := []string{"clone", "--depth=1"}
	if source.Branch != "" {
		args = append(args, "--branch", source.Branch)
	}
	args = append(args, repoURL, tmpDir)

	cmd := exec.Command("git", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("cloning template: %w\n%s", err, strings.TrimSpace(string(output)))
	}

	_ = os.RemoveAll(filepath.Join(tmpDir, ".git"))

	// Atomic rename.
	if err := os.RemoveAll(targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("removing target dir: %w", err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing clone: %w", err)
	}

	return nil
}

// ensureGit checks that git is available on PATH.
func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required but not found in PATH")
	}
	return nil
}
