package versync

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Git invokes the git binary in Dir (the process working directory when
// empty). versync never shells out to git for content edits, only for
// repository state checks and tag creation.
type Git struct {
	Dir string
}

func (g *Git) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return "", fmt.Errorf("git %s failed: %v: %s", args[0], err, detail)
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return stdout.String(), nil
}

// silent runs git and reports only whether it exited successfully.
func (g *Git) silent(args ...string) bool {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.Dir
	return cmd.Run() == nil
}

// IsInsideWorkTree reports whether Dir is inside a git work tree.
func (g *Git) IsInsideWorkTree() bool {
	return g.silent("rev-parse", "--is-inside-work-tree")
}

// IsWorkingTreeClean reports whether there are no unstaged changes.
func (g *Git) IsWorkingTreeClean() bool {
	return g.silent("diff", "--quiet")
}

// IsIndexClean reports whether there are no staged changes.
func (g *Git) IsIndexClean() bool {
	return g.silent("diff", "--cached", "--quiet")
}

// TagExists reports whether the tag is already present.
func (g *Git) TagExists(tag string) (bool, error) {
	out, err := g.run("tag", "--list", tag)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// CreateTag creates an annotated tag at the current commit.
func (g *Git) CreateTag(tag, message string) error {
	_, err := g.run("tag", "-a", tag, "-m", message)
	return err
}

// EnsureRepository fails unless Dir is inside a git work tree.
func (g *Git) EnsureRepository() error {
	if !g.IsInsideWorkTree() {
		return ErrNotRepository
	}
	return nil
}

// EnsureClean fails when the working tree or the index has pending changes.
func (g *Git) EnsureClean() error {
	if !g.IsWorkingTreeClean() {
		return ErrDirtyWorkTree
	}
	if !g.IsIndexClean() {
		return ErrDirtyIndex
	}
	return nil
}
