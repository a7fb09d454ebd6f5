package core

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const gitTimeout = 60 * time.Second

// CloneRepo clones url into dest, optionally checking out a branch.
// Depth-1 clones are enough: skil never needs history, only the tree.
func CloneRepo(url, branch, dest string) error {
	args := []string{"clone", "--depth", "1"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, url, dest)

	output, err := runGit(args...)
	if err != nil {
		return fmt.Errorf("git clone failed for %s: %s", url, strings.TrimSpace(output))
	}
	return nil
}

// HeadRevision returns the commit hash at HEAD of a cloned repository.
func HeadRevision(repoDir string) (string, error) {
	output, err := runGit("-C", repoDir, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolving HEAD of %s: %s", repoDir, strings.TrimSpace(output))
	}
	rev := strings.TrimSpace(output)
	if rev == "" {
		return "", fmt.Errorf("could not resolve HEAD of %s", repoDir)
	}
	return rev, nil
}

// RemoteRevision returns the revision a remote currently serves for a
// branch, or for HEAD when branch is empty.
func RemoteRevision(url, branch string) (string, error) {
	target := branch
	if target == "" {
		target = "HEAD"
	}
	output, err := runGit("ls-remote", url, target)
	if err != nil {
		return "", fmt.Errorf("git ls-remote failed for %s: %s", url, strings.TrimSpace(output))
	}

	line, _, _ := strings.Cut(output, "\n")
	rev := strings.Fields(line)
	if len(rev) == 0 || rev[0] == "" {
		return "", fmt.Errorf("could not resolve remote revision for %s", url)
	}
	return rev[0], nil
}

// LatestTag returns the highest version-sorted tag a remote serves, or ""
// when the remote has no tags.
func LatestTag(url string) (string, error) {
	output, err := runGit("ls-remote", "--tags", "--refs", "--sort=-v:refname", url)
	if err != nil {
		return "", fmt.Errorf("git ls-remote --tags failed for %s: %s", url, strings.TrimSpace(output))
	}

	line, _, _ := strings.Cut(output, "\n")
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", nil
	}
	tag := strings.TrimPrefix(fields[1], "refs/tags/")
	if tag == fields[1] {
		return "", nil
	}
	return tag, nil
}

// runGit executes git with a timeout and no credential prompting.
func runGit(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	done := make(chan struct{})
	var output []byte
	var cmdErr error

	go func() {
		output, cmdErr = cmd.CombinedOutput()
		close(done)
	}()

	select {
	case <-done:
		return string(output), cmdErr
	case <-time.After(gitTimeout):
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		return "", fmt.Errorf("git command timed out after %s", gitTimeout)
	}
}
