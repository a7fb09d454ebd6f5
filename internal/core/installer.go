package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Installer writes skills into the canonical store and fans them out into
// agent skill directories.
type Installer struct {
	paths *Paths
}

// NewInstaller creates an Installer over the resolved paths.
func NewInstaller(paths *Paths) *Installer {
	return &Installer{paths: paths}
}

// InstallSkill installs one skill for one agent. The canonical copy under
// {home|cwd}/.agents/skills/<sanitized> is rebuilt from the skill's source
// directory, then the agent's directory receives either a symlink to it or
// an independent copy. Filesystem errors abort this (skill, agent) pair;
// repair happens by re-running, not by rollback.
func (inst *Installer) InstallSkill(skill Skill, agent AgentConfig, global bool, mode InstallMode) error {
	dirName := SanitizeName(skill.Name)

	canonicalDir := filepath.Join(inst.paths.CanonicalSkillsDir(global), dirName)
	agentBase := inst.paths.AgentSkillsBase(agent, global)
	if agentBase == "" {
		return fmt.Errorf("agent %s has no global skills directory", agent.Name)
	}
	agentDir := filepath.Join(agentBase, dirName)

	if err := os.RemoveAll(canonicalDir); err != nil {
		return fmt.Errorf("cleaning canonical dir: %w", err)
	}
	if err := os.MkdirAll(canonicalDir, 0o755); err != nil {
		return fmt.Errorf("creating canonical dir: %w", err)
	}
	if err := copyDir(skill.Path, canonicalDir); err != nil {
		return fmt.Errorf("copying skill files: %w", err)
	}

	switch mode {
	case InstallModeSymlink:
		if err := replaceWithSymlink(canonicalDir, agentDir); err != nil {
			// Any link failure falls back to a copy, regardless of cause.
			if copyErr := replaceWithCopy(canonicalDir, agentDir); copyErr != nil {
				return fmt.Errorf("installing for %s: symlink: %v, copy: %w", agent.Name, err, copyErr)
			}
		}
	case InstallModeCopy:
		if err := replaceWithCopy(canonicalDir, agentDir); err != nil {
			return fmt.Errorf("installing for %s: %w", agent.Name, err)
		}
	}

	return nil
}

// CanonicalDir returns where a skill's canonical copy lives for a scope.
func (inst *Installer) CanonicalDir(skillName string, global bool) string {
	return filepath.Join(inst.paths.CanonicalSkillsDir(global), SanitizeName(skillName))
}

// replaceWithSymlink points link at target, removing whatever is at link first.
func replaceWithSymlink(target, link string) error {
	if err := removePath(link); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(link), 0o755); err != nil {
		return err
	}
	return os.Symlink(target, link)
}

// replaceWithCopy rebuilds dst as a full copy of src.
func replaceWithCopy(src, dst string) error {
	if err := removePath(dst); err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	return copyDir(src, dst)
}

// removePath removes a file, symlink, or directory tree at path if present.
func removePath(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// SanitizeName normalizes a skill name into a filesystem-safe directory
// name: lowercase, runs of characters outside [a-z0-9._] collapse to a
// single dash, leading/trailing dashes and dots are trimmed, and the result
// is capped at 255 characters. Empty input becomes "unnamed-skill".
func SanitizeName(name string) string {
	var out strings.Builder
	prevDash := false

	for _, ch := range strings.ToLower(name) {
		switch {
		case (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '.' || ch == '_':
			out.WriteRune(ch)
			prevDash = false
		case !prevDash:
			out.WriteByte('-')
			prevDash = true
		}
	}

	trimmed := strings.Trim(out.String(), "-.")
	if trimmed == "" {
		return "unnamed-skill"
	}
	if len(trimmed) > 255 {
		trimmed = trimmed[:255]
	}
	return trimmed
}
