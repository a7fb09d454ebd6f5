package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// lockVersion is the current lock schema. Older lock files are discarded
// wholesale and rebuilt empty, not migrated.
const lockVersion = 3

// LockStore reads and writes the skill lock file and enriches entries with
// remote tree hashes.
type LockStore struct {
	path     string
	treeHash *TreeHashClient
}

// NewLockStore creates a LockStore at the conventional lock path.
func NewLockStore(paths *Paths) *LockStore {
	return &LockStore{
		path:     paths.LockPath(),
		treeHash: NewTreeHashClient(),
	}
}

// Path returns the lock file location.
func (s *LockStore) Path() string {
	return s.path
}

// Read loads the lock file. A missing file yields an empty lock. A lock
// whose version predates the current schema is reset to empty; the second
// return reports that reset so callers can warn the user.
func (s *LockStore) Read() (*SkillLockFile, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return emptyLock(), false, nil
		}
		return nil, false, fmt.Errorf("reading lock file: %w", err)
	}

	var lock SkillLockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, false, fmt.Errorf("parsing lock file: %w", err)
	}
	if lock.Version < lockVersion {
		return emptyLock(), true, nil
	}
	if lock.Skills == nil {
		lock.Skills = map[string]SkillLockEntry{}
	}
	return &lock, false, nil
}

func emptyLock() *SkillLockFile {
	return &SkillLockFile{Version: lockVersion, Skills: map[string]SkillLockEntry{}}
}

// write rewrites the whole lock file atomically. Map keys marshal sorted,
// so output is deterministic.
func (s *LockStore) write(lock *SkillLockFile) error {
	data, err := json.MarshalIndent(lock, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling lock file: %w", err)
	}
	data = append(data, '\n')
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("writing lock file: %w", err)
	}
	return nil
}

// UpdateForSkill upserts the lock entry for a skill installed from the
// given source. installedAt is preserved across re-installs; updatedAt
// always advances. The folder hash comes from the remote tree listing for
// GitHub-known sources and is empty otherwise — hash lookups never fail
// the install. Returns whether an outdated lock file was reset.
func (s *LockStore) UpdateForSkill(skill Skill, info SourceInfo, basePath string) (bool, error) {
	lock, reset, err := s.Read()
	if err != nil {
		return false, err
	}
	now := time.Now().UTC().Format(time.RFC3339)

	skillPath := lockSkillPath(skill.Path, basePath)

	var folderHash string
	if info.OwnerRepo != "" {
		folderHash = s.treeHash.SkillFolderHash(info.OwnerRepo, info.Branch, skillPath)
	}

	installedAt := now
	if existing, ok := lock.Skills[skill.Name]; ok {
		installedAt = existing.InstalledAt
	}

	lock.Skills[skill.Name] = SkillLockEntry{
		Source:          info.SourceID,
		SourceType:      string(info.SourceType),
		SourceURL:       info.SourceURL,
		SkillPath:       skillPath,
		SourceBranch:    info.Branch,
		SkillFolderHash: folderHash,
		InstalledAt:     installedAt,
		UpdatedAt:       now,
	}

	return reset, s.write(lock)
}

// RemoveEntry drops a skill from the lock file; no-op when absent. Entries
// are keyed by raw skill name, so matching goes through SanitizeName — the
// name the user sees on disk removes the entry recorded at install time.
func (s *LockStore) RemoveEntry(skillName string) error {
	lock, _, err := s.Read()
	if err != nil {
		return err
	}

	want := SanitizeName(skillName)
	removed := false
	for name := range lock.Skills {
		if SanitizeName(name) == want {
			delete(lock.Skills, name)
			removed = true
		}
	}
	if !removed {
		return nil
	}
	return s.write(lock)
}

// lockSkillPath records where the skill's SKILL.md sits relative to the
// source root, using forward slashes. Empty when the skill is not under
// the base (e.g. local installs from elsewhere).
func lockSkillPath(skillDir, basePath string) string {
	if basePath == "" {
		return ""
	}
	rel, err := filepath.Rel(basePath, skillDir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(filepath.Join(rel, skillFileName))
}
