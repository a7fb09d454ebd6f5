// Package core provides the business logic for skil.
// It has zero UI dependencies and is independently testable.
package core

// SourceType identifies the hosting of a skill source.
type SourceType string

const (
	SourceTypeLocal    SourceType = "local"
	SourceTypeGitHub   SourceType = "github"
	SourceTypeGitLab   SourceType = "gitlab"
	SourceTypeCodeberg SourceType = "codeberg"
	SourceTypeGit      SourceType = "git"
)

// SourceInfo is provenance metadata recorded for installed skills.
type SourceInfo struct {
	SourceID   string // config key: owner/repo when known, else the raw URL or path
	SourceType SourceType
	SourceURL  string // fetchable clone URL (or canonical path for local sources)
	OwnerRepo  string // "owner/repo" when the host convention exposes it
	Branch     string // branch from a browse URL, empty otherwise
}

// Source is a parsed skill source: a local directory or a git repository.
type Source struct {
	Type      SourceType
	LocalPath string // canonical local directory (local only)
	CloneURL  string // git clone URL (git-backed types only)
	SubPath   string // path inside the repository to search for skills
	Info      SourceInfo
}

// IsLocal reports whether the source is a local directory.
func (s *Source) IsLocal() bool {
	return s.Type == SourceTypeLocal
}

// Skill is a discovered skill bundle: a directory holding a SKILL.md
// whose frontmatter carries non-empty name and description fields.
type Skill struct {
	Name        string
	Description string
	Path        string // directory containing SKILL.md
	RawContent  string // full SKILL.md contents
}

// AgentConfig describes an AI coding agent and its skill directory conventions.
// The agent table is data (agents.jsonc), not code.
type AgentConfig struct {
	Name            string `json:"name"`
	DisplayName     string `json:"displayName"`
	SkillsDir       string `json:"skillsDir"`       // project-relative, e.g. ".cursor/skills"
	GlobalSkillsDir string `json:"globalSkillsDir"` // absolute after expansion; empty = no global support
}

// SkilConfig is the persisted configuration mapping source keys to
// their installed skills. Serialized as TOML.
type SkilConfig struct {
	Sources map[string]SkilSource `toml:"source"`
}

// SkilSource is a single source entry in config.toml.
type SkilSource struct {
	SourceType string   `toml:"source-type"`
	Branch     string   `toml:"branch,omitempty"`
	Subpath    string   `toml:"subpath,omitempty"`
	Revision   string   `toml:"revision,omitempty"`
	Skills     []string `toml:"skills"`
}

// SkillLockFile tracks per-skill provenance, keyed by skill name.
type SkillLockFile struct {
	Version int                       `json:"version"`
	Skills  map[string]SkillLockEntry `json:"skills"`
}

// SkillLockEntry is the provenance record for one installed skill.
type SkillLockEntry struct {
	Source          string `json:"source"`
	SourceType      string `json:"sourceType"`
	SourceURL       string `json:"sourceUrl"`
	SkillPath       string `json:"skillPath,omitempty"`
	SourceBranch    string `json:"sourceBranch,omitempty"`
	SkillFolderHash string `json:"skillFolderHash"`
	InstalledAt     string `json:"installedAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// InstallMode selects how skills are propagated into agent directories.
type InstallMode int

const (
	// InstallModeSymlink links the agent directory to the canonical copy,
	// falling back to a full copy when symlink creation fails.
	InstallModeSymlink InstallMode = iota
	// InstallModeCopy always copies, never links.
	InstallModeCopy
)

// InstalledSkill is a skill found in the canonical store during a scan.
type InstalledSkill struct {
	Name        string
	Description string
	DirName     string // sanitized directory name in the store
	Path        string // canonical path (.agents/skills/<dir>)
	RawContent  string
	Agents      []string // display names of agents holding this skill
}

// SourceStatus is the result of an upstream freshness check for one source.
type SourceStatus struct {
	Key            string
	Entry          SkilSource
	RemoteRevision string
	LatestTag      string // newest remote tag, when the source pins no branch
	Stale          bool
	Err            error
}
