package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	agentsDirName   = ".agents"
	skillsSubdir    = "skills"
	configDirName   = "skil"
	configFileName  = "config.toml"
	localConfigFile = ".skil.toml"
	lockFileName    = ".skill-lock.json"
)

// Paths is the environment resolution for one invocation: home and config
// directories plus the working directory, computed once and passed explicitly
// into the components that need them instead of re-reading the environment
// ad hoc.
type Paths struct {
	Home       string
	ConfigHome string // $XDG_CONFIG_HOME or ~/.config
	CodexHome  string // $CODEX_HOME or ~/.codex
	ClaudeHome string // $CLAUDE_CONFIG_DIR or ~/.claude
	WorkDir    string
}

// ResolvePaths reads the process environment into a Paths value.
func ResolvePaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	return &Paths{
		Home:       home,
		ConfigHome: envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config")),
		CodexHome:  envOr("CODEX_HOME", filepath.Join(home, ".codex")),
		ClaudeHome: envOr("CLAUDE_CONFIG_DIR", filepath.Join(home, ".claude")),
		WorkDir:    cwd,
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Expand substitutes the placeholders used in the agent table
// ($HOME, $XDG_CONFIG, $CODEX_HOME, $CLAUDE_HOME) and a leading ~.
func (p *Paths) Expand(s string) string {
	s = strings.ReplaceAll(s, "$XDG_CONFIG", p.ConfigHome)
	s = strings.ReplaceAll(s, "$CODEX_HOME", p.CodexHome)
	s = strings.ReplaceAll(s, "$CLAUDE_HOME", p.ClaudeHome)
	s = strings.ReplaceAll(s, "$HOME", p.Home)
	if s == "~" {
		return p.Home
	}
	if strings.HasPrefix(s, "~/") {
		return filepath.Join(p.Home, s[2:])
	}
	return s
}

// CanonicalSkillsDir returns the canonical store for the given scope:
// ~/.agents/skills for global installs, <cwd>/.agents/skills otherwise.
func (p *Paths) CanonicalSkillsDir(global bool) string {
	base := p.WorkDir
	if global {
		base = p.Home
	}
	return filepath.Join(base, agentsDirName, skillsSubdir)
}

// AgentSkillsBase returns the skill directory an agent reads for the scope.
// An empty result means the agent has no global skill directory.
func (p *Paths) AgentSkillsBase(agent AgentConfig, global bool) string {
	if global {
		return agent.GlobalSkillsDir
	}
	return filepath.Join(p.WorkDir, agent.SkillsDir)
}

// LockPath returns the lock file location under the home-relative .agents dir.
func (p *Paths) LockPath() string {
	return filepath.Join(p.Home, agentsDirName, lockFileName)
}

// ConfigLocation is a resolved config file path and its scope.
type ConfigLocation struct {
	Path     string
	IsGlobal bool
}

// ConfigLocation returns the config path for the requested scope:
// $XDG_CONFIG_HOME/skil/config.toml for global, <cwd>/.skil.toml otherwise.
func (p *Paths) ConfigLocation(global bool) ConfigLocation {
	if global {
		return ConfigLocation{
			Path:     filepath.Join(p.ConfigHome, configDirName, configFileName),
			IsGlobal: true,
		}
	}
	return ConfigLocation{
		Path:     filepath.Join(p.WorkDir, localConfigFile),
		IsGlobal: false,
	}
}

// ConfigLocationAuto prefers an existing project config and falls back
// to the global one.
func (p *Paths) ConfigLocationAuto() ConfigLocation {
	local := p.ConfigLocation(false)
	if fileExists(local.Path) {
		return local
	}
	return p.ConfigLocation(true)
}
