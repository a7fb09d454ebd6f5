package core

import (
	"fmt"
	"os"
)

// Orchestrator drives the add pipeline: resolve a source, fetch it when
// remote, discover skills, install selections, and reconcile config and
// lock state.
type Orchestrator struct {
	paths     *Paths
	installer *Installer
	lock      *LockStore
}

// NewOrchestrator wires the pipeline over resolved paths.
func NewOrchestrator(paths *Paths) *Orchestrator {
	return &Orchestrator{
		paths:     paths,
		installer: NewInstaller(paths),
		lock:      NewLockStore(paths),
	}
}

// Paths exposes the resolved environment for callers that need locations.
func (o *Orchestrator) Paths() *Paths {
	return o.paths
}

// Lock exposes the lock store (remove needs it directly).
func (o *Orchestrator) Lock() *LockStore {
	return o.lock
}

// FetchResult is a resolved and discovered source, ready for selection and
// install. Close releases the clone scratch directory for git sources.
type FetchResult struct {
	Source   *Source
	BaseDir  string // source root on disk: local path or clone directory
	Skills   []Skill
	Revision string // HEAD of the clone; empty for local sources
	cleanup  func()
}

// Close removes any scratch directory held by the fetch.
func (fr *FetchResult) Close() {
	if fr.cleanup != nil {
		fr.cleanup()
		fr.cleanup = nil
	}
}

// Fetch resolves input, clones it when remote, and discovers its skills.
// The caller owns the result and must Close it.
func (o *Orchestrator) Fetch(input string, fullDepth bool) (*FetchResult, error) {
	source, err := ParseSource(input)
	if err != nil {
		return nil, err
	}
	return o.FetchSource(source, fullDepth)
}

// FetchSource is Fetch for an already-parsed source (update re-enters here).
func (o *Orchestrator) FetchSource(source *Source, fullDepth bool) (*FetchResult, error) {
	fr := &FetchResult{Source: source}

	if source.IsLocal() {
		fr.BaseDir = source.LocalPath
	} else {
		tmpDir, err := os.MkdirTemp("", "skil-clone-*")
		if err != nil {
			return nil, fmt.Errorf("creating temp dir: %w", err)
		}
		fr.cleanup = func() { _ = os.RemoveAll(tmpDir) }

		if err := CloneRepo(source.CloneURL, source.Info.Branch, tmpDir); err != nil {
			fr.Close()
			return nil, err
		}
		fr.BaseDir = tmpDir

		if rev, err := HeadRevision(tmpDir); err == nil {
			fr.Revision = rev
		}
	}

	skills, err := DiscoverSkills(fr.BaseDir, source.SubPath, fullDepth)
	if err != nil {
		fr.Close()
		return nil, err
	}
	if len(skills) == 0 {
		fr.Close()
		return nil, ErrNoSkillsFound
	}
	fr.Skills = skills

	return fr, nil
}

// InstallOptions configures an install run.
type InstallOptions struct {
	Global bool
	Mode   InstallMode
	// ConfigPath overrides the scope-derived config location (tests).
	ConfigPath string
}

// InstallSummary reports what an install run did.
type InstallSummary struct {
	SkillNames []string
	AgentNames []string
	LockReset  bool // an outdated lock file was discarded and rebuilt
}

// Install writes each selected skill for each agent, then records the
// result in config and lock. Any (skill, agent) failure aborts the run.
func (o *Orchestrator) Install(fr *FetchResult, skills []Skill, agents []AgentConfig, opts InstallOptions) (*InstallSummary, error) {
	summary := &InstallSummary{}

	for _, skill := range skills {
		for _, agent := range agents {
			if err := o.installer.InstallSkill(skill, agent, opts.Global, opts.Mode); err != nil {
				return nil, fmt.Errorf("installing skill %q: %w", skill.Name, err)
			}
		}
		summary.SkillNames = append(summary.SkillNames, skill.Name)
	}
	for _, agent := range agents {
		summary.AgentNames = append(summary.AgentNames, agent.DisplayName)
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = o.paths.ConfigLocation(opts.Global).Path
	}

	info := fr.Source.Info
	def := SkilSource{
		SourceType: string(info.SourceType),
		Branch:     info.Branch,
		Subpath:    fr.Source.SubPath,
	}
	if err := UpdateConfig(configPath, info.SourceID, def, summary.SkillNames, fr.Revision); err != nil {
		return nil, err
	}

	for _, skill := range skills {
		reset, err := o.lock.UpdateForSkill(skill, info, fr.BaseDir)
		if err != nil {
			return nil, err
		}
		summary.LockReset = summary.LockReset || reset
	}

	return summary, nil
}
