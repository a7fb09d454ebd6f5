package core

import "path/filepath"

// RemoveResult reports what a removal touched.
type RemoveResult struct {
	DirName       string   // sanitized directory name that was removed
	AgentsCleared []string // display names of agents whose copy was removed
	ConfigChanged bool
}

// RemoveSkill deletes a skill's canonical copy and every agent's link or
// copy of it, then drops it from the lock file and the config.
func (o *Orchestrator) RemoveSkill(name string, agents []AgentConfig, global bool) (*RemoveResult, error) {
	dirName := SanitizeName(name)
	result := &RemoveResult{DirName: dirName}

	if err := removePath(o.installer.CanonicalDir(name, global)); err != nil {
		return nil, err
	}

	for _, agent := range agents {
		base := o.paths.AgentSkillsBase(agent, global)
		if base == "" {
			continue
		}
		agentDir := filepath.Join(base, dirName)
		if !pathExists(agentDir) {
			continue
		}
		if err := removePath(agentDir); err != nil {
			return nil, err
		}
		result.AgentsCleared = append(result.AgentsCleared, agent.DisplayName)
	}

	if err := o.lock.RemoveEntry(name); err != nil {
		return nil, err
	}

	// Config pruning follows the same scope as the store, matching Install.
	loc := o.paths.ConfigLocation(global)
	changed, err := RemoveSkillFromConfig(loc.Path, name)
	if err != nil {
		return nil, err
	}
	result.ConfigChanged = changed

	return result, nil
}
