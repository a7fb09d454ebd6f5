package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListInstalled scans the canonical store for the scope and returns the
// installed skills, each annotated with the agents that hold it. Store
// entries without a parseable SKILL.md are listed by directory name only.
func ListInstalled(paths *Paths, agents []AgentConfig, global bool) ([]InstalledSkill, error) {
	store := paths.CanonicalSkillsDir(global)
	entries, err := os.ReadDir(store)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading skill store: %w", err)
	}

	var installed []InstalledSkill
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(store, entry.Name())
		skill := InstalledSkill{
			Name:    entry.Name(),
			DirName: entry.Name(),
			Path:    dir,
		}
		if parsed, err := ParseSkillMD(filepath.Join(dir, skillFileName)); err == nil && parsed != nil {
			skill.Name = parsed.Name
			skill.Description = parsed.Description
			skill.RawContent = parsed.RawContent
		}
		skill.Agents = agentsHolding(paths, agents, entry.Name(), global)
		installed = append(installed, skill)
	}

	sort.Slice(installed, func(i, j int) bool {
		return installed[i].Name < installed[j].Name
	})
	return installed, nil
}

// agentsHolding reports which agents have a link or copy of the store entry.
func agentsHolding(paths *Paths, agents []AgentConfig, dirName string, global bool) []string {
	var holders []string
	for _, agent := range agents {
		base := paths.AgentSkillsBase(agent, global)
		if base == "" {
			continue
		}
		if pathExists(filepath.Join(base, dirName)) {
			holders = append(holders, agent.DisplayName)
		}
	}
	return holders
}
