package core

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/tailscale/hujson"
)

//go:embed agents.jsonc
var embeddedAgentsJSONC []byte

// LoadAgents parses the embedded agent table and expands the global skill
// directory placeholders against the resolved paths.
func LoadAgents(paths *Paths) ([]AgentConfig, error) {
	std, err := hujson.Standardize(embeddedAgentsJSONC)
	if err != nil {
		return nil, fmt.Errorf("standardizing agent definitions: %w", err)
	}
	var agents []AgentConfig
	if err := json.Unmarshal(std, &agents); err != nil {
		return nil, fmt.Errorf("parsing agent definitions: %w", err)
	}
	for i := range agents {
		agents[i].GlobalSkillsDir = paths.Expand(agents[i].GlobalSkillsDir)
	}
	return agents, nil
}

// ResolveAgents maps requested agent names onto configs. An empty request
// falls back to detection; a lone "*" selects every known agent. Explicitly
// requested names must exist.
func ResolveAgents(paths *Paths, agents []AgentConfig, requested []string) ([]AgentConfig, error) {
	if len(requested) == 0 {
		return detectDefaultAgents(paths, agents), nil
	}
	if len(requested) == 1 && requested[0] == "*" {
		return agents, nil
	}

	byName := make(map[string]AgentConfig, len(agents))
	for _, a := range agents {
		byName[a.Name] = a
	}

	var selected []AgentConfig
	for _, name := range requested {
		agent, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownAgent, name, knownAgentNames(agents))
		}
		selected = append(selected, agent)
	}
	return selected, nil
}

// detectDefaultAgents picks agents whose config directories exist on this
// machine, defaulting to codex when nothing is detected.
func detectDefaultAgents(paths *Paths, agents []AgentConfig) []AgentConfig {
	candidates := []struct {
		name string
		dir  string
	}{
		{"codex", paths.CodexHome},
		{"claude-code", paths.ClaudeHome},
		{"opencode", filepath.Join(paths.ConfigHome, "opencode")},
	}

	byName := make(map[string]AgentConfig, len(agents))
	for _, a := range agents {
		byName[a.Name] = a
	}

	var detected []AgentConfig
	for _, c := range candidates {
		if agent, ok := byName[c.name]; ok && dirExists(c.dir) {
			detected = append(detected, agent)
		}
	}

	if len(detected) == 0 {
		if agent, ok := byName["codex"]; ok {
			detected = append(detected, agent)
		}
	}
	return detected
}

func knownAgentNames(agents []AgentConfig) string {
	names := ""
	for i, a := range agents {
		if i > 0 {
			names += ", "
		}
		names += a.Name
	}
	return names
}
