package cmd

import (
	"fmt"

	"github.com/matoous/skil/internal/core"
)

// deps holds shared dependencies for CLI commands.
type deps struct {
	paths        *core.Paths
	agents       []core.AgentConfig
	orchestrator *core.Orchestrator
}

// newDeps resolves the environment once per command invocation.
func newDeps() (*deps, error) {
	paths, err := core.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("resolving environment: %w", err)
	}
	agents, err := core.LoadAgents(paths)
	if err != nil {
		return nil, fmt.Errorf("loading agent table: %w", err)
	}

	return &deps{
		paths:        paths,
		agents:       agents,
		orchestrator: core.NewOrchestrator(paths),
	}, nil
}

// joinStrings concatenates string slices with ", " separator.
func joinStrings(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	result := ss[0]
	for _, s := range ss[1:] {
		result += ", " + s
	}
	return result
}
