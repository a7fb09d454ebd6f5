package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAgents(t *testing.T) {
	paths := testPaths(t)
	agents, err := LoadAgents(paths)
	if err != nil {
		t.Fatal(err)
	}
	if len(agents) == 0 {
		t.Fatal("no agents loaded from the embedded table")
	}

	byName := make(map[string]AgentConfig)
	for _, a := range agents {
		if a.Name == "" || a.DisplayName == "" || a.SkillsDir == "" {
			t.Errorf("incomplete agent entry: %+v", a)
		}
		byName[a.Name] = a
	}

	codex, ok := byName["codex"]
	if !ok {
		t.Fatal("codex missing from agent table")
	}
	if codex.GlobalSkillsDir != filepath.Join(paths.CodexHome, "skills") {
		t.Errorf("codex GlobalSkillsDir = %q, want expanded $CODEX_HOME", codex.GlobalSkillsDir)
	}

	claude, ok := byName["claude-code"]
	if !ok {
		t.Fatal("claude-code missing from agent table")
	}
	if claude.GlobalSkillsDir != filepath.Join(paths.ClaudeHome, "skills") {
		t.Errorf("claude-code GlobalSkillsDir = %q", claude.GlobalSkillsDir)
	}
}

func TestResolveAgents(t *testing.T) {
	paths := testPaths(t)
	agents, err := LoadAgents(paths)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("explicit names", func(t *testing.T) {
		got, err := ResolveAgents(paths, agents, []string{"codex", "cursor"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].Name != "codex" || got[1].Name != "cursor" {
			t.Errorf("got %v", got)
		}
	})

	t.Run("wildcard", func(t *testing.T) {
		got, err := ResolveAgents(paths, agents, []string{"*"})
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(agents) {
			t.Errorf("got %d agents, want all %d", len(got), len(agents))
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ResolveAgents(paths, agents, []string{"not-an-agent"})
		if !errors.Is(err, ErrUnknownAgent) {
			t.Errorf("err = %v, want ErrUnknownAgent", err)
		}
	})

	t.Run("detection", func(t *testing.T) {
		// Nothing exists: falls back to codex.
		got, err := ResolveAgents(paths, agents, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].Name != "codex" {
			t.Errorf("fallback = %v, want codex", got)
		}

		// A claude config dir makes claude-code a default too.
		if err := os.MkdirAll(paths.ClaudeHome, 0o755); err != nil {
			t.Fatal(err)
		}
		got, err = ResolveAgents(paths, agents, nil)
		if err != nil {
			t.Fatal(err)
		}
		found := false
		for _, a := range got {
			if a.Name == "claude-code" {
				found = true
			}
		}
		if !found {
			t.Errorf("detected = %v, want claude-code included", got)
		}
	})
}
