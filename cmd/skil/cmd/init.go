package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matoous/skil/internal/core"
	"github.com/matoous/skil/internal/ui"
)

const skillTemplate = `---
name: %s
description: Describe when an agent should reach for this skill.
---

# %s

Explain the skill here. The description above is what agents read when
deciding whether to load the full instructions.

## Instructions

1. Step one.
2. Step two.
`

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Scaffold a new skill",
	Long: `Create <name>/SKILL.md with template frontmatter. Without a name the
SKILL.md is written into the current directory, named after it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name, dir string
		if len(args) > 0 {
			name = args[0]
			dir = core.SanitizeName(name)
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			name = filepath.Base(cwd)
			dir = "."
		}

		skillFile := filepath.Join(dir, "SKILL.md")
		if _, err := os.Stat(skillFile); err == nil {
			return fmt.Errorf("%s already exists", skillFile)
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		content := fmt.Sprintf(skillTemplate, name, name)
		if err := os.WriteFile(skillFile, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", skillFile, err)
		}

		ui.Success("Created %s", skillFile)
		if dir != "." {
			ui.Info("Edit the frontmatter, then install with: skil add ./%s", dir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
