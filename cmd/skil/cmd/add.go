package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matoous/skil/internal/core"
	"github.com/matoous/skil/internal/tui"
	"github.com/matoous/skil/internal/ui"
)

var addCmd = &cobra.Command{
	Use:     "add <source>",
	Aliases: []string{"a", "install", "i"},
	Short:   "Install skill(s) from a source",
	Long: `Install skill(s) from a git repository or a local directory.

Sources can be:
  owner/repo                GitHub shorthand
  owner/repo/sub/path       GitHub shorthand with a path inside the repo
  ./local/path              Local directory
  https://github.com/...    Full URL (tree/blob URLs keep branch and path)
  https://gitlab.com/...    GitLab and Codeberg URLs work the same way
  git@host:owner/repo.git   SSH clone URL

Skills install into .agents/skills/ (or ~/.agents/skills/ with --global)
and are symlinked into each agent's own skill directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		global, _ := cmd.Flags().GetBool("global")
		copyMode, _ := cmd.Flags().GetBool("copy")
		agentNames, _ := cmd.Flags().GetStringSlice("agent")
		skillNames, _ := cmd.Flags().GetStringSlice("skill")
		listOnly, _ := cmd.Flags().GetBool("list")
		yes, _ := cmd.Flags().GetBool("yes")
		all, _ := cmd.Flags().GetBool("all")
		fullDepth, _ := cmd.Flags().GetBool("full-depth")

		fr, err := d.orchestrator.Fetch(args[0], fullDepth)
		if err != nil {
			return err
		}
		defer fr.Close()

		if listOnly {
			ui.Heading("Skills in %s", fr.Source.Info.SourceID)
			for _, skill := range fr.Skills {
				ui.ListItem(skill.Name, skill.Description)
			}
			return nil
		}

		selected, err := selectSkillsForInstall(fr.Skills, skillNames, yes || all)
		if err != nil {
			return err
		}

		agents, err := core.ResolveAgents(d.paths, d.agents, agentNames)
		if err != nil {
			return err
		}

		mode := core.InstallModeSymlink
		if copyMode {
			mode = core.InstallModeCopy
		}

		summary, err := d.orchestrator.Install(fr, selected, agents, core.InstallOptions{
			Global: global,
			Mode:   mode,
		})
		if err != nil {
			return err
		}
		if summary.LockReset {
			ui.Warn("lock file was outdated and has been rebuilt")
		}

		for _, name := range summary.SkillNames {
			ui.Success("Installed %s", name)
		}
		ui.Info("Agents: %s", joinStrings(summary.AgentNames))
		return nil
	},
}

// selectSkillsForInstall applies the non-interactive selection rules and
// falls back to the picker when a choice is genuinely needed.
func selectSkillsForInstall(skills []core.Skill, requested []string, takeAll bool) ([]core.Skill, error) {
	if len(requested) > 0 {
		selected := core.SelectSkills(skills, requested)
		if len(selected) == 0 {
			return nil, fmt.Errorf("no skills match %s: %w", joinStrings(requested), core.ErrNoSkillsFound)
		}
		return selected, nil
	}
	if takeAll || len(skills) == 1 {
		return skills, nil
	}

	selected, err := tui.PickSkills(skills)
	if err != nil {
		if errors.Is(err, tui.ErrPickerCancelled) {
			return nil, fmt.Errorf("no skills selected")
		}
		return nil, err
	}
	return selected, nil
}

func init() {
	addCmd.Flags().BoolP("global", "g", false, "Install into ~/.agents/skills instead of the project")
	addCmd.Flags().Bool("copy", false, "Copy into agent directories instead of symlinking")
	addCmd.Flags().StringSliceP("agent", "a", nil, "Agents to install for (repeatable; * for all)")
	addCmd.Flags().StringSliceP("skill", "s", nil, "Skills to install by name (repeatable; * for all)")
	addCmd.Flags().BoolP("list", "l", false, "List the source's skills without installing")
	addCmd.Flags().BoolP("yes", "y", false, "Skip prompts and install every discovered skill")
	addCmd.Flags().Bool("all", false, "Install every discovered skill")
	addCmd.Flags().Bool("full-depth", false, "Walk the whole repository when discovering skills")
	_ = addCmd.Flags().MarkHidden("full-depth")

	rootCmd.AddCommand(addCmd)
}
