package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matoous/skil/internal/core"
	"github.com/matoous/skil/internal/tui"
	"github.com/matoous/skil/internal/ui"
)

var removeCmd = &cobra.Command{
	Use:     "remove [skills...]",
	Aliases: []string{"rm", "r", "uninstall"},
	Short:   "Remove installed skills",
	Long: `Remove skills from the canonical store and from every agent
directory that links or copies them, and drop them from config and lock.

Pass skill names as arguments (or via --skill), or --all to remove
everything installed in the chosen scope.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		global, _ := cmd.Flags().GetBool("global")
		yes, _ := cmd.Flags().GetBool("yes")
		all, _ := cmd.Flags().GetBool("all")
		agentNames, _ := cmd.Flags().GetStringSlice("agent")
		skillFlags, _ := cmd.Flags().GetStringSlice("skill")

		names := append(append([]string{}, args...), skillFlags...)
		if all {
			installed, err := core.ListInstalled(d.paths, d.agents, global)
			if err != nil {
				return err
			}
			names = names[:0]
			for _, skill := range installed {
				names = append(names, skill.Name)
			}
			if len(names) == 0 {
				ui.Info("No skills installed.")
				return nil
			}
		}
		if len(names) == 0 {
			return fmt.Errorf("no skills given: pass skill names or --all")
		}

		// Default to every known agent so no directory keeps a stale link.
		agents := d.agents
		if len(agentNames) > 0 {
			agents, err = core.ResolveAgents(d.paths, d.agents, agentNames)
			if err != nil {
				return err
			}
		}

		if !yes {
			ok, err := tui.Confirm(fmt.Sprintf("Remove %s?", joinStrings(names)))
			if err != nil {
				return err
			}
			if !ok {
				ui.Info("Aborted.")
				return nil
			}
		}

		for _, name := range names {
			result, err := d.orchestrator.RemoveSkill(name, agents, global)
			if err != nil {
				return err
			}
			ui.Success("Removed %s", name)
			if len(result.AgentsCleared) > 0 {
				ui.Info("Cleared from: %s", joinStrings(result.AgentsCleared))
			}
		}
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolP("global", "g", false, "Remove from the global store")
	removeCmd.Flags().StringSliceP("agent", "a", nil, "Agents to clear (repeatable; default all)")
	removeCmd.Flags().StringSliceP("skill", "s", nil, "Skills to remove by name (repeatable)")
	removeCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	removeCmd.Flags().Bool("all", false, "Remove every installed skill in the scope")

	rootCmd.AddCommand(removeCmd)
}
