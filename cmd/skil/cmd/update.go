package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matoous/skil/internal/core"
	"github.com/matoous/skil/internal/ui"
)

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"upgrade"},
	Short:   "Reinstall skills from sources that changed upstream",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		loc := configLocationForFlags(cmd, d.paths)
		statuses, err := core.CheckSources(loc.Path)
		if err != nil {
			return err
		}

		var stale []core.SourceStatus
		for _, status := range statuses {
			if status.Err != nil {
				ui.Error("%s: %v", status.Key, status.Err)
				continue
			}
			if status.Stale {
				stale = append(stale, status)
			}
		}
		if len(stale) == 0 {
			ui.Info("Everything is up to date.")
			return nil
		}

		agentNames, _ := cmd.Flags().GetStringSlice("agent")
		agents, err := core.ResolveAgents(d.paths, d.agents, agentNames)
		if err != nil {
			return err
		}

		outcomes := core.UpdateSources(d.orchestrator, agents, stale, loc.IsGlobal, loc.Path)

		failed := 0
		for _, outcome := range outcomes {
			if outcome.Err != nil {
				ui.Error("%s: %v", outcome.Key, outcome.Err)
				failed++
				continue
			}
			ui.Success("Updated %s (%s)", outcome.Key, joinStrings(outcome.Skills))
		}
		if failed > 0 {
			return fmt.Errorf("%d source(s) failed to update", failed)
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolP("global", "g", false, "Update the global config's sources")
	updateCmd.Flags().StringSliceP("agent", "a", nil, "Agents to install for (repeatable; * for all)")

	rootCmd.AddCommand(updateCmd)
}
