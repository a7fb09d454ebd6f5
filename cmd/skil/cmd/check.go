package cmd

import (
	"github.com/spf13/cobra"

	"github.com/matoous/skil/internal/core"
	"github.com/matoous/skil/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configured sources for upstream changes",
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
		if len(statuses) == 0 {
			ui.Info("No git-backed sources configured.")
			return nil
		}

		stale := 0
		for _, status := range statuses {
			switch {
			case status.Err != nil:
				ui.Error("%s: %v", status.Key, status.Err)
			case status.Stale:
				note := "update available"
				if status.LatestTag != "" {
					note += " (latest tag " + status.LatestTag + ")"
				}
				ui.ListItem(status.Key, note)
				stale++
			default:
				ui.ListItem(status.Key, "up to date")
			}
		}
		if stale > 0 {
			ui.Info("\nRun \"skil update\" to update.")
		}
		return nil
	},
}

// configLocationForFlags honors --global when set, otherwise prefers the
// project config when one exists.
func configLocationForFlags(cmd *cobra.Command, paths *core.Paths) core.ConfigLocation {
	if global, _ := cmd.Flags().GetBool("global"); global {
		return paths.ConfigLocation(true)
	}
	return paths.ConfigLocationAuto()
}

func init() {
	checkCmd.Flags().BoolP("global", "g", false, "Check the global config")

	rootCmd.AddCommand(checkCmd)
}
