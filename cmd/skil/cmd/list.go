package cmd

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/matoous/skil/internal/core"
	"github.com/matoous/skil/internal/ui"
)

const listDescriptionWidth = 72

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps()
		if err != nil {
			return err
		}

		global, _ := cmd.Flags().GetBool("global")
		long, _ := cmd.Flags().GetBool("long")

		installed, err := core.ListInstalled(d.paths, d.agents, global)
		if err != nil {
			return err
		}
		if len(installed) == 0 {
			ui.Info("No skills installed.")
			return nil
		}

		if long {
			return renderLong(installed)
		}

		scope := "project"
		if global {
			scope = "global"
		}
		ui.Heading("Installed skills (%s)", scope)
		for _, skill := range installed {
			annotation := ansi.Truncate(skill.Description, listDescriptionWidth, "…")
			if len(skill.Agents) > 0 {
				annotation += " [" + joinStrings(skill.Agents) + "]"
			}
			ui.ListItem(skill.Name, annotation)
		}
		return nil
	},
}

// renderLong prints each skill's full SKILL.md rendered as markdown.
func renderLong(installed []core.InstalledSkill) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}

	for _, skill := range installed {
		if skill.RawContent == "" {
			ui.Heading("%s", skill.Name)
			ui.Info("%s", ui.Muted("no SKILL.md content"))
			continue
		}
		out, err := renderer.Render(skill.RawContent)
		if err != nil {
			return err
		}
		ui.Info("%s", out)
	}
	return nil
}

func init() {
	listCmd.Flags().BoolP("global", "g", false, "List the global store")
	listCmd.Flags().Bool("long", false, "Render each skill's full SKILL.md")

	rootCmd.AddCommand(listCmd)
}
