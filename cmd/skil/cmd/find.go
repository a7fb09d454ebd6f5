package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matoous/skil/internal/search"
	"github.com/matoous/skil/internal/ui"
)

var findCmd = &cobra.Command{
	Use:     "find [query]",
	Aliases: []string{"search", "f", "s"},
	Short:   "Search GitHub for skill repositories",
	Long: `Search GitHub for repositories tagged with the agent-skills topic.
Results can be installed directly with "skil add <source>".`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := search.NewClient()
		results, err := client.Search(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if len(results) == 0 {
			ui.Info("No repositories found.")
			return nil
		}

		ui.Heading("Skill repositories")
		for _, r := range results {
			annotation := r.Description
			if r.Stars > 0 {
				annotation = fmt.Sprintf("★ %d  %s", r.Stars, r.Description)
			}
			ui.ListItem(r.Source, annotation)
		}
		ui.Info("\nInstall with: skil add <owner/repo>")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}
