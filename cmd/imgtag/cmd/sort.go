package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"imgtag/internal/adapters/tui"
	"imgtag/internal/application/commands"
	"imgtag/internal/domain"
	"imgtag/internal/ports"
)

var (
	sortTags      []string
	sortHierarchy bool
	sortLink      bool
	sortClear     bool
	sortDryRun    bool

	unsortTag string
	unsortYes bool
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Build the by-tag sorted view under _sorted/",
	Long: `Materialize a browsable by-tag view of the collection: one folder per
tag under <root>/_sorted, holding a copy of every image carrying that
tag. The view is derived state; originals never move, and the whole
subtree can be deleted (imgtag unsort) and rebuilt at any time.

Destinations that already exist are skipped, so repeated runs converge.
Use --clear to tear the view down first and rebuild it from scratch.

Examples:
  imgtag sort
  imgtag sort --tag ireland --tag dog
  imgtag sort --clear --link`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := GetStore()
		if err != nil {
			return err
		}

		srtCmd := commands.NewSortCommand(GetScanner(), store, GetFiles(), rootPath)
		srtCmd.Opts = domain.SortViewOptions{
			Tags:              domain.NewTagSet(sortTags...),
			PreserveHierarchy: sortHierarchy,
		}
		srtCmd.Link = sortLink
		srtCmd.Clear = sortClear
		srtCmd.DryRun = sortDryRun
		srtCmd.Workers = workers

		result, err := srtCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		printSummary(result.Summary)
		fmt.Println(result.Message)
		return nil
	},
}

var unsortCmd = &cobra.Command{
	Use:   "unsort",
	Short: "Delete the sorted view",
	Long: `Delete <root>/_sorted, or a single tag folder inside it with --tag.
Only the sorted view is ever touched; original images are never at
risk. A missing view is a no-op.

Examples:
  imgtag unsort
  imgtag unsort --tag ireland
  imgtag unsort --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var confirm ports.Confirmer = tui.NewConfirmer()
		if unsortYes {
			confirm = ports.StaticConfirmer(true)
		}

		unsCmd := commands.NewUnsortCommand(GetFiles(), confirm, rootPath)
		unsCmd.Tag = unsortTag

		result, err := unsCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	sortCmd.Flags().StringArrayVar(&sortTags, "tag", nil, "only build these tag folders (repeatable)")
	sortCmd.Flags().BoolVar(&sortHierarchy, "preserve-hierarchy", false, "nest copies under their original folder path")
	sortCmd.Flags().BoolVar(&sortLink, "link", false, "hard-link instead of copying")
	sortCmd.Flags().BoolVar(&sortClear, "clear", false, "tear the view down first and rebuild from scratch")
	sortCmd.Flags().BoolVarP(&sortDryRun, "dry-run", "n", false, "show the plan without copying")
	unsortCmd.Flags().StringVar(&unsortTag, "tag", "", "only delete this tag folder")
	unsortCmd.Flags().BoolVarP(&unsortYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(unsortCmd)
}
