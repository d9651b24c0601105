package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"imgtag/internal/application"
	"imgtag/internal/application/commands"
)

var tagRecursive bool

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Add, remove or clear tags on images",
}

var tagAddCmd = &cobra.Command{
	Use:   "add <path> <tag>...",
	Short: "Add tags to an image or every image under a directory",
	Long: `Add one or more tags to the images at the given path. Adding a tag
that is already present is a no-op; the file is not rewritten.

Examples:
  imgtag tag add holiday/cove.jpg ireland coast
  imgtag tag add holiday/ ireland -R`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApplyTags(args[0], args[1:], commands.TagModeAdd)
	},
}

var tagRemoveAll bool

var tagRemoveCmd = &cobra.Command{
	Use:   "remove <path> [tag]...",
	Short: "Remove tags from an image or every image under a directory",
	Long: `Remove one or more tags from the images at the given path, or every
tag with --all. Removing an absent tag is a no-op.

Examples:
  imgtag tag remove holiday/cove.jpg coast
  imgtag tag remove holiday/ draft -R
  imgtag tag remove holiday/cove.jpg --all`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if tagRemoveAll {
			if len(args) > 1 {
				return fmt.Errorf("--all cannot be combined with explicit tags")
			}
			return runApplyTags(args[0], nil, commands.TagModeClear)
		}
		if len(args) < 2 {
			return fmt.Errorf("provide tags to remove, or --all")
		}
		return runApplyTags(args[0], args[1:], commands.TagModeRemove)
	},
}

func runApplyTags(path string, tags []string, mode commands.TagMode) error {
	store, err := GetStore()
	if err != nil {
		return err
	}

	applyCmd := commands.NewApplyTagsCommand(GetScanner(), store, path, tags, mode)
	applyCmd.Recursive = tagRecursive
	applyCmd.Workers = workers

	result, err := applyCmd.Execute(context.Background())
	if err != nil {
		return err
	}

	printSummary(result.Summary)
	fmt.Println(result.Message)
	return nil
}

// printSummary renders per-file outcomes and the closing counts line.
// Successes are only listed in verbose mode; problems always are.
func printSummary(summary *application.RunSummary) {
	for _, item := range summary.Items() {
		switch item.Outcome {
		case application.OutcomeError:
			fmt.Printf("  error    %s: %v\n", item.Path, item.Err)
		case application.OutcomeWarning:
			fmt.Printf("  warning  %s: %s\n", item.Path, item.Detail)
		default:
			if verbose {
				fmt.Printf("  %-8s %s  %s\n", item.Outcome, item.Path, item.Detail)
			}
		}
	}
	fmt.Println(summary.Footer())
}

func init() {
	tagCmd.PersistentFlags().BoolVarP(&tagRecursive, "recursive", "R", false, "descend into subdirectories")
	tagRemoveCmd.Flags().BoolVar(&tagRemoveAll, "all", false, "remove every tag instead of a listed subset")
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRemoveCmd)
	rootCmd.AddCommand(tagCmd)
}
