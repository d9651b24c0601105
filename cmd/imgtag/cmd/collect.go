package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"imgtag/internal/application/commands"
	"imgtag/internal/domain"
)

var (
	collectDest       string
	collectDuplicates string
	collectLink       bool
	collectDryRun     bool
)

var collectCmd = &cobra.Command{
	Use:   "collect <names-file>",
	Short: "Assemble the files named in a list into one directory",
	Long: `Copy the files named in the list into the destination directory,
matching bare filenames anywhere under the root. The list is either
one filename per line or a CSV with a "filename" column.

Names matching more than one file are resolved by the duplicate
policy:
  first  take the lexicographically first match (default)
  all    take every match, suffixing colliding names (_1, _2, ...)
  skip   take none and report the ambiguity

Sources are never moved or deleted. Names with no match are reported,
never silently dropped.

Examples:
  imgtag collect picks.txt -d /tmp/album
  imgtag collect picks.csv -d /tmp/album --duplicates all --link`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := domain.ParseDuplicatePolicy(collectDuplicates)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", args[0], err)
		}
		defer f.Close()

		colCmd := commands.NewCollectCommand(GetScanner(), GetFiles(), rootPath, collectDest, f)
		colCmd.Duplicates = policy
		colCmd.Link = collectLink
		colCmd.DryRun = collectDryRun

		result, err := colCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		printSummary(result.Summary)
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	collectCmd.Flags().StringVarP(&collectDest, "dest", "d", "", "destination directory (required)")
	collectCmd.Flags().StringVar(&collectDuplicates, "duplicates", "first", "duplicate policy: first, all or skip")
	collectCmd.Flags().BoolVar(&collectLink, "link", false, "hard-link instead of copying")
	collectCmd.Flags().BoolVarP(&collectDryRun, "dry-run", "n", false, "show the plan without copying")
	collectCmd.MarkFlagRequired("dest")
	rootCmd.AddCommand(collectCmd)
}
