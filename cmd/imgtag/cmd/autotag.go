package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"imgtag/internal/application/commands"
	"imgtag/internal/domain"
)

var (
	autoTagPolicy       string
	autoTagMaxDepth     int
	autoTagFromFilename bool
	autoTagDryRun       bool
)

var autoTagCmd = &cobra.Command{
	Use:   "auto-tag",
	Short: "Generate tags from each image's location under the root",
	Long: `Derive tags from every image's folder path and reconcile them onto the
file. A file at Ireland/Coast/cliff.png gets the tags "ireland",
"coast" and the hierarchical tag "ireland/coast".

The policy controls how generated tags meet existing ones:
  merge      keep existing tags and add the generated ones (default)
  overwrite  replace existing tags with the generated ones
  add-only   only tag files that carry no tags yet

Examples:
  imgtag auto-tag
  imgtag auto-tag --policy add-only --from-filename
  imgtag auto-tag --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := domain.ParsePolicy(autoTagPolicy)
		if err != nil {
			return err
		}

		store, err := GetStore()
		if err != nil {
			return err
		}

		autoCmd := commands.NewAutoTagCommand(GetScanner(), store, rootPath)
		autoCmd.Policy = policy
		autoCmd.MaxDepth = autoTagMaxDepth
		autoCmd.FromFilename = autoTagFromFilename
		autoCmd.DryRun = autoTagDryRun
		autoCmd.Workers = workers

		result, err := autoCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		printSummary(result.Summary)
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	autoTagCmd.Flags().StringVar(&autoTagPolicy, "policy", "merge", "reconciliation policy: merge, overwrite or add-only")
	autoTagCmd.Flags().IntVar(&autoTagMaxDepth, "max-depth", 0, "only derive tags from the first N path segments (0 = all)")
	autoTagCmd.Flags().BoolVar(&autoTagFromFilename, "from-filename", false, "also derive tags from filename tokens")
	autoTagCmd.Flags().BoolVarP(&autoTagDryRun, "dry-run", "n", false, "show what would change without writing")
	rootCmd.AddCommand(autoTagCmd)
}
