package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"imgtag/internal/application/commands"
	"imgtag/internal/domain"
	"imgtag/internal/interchange"
)

var (
	importPolicy string
	importDryRun bool
	importForce  bool
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import tags from a CSV backup",
	Long: `Restore tag sets from a filepath,tags CSV onto the files under the
root. The file is validated first; an INVALID file blocks the import
unless --force is given. Rows whose path no longer resolves are
skipped with a warning.

The policy controls how imported tags meet existing ones:
  merge      keep existing tags and add the imported ones (default)
  overwrite  replace existing tags with the imported ones
  add-only   only restore onto files that carry no tags yet

Examples:
  imgtag import backup.csv
  imgtag import backup.csv --policy overwrite --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := domain.ParsePolicy(importPolicy)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", args[0], err)
		}
		defer f.Close()

		store, err := GetStore()
		if err != nil {
			return err
		}

		impCmd := commands.NewImportCommand(store, rootPath, f)
		impCmd.Policy = policy
		impCmd.DryRun = importDryRun
		impCmd.Force = importForce
		impCmd.Workers = workers

		result, err := impCmd.Execute(context.Background())
		if err != nil {
			if result != nil && result.Report != nil {
				printIssues(result.Report)
			}
			return err
		}

		printIssues(result.Report)
		printSummary(result.Summary)
		fmt.Println(result.Message)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <file.csv>",
	Short: "Validate a CSV backup without importing it",
	Long: `Check a filepath,tags CSV for structural problems and unresolvable
paths, and print the overall status: VALID, VALID_WITH_WARNINGS or
INVALID. Nothing is written.

With --csv the findings are printed as filepath,status,issue rows.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asCSV, _ := cmd.Flags().GetBool("csv")

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", args[0], err)
		}
		defer f.Close()

		valCmd := commands.NewValidateCSVCommand(rootPath, f)
		report, _, err := valCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		if asCSV {
			return interchange.EncodeIssues(os.Stdout, report.Issues)
		}

		printIssues(report)
		warnings, errs := report.Counts()
		fmt.Printf("%s: %d rows, %d warnings, %d errors\n",
			report.Status(), report.RowsTotal, warnings, errs)
		return nil
	},
}

func printIssues(report *interchange.Report) {
	for _, is := range report.Issues {
		if is.Path == "" {
			fmt.Printf("  %-7s line %d: %s\n", is.Level, is.Line, is.Message)
			continue
		}
		fmt.Printf("  %-7s %s: %s\n", is.Level, is.Path, is.Message)
	}
}

func init() {
	importCmd.Flags().StringVar(&importPolicy, "policy", "merge", "reconciliation policy: merge, overwrite or add-only")
	importCmd.Flags().BoolVarP(&importDryRun, "dry-run", "n", false, "show what would change without writing")
	importCmd.Flags().BoolVar(&importForce, "force", false, "import the valid rows of an INVALID file")
	validateCmd.Flags().Bool("csv", false, "print findings as filepath,status,issue rows")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(validateCmd)
}
