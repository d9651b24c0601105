package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"imgtag/internal/application"
	"imgtag/internal/application/commands"
)

var (
	exportOut         string
	exportRelative    bool
	exportNoRecursive bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all tags to CSV",
	Long: `Write the path and tag set of every image under the root in the
filepath,tags interchange format. Tag lists are sorted, so exporting
an unchanged collection twice produces byte-identical files.

Examples:
  imgtag export -o backup.csv
  imgtag export --relative > backup.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("cannot create %s: %w", exportOut, err)
			}
			defer f.Close()
			out = f
		}

		store, err := GetStore()
		if err != nil {
			return err
		}

		exportCmd := commands.NewExportCommand(GetScanner(), store, rootPath, out)
		exportCmd.Relative = exportRelative
		exportCmd.Recursive = !exportNoRecursive

		result, err := exportCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		// the CSV may be going to stdout, so diagnostics go to stderr
		for _, item := range result.Summary.Items() {
			if item.Outcome == application.OutcomeError {
				fmt.Fprintf(os.Stderr, "warning: %s not exported: %v\n", item.Path, item.Err)
			}
		}

		if exportOut != "" {
			fmt.Printf("%s -> %s\n", result.Message, exportOut)
		} else if result.Summary.HasErrors() {
			fmt.Fprintln(os.Stderr, result.Message)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "write to this file instead of stdout")
	exportCmd.Flags().BoolVar(&exportRelative, "relative", false, "write root-relative instead of absolute paths")
	exportCmd.Flags().BoolVar(&exportNoRecursive, "no-recursive", false, "only export the root directory itself")
	rootCmd.AddCommand(exportCmd)
}
