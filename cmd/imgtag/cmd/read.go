package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"imgtag/internal/application"
	"imgtag/internal/application/commands"
	"imgtag/internal/interchange"
)

var (
	readRecursive bool
	readFormat    string
	readOut       string
)

var readCmd = &cobra.Command{
	Use:   "read <path>",
	Short: "Show the embedded tags of images",
	Long: `Read and print the embedded tag set of the images at the given path.
With --format csv the output is the same filepath,tags format export
produces, suitable for re-import.

Examples:
  imgtag read holiday/cove.jpg
  imgtag read holiday/ -R --format csv -o subset.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := application.ParseOutputFormat(readFormat)
		if err != nil {
			return err
		}

		out, closeOut, err := openOutput(readOut)
		if err != nil {
			return err
		}
		defer closeOut()

		store, err := GetStore()
		if err != nil {
			return err
		}

		readCmd := commands.NewReadTagsCommand(GetScanner(), store, args[0])
		readCmd.Recursive = readRecursive

		entries, err := readCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		if format == application.FormatCSV {
			records := make([]interchange.Record, 0, len(entries))
			for _, e := range entries {
				if e.Err != nil {
					fmt.Fprintf(os.Stderr, "warning: %s: %v\n", e.RelativePath, e.Err)
					continue
				}
				records = append(records, interchange.Record{Path: e.RelativePath, Tags: e.Tags})
			}
			return interchange.Encode(out, records)
		}

		for _, e := range entries {
			if e.Err != nil {
				fmt.Fprintf(out, "%s: error: %v\n", e.RelativePath, e.Err)
				continue
			}
			if e.Tags.IsEmpty() {
				fmt.Fprintf(out, "%s: (no tags)\n", e.RelativePath)
				continue
			}
			fmt.Fprintf(out, "%s: %s\n", e.RelativePath, e.Tags.Joined())
		}
		return nil
	},
}

// openOutput returns the writer for a --output flag, defaulting to
// stdout.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

func init() {
	readCmd.Flags().BoolVarP(&readRecursive, "recursive", "R", false, "descend into subdirectories")
	readCmd.Flags().StringVar(&readFormat, "format", "text", "output format: text or csv")
	readCmd.Flags().StringVarP(&readOut, "output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(readCmd)
}
