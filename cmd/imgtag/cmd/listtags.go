package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"imgtag/internal/adapters/sqlite"
	"imgtag/internal/application"
	"imgtag/internal/application/commands"
)

var (
	listTagsSort   string
	listTagsFormat string
	listTagsOut    string
)

var listTagsCmd = &cobra.Command{
	Use:   "list-tags",
	Short: "List every distinct tag in the collection",
	Long: `List the distinct tags under the root with the number of images
carrying each. Counts come from the derived index, which is synced
against the embedded state before querying.

Examples:
  imgtag list-tags
  imgtag list-tags --sort count
  imgtag list-tags --format csv -o tags.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := commands.ParseTagSort(listTagsSort)
		if err != nil {
			return err
		}
		format, err := application.ParseOutputFormat(listTagsFormat)
		if err != nil {
			return err
		}

		store, err := GetStore()
		if err != nil {
			return err
		}

		listCmd := commands.NewListTagsCommand(sqlite.NewIndex(store, GetScanner()), rootPath)
		listCmd.Sort = order

		result, err := listCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		Logger().Debug("index synced",
			"scanned", result.Stats.FilesScanned,
			"duration", result.Stats.Duration)

		out, closeOut, err := openOutput(listTagsOut)
		if err != nil {
			return err
		}
		defer closeOut()

		if format == application.FormatCSV {
			cw := csv.NewWriter(out)
			if err := cw.Write([]string{"tag", "count"}); err != nil {
				return err
			}
			for _, tc := range result.Counts {
				if err := cw.Write([]string{tc.Tag, strconv.Itoa(tc.Count)}); err != nil {
					return err
				}
			}
			cw.Flush()
			return cw.Error()
		}

		for _, tc := range result.Counts {
			fmt.Fprintf(out, "%6d  %s\n", tc.Count, tc.Tag)
		}
		fmt.Fprintf(out, "%d distinct tags\n", result.Total)
		return nil
	},
}

func init() {
	listTagsCmd.Flags().StringVar(&listTagsSort, "sort", "alpha", "output order: alpha or count")
	listTagsCmd.Flags().StringVar(&listTagsFormat, "format", "text", "output format: text or csv")
	listTagsCmd.Flags().StringVarP(&listTagsOut, "output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(listTagsCmd)
}
