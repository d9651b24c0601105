package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"imgtag/internal/adapters/sqlite"
	"imgtag/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <tag>",
	Short: "Find every image carrying a tag",
	Long: `Search the collection for images carrying the given tag. Matching is
exact on the normalized tag; hierarchical tags match as written.

Examples:
  imgtag search ireland
  imgtag search ireland/coast`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := GetStore()
		if err != nil {
			return err
		}

		searchCmd := commands.NewSearchCommand(sqlite.NewIndex(store, GetScanner()), rootPath, args[0])
		result, err := searchCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		if len(result.Paths) == 0 {
			fmt.Printf("No images tagged %q\n", result.Tag)
			return nil
		}
		for _, p := range result.Paths {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
