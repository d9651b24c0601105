package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"imgtag/internal/adapters/exif"
	"imgtag/internal/adapters/filesystem"
	"imgtag/internal/domain"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show format, size, EXIF details and tags of one image",
	Long: `Print everything imgtag knows about a single file: detected format,
size on disk, EXIF capture details when present, and the embedded
tag set.

Examples:
  imgtag info holiday/cove.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filesystem.ExpandHome(args[0])

		fi, err := os.Stat(path)
		if err != nil {
			return err
		}
		format := domain.FormatForExt(filepath.Ext(path))
		fmt.Printf("File:    %s\n", path)
		fmt.Printf("Format:  %s\n", format)
		fmt.Printf("Size:    %d bytes\n", fi.Size())

		details, err := exif.Read(path)
		if err != nil {
			return err
		}
		if !details.CaptureDate.IsZero() {
			fmt.Printf("Taken:   %s\n", details.CaptureDate.Format("2006-01-02 15:04:05"))
		}
		if details.CameraMake != "" || details.CameraModel != "" {
			fmt.Printf("Camera:  %s %s\n", details.CameraMake, details.CameraModel)
		}

		store, err := GetStore()
		if err != nil {
			return err
		}
		tags, err := store.ReadTags(path)
		if err != nil {
			return err
		}
		if tags.IsEmpty() {
			fmt.Println("Tags:    (none)")
		} else {
			fmt.Printf("Tags:    %s\n", tags.Joined())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
