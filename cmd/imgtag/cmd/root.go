package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"imgtag/internal/adapters/exiftool"
	"imgtag/internal/adapters/filesystem"
	"imgtag/internal/config"
	"imgtag/internal/ports"
)

var (
	rootPath string
	verbose  bool
	workers  int

	logger  *log.Logger
	scanner *filesystem.Scanner
	store   ports.TagStore
)

var rootCmd = &cobra.Command{
	Use:   "imgtag",
	Short: "Manage image tags embedded in XMP metadata",
	Long: `imgtag organizes an image collection through tags embedded in each
file's XMP dc:subject field. The files themselves are the only source
of truth: tags travel with the images, and everything else (the tag
index, sorted views) is derived and rebuildable.

It provides commands to tag, auto-tag, export, import, collect, and
build by-tag sorted views of your collection.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "imgtag"})
		if verbose {
			logger.SetLevel(log.DebugLevel)
		} else {
			logger.SetLevel(log.WarnLevel)
		}
		scanner = filesystem.NewScanner(config.SentinelDir)
		rootPath = filesystem.ExpandHome(rootPath)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	defer closeStore()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeStore()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", config.RootPath(), "collection root directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "worker pool size for batch commands (0 = default)")
}

// GetScanner returns the initialized file scanner
func GetScanner() *filesystem.Scanner {
	return scanner
}

// GetFiles returns the copy/link primitive
func GetFiles() ports.FileOps {
	return filesystem.FileOps{}
}

// GetStore returns the tag store, starting the exiftool subprocess on
// first use so commands that never touch metadata stay cheap.
func GetStore() (ports.TagStore, error) {
	if store != nil {
		return store, nil
	}
	logger.Debug("starting exiftool", "binary", config.ExiftoolPath())
	s, err := exiftool.NewStore(config.ExiftoolPath())
	if err != nil {
		return nil, err
	}
	store = s
	return store, nil
}

// Logger returns the shared CLI logger
func Logger() *log.Logger {
	return logger
}

func closeStore() {
	if store != nil {
		store.Close()
		store = nil
	}
}
