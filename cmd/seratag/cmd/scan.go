package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cratekit/seratag/pkg/container"
	"github.com/cratekit/seratag/pkg/extract"
	"github.com/cratekit/seratag/pkg/library"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <audio-file>...",
	Short: "Scan audio files into the track library",
	Long: `Scan one or more MP3 files, decode their Serato tags and store a
summary per track in the library.

Example:
  seratag scan track.mp3
  seratag scan crate/*.mp3`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}
		libraryPath, _ := cmd.Flags().GetString("library")
		if libraryPath != "" {
			cfg.LibraryPath = libraryPath
		}

		lib, err := library.Open(cfg.LibraryPath)
		if err != nil {
			fmt.Printf("Error opening library: %v\n", err)
			return
		}
		defer lib.Close()

		for _, path := range args {
			if err := scanFile(lib, path); err != nil {
				fmt.Printf("Error scanning %s: %v\n", path, err)
			}
		}
	},
}

func scanFile(lib *library.Library, path string) error {
	objects, err := extract.FromFile(path)
	if err != nil {
		return err
	}

	c := container.New()
	for _, obj := range objects {
		// Unknown or malformed tags should not block the scan.
		if err := c.Decode(obj.Description, obj.Data); err != nil {
			fmt.Printf("Skipping %s in %s: %v\n", obj.Description, path, err)
		}
	}

	track, err := lib.Put(library.Summarize(path, c))
	if err != nil {
		return err
	}
	fmt.Printf("Scanned %s: %d tags, %d cues, %d loops\n",
		track.Path, len(track.TagNames), track.CueCount, track.LoopCount)
	return nil
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().String("library", "", "Library directory (overrides the config)")
}
