package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cratekit/seratag/pkg/library"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tracks stored in the library",
	Long: `List the track summaries stored in the library, optionally
filtered by a path prefix.

Example:
  seratag list
  seratag list --prefix crate/ --json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		prefix, _ := cmd.Flags().GetString("prefix")
		asJSON, _ := cmd.Flags().GetBool("json")

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

		tracks, err := lib.List(prefix)
		if err != nil {
			fmt.Printf("Error listing tracks: %v\n", err)
			return
		}
		if len(tracks) == 0 {
			fmt.Println("No tracks in the library")
			return
		}

		if asJSON {
			body, err := json.MarshalIndent(tracks, "", "  ")
			if err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				return
			}
			fmt.Printf("%s\n", body)
			return
		}

		for _, track := range tracks {
			fmt.Printf("%s  bpm=%.2f cues=%d loops=%d  %s\n",
				track.ID, track.BPM, track.CueCount, track.LoopCount, track.Path)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("prefix", "", "Only list tracks whose path starts with this prefix")
	listCmd.Flags().Bool("json", false, "Print tracks as JSON")
	listCmd.Flags().String("library", "", "Library directory (overrides the config)")
}
