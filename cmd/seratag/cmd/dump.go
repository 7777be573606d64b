package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cratekit/seratag/pkg/extract"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <audio-file>",
	Short: "Dump the Serato tags stored in an audio file",
	Long: `Dump the Serato GEOB tags stored in an MP3 file as JSON, one tag
per block.

Example:
  seratag dump track.mp3`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		strict, _ := cmd.Flags().GetBool("strict")

		objects, err := extract.FromFile(args[0])
		if err != nil {
			fmt.Printf("Error reading tags: %v\n", err)
			return
		}
		if len(objects) == 0 {
			fmt.Println("No Serato tags found")
			return
		}

		for _, obj := range objects {
			decoded, err := parseTag(obj.Description, obj.Data, strict)
			if err != nil {
				fmt.Printf("%s: %v\n", obj.Description, err)
				continue
			}

			body, err := json.MarshalIndent(decoded, "", "  ")
			if err != nil {
				fmt.Printf("%s: %v\n", obj.Description, err)
				continue
			}
			fmt.Printf("%s\n%s\n", obj.Description, body)
		}
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().Bool("strict", false, "Reject tags whose entries misstate their length")
}
