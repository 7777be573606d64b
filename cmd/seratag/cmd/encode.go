package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cratekit/seratag/pkg/tag"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <name> <json-file>",
	Short: "Encode a JSON tag back to its binary payload",
	Long: `Encode a JSON tag document back to the raw binary payload for the
named format. The payload is written to --output, or to stdout when no
output file is given.

Example:
  seratag encode "Serato Markers2" markers.json -o markers.bin`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		data, err := os.ReadFile(args[1])
		if err != nil {
			fmt.Printf("Error reading JSON: %v\n", err)
			return
		}

		decoded, err := tag.UnmarshalTag(args[0], data)
		if err != nil {
			fmt.Printf("Error decoding JSON: %v\n", err)
			return
		}

		payload := decoded.Encode()
		if output == "" {
			os.Stdout.Write(payload)
			return
		}
		if err := os.WriteFile(output, payload, 0644); err != nil {
			fmt.Printf("Error writing payload: %v\n", err)
			return
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(payload), output)
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringP("output", "o", "", "File to write the payload to (default stdout)")
}
