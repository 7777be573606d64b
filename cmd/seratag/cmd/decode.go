package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <name> <payload-file>",
	Short: "Decode a raw tag payload to JSON",
	Long: `Decode a single raw tag payload from a file and print it as JSON.
The name selects the tag format, for example "Serato Markers2".

Example:
  seratag decode "Serato Autotags" autotags.bin`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		strict, _ := cmd.Flags().GetBool("strict")

		data, err := os.ReadFile(args[1])
		if err != nil {
			fmt.Printf("Error reading payload: %v\n", err)
			return
		}

		decoded, err := parseTag(args[0], data, strict)
		if err != nil {
			fmt.Printf("Error decoding tag: %v\n", err)
			return
		}

		body, err := json.MarshalIndent(decoded, "", "  ")
		if err != nil {
			fmt.Printf("Error encoding JSON: %v\n", err)
			return
		}
		fmt.Printf("%s\n", body)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().Bool("strict", false, "Reject tags whose entries misstate their length")
}
