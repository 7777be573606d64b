/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cratekit/seratag/pkg/config"
	"github.com/cratekit/seratag/pkg/tag"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seratag",
	Short: "Serato tag codec and track library tools",
	Long: `seratag reads and writes the GEOB tags Serato DJ stores in audio
files: cue points, loops, beatgrids, waveform previews and gain values.

Tags can be dumped from audio files, converted between raw payloads and
JSON, collected into a track library and served over a REST API.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file used by the library and serve commands
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the config file")
}

// loadConfig reads the config file named by --config, or the default
// location, falling back to built-in defaults when no file exists.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.GetDefaultConfigPath()
	}
	if !config.ConfigExists(path) {
		return config.DefaultConfig(), nil
	}

	return config.LoadConfig(path)
}

// parseTag decodes a payload in the requested mode.
func parseTag(name string, data []byte, strict bool) (tag.Tag, error) {
	if strict {
		return tag.ParseStrict(name, data)
	}

	return tag.Parse(name, data)
}
