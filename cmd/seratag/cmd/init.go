/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cratekit/seratag/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the seratag config and library",
	Long: `Initialize the seratag configuration file and track library.

This command will:
- Write a config file with a generated API key
- Create the library directory

Examples:
  seratag init
  seratag init --library ./my-library --config ./seratag.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		libraryPath, _ := cmd.Flags().GetString("library")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Config already exists at %s. Use --force to overwrite.\n", configPath)
			return
		}

		cfg, err := config.BootstrapConfig(configPath, libraryPath)
		if err != nil {
			cmd.Printf("Error writing config: %v\n", err)
			os.Exit(1)
		}

		if err := os.MkdirAll(cfg.LibraryPath, 0750); err != nil {
			cmd.Printf("Error creating library directory: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("✅ seratag initialization completed successfully!\n")
		cmd.Printf("Config file: %s\n", configPath)
		cmd.Printf("Library directory: %s\n", cfg.LibraryPath)
		cmd.Printf("API key: %s\n", cfg.Security.APIKey)
		cmd.Printf("\nStart the server with:\n")
		cmd.Printf("  seratag serve --config %s\n", configPath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("library", "", "Library directory (defaults to the config default)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}
