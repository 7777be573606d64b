/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cratekit/seratag/pkg/api"
	"github.com/cratekit/seratag/pkg/library"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve tags and the track library over HTTP",
	Long: `Start the seratag REST API server. The server exposes tag decode and
encode endpoints, the track library and Prometheus metrics.

Settings come from the config file and can be overridden per flag.
Requests to /api/v1 must carry the configured API key in the X-API-Key
header; an empty key disables authentication.

Examples:
  seratag serve
  seratag serve --port=9090 --api-key=mysecretkey`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			cmd.Printf("Error loading config: %v\n", err)
			return
		}

		if bind, _ := cmd.Flags().GetString("bind"); bind != "" {
			cfg.Bind = bind
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if apiKey, _ := cmd.Flags().GetString("api-key"); apiKey != "" {
			cfg.Security.APIKey = apiKey
		}
		if libraryPath, _ := cmd.Flags().GetString("library"); libraryPath != "" {
			cfg.LibraryPath = libraryPath
		}
		if cmd.Flags().Changed("strict") {
			cfg.Decoding.Strict, _ = cmd.Flags().GetBool("strict")
		}

		lib, err := library.Open(cfg.LibraryPath)
		if err != nil {
			cmd.Printf("Error opening library: %v\n", err)
			return
		}
		defer lib.Close()

		config := api.ServerConfig{
			Bind:   cfg.Bind,
			Port:   cfg.Port,
			APIKey: cfg.Security.APIKey,
			Strict: cfg.Decoding.Strict,
		}

		if err := api.StartServer(lib, config); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("bind", "", "Address to bind to (overrides the config)")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides the config)")
	serveCmd.Flags().String("api-key", "", "API key for authentication (overrides the config)")
	serveCmd.Flags().String("library", "", "Library directory (overrides the config)")
	serveCmd.Flags().Bool("strict", false, "Reject tags whose entries misstate their length")
}
