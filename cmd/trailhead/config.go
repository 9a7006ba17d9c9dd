package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessera-labs/trailhead/internal/config"
	"github.com/tessera-labs/trailhead/internal/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Display the configuration Trailhead is running with.

Configuration is read from ~/.config/trailhead/config.yaml, overridden by
.trailhead.yaml in the project directory, then by environment variables
(OPENAI_API_KEY, ANTHROPIC_API_KEY, TRAILHEAD_DB, TRAILHEAD_ADDR).`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		displayConfig(cfg)
	},
}

func displayConfig(cfg *config.Config) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = store.DefaultDBPath()
	}

	fmt.Printf("config file: %s\n", config.GetUserConfigPath())
	fmt.Printf("server.addr: %s\n", cfg.Server.Addr)
	fmt.Printf("database.path: %s\n", dbPath)
	fmt.Printf("provider: %s\n", cfg.Provider)
	fmt.Printf("openai.api_key: %s\n", maskKey(cfg.OpenAI.APIKey))
	fmt.Printf("openai.model: %s\n", cfg.OpenAI.Model)
	fmt.Printf("anthropic.api_key: %s\n", maskKey(cfg.Anthropic.APIKey))
	fmt.Printf("anthropic.model: %s\n", cfg.Anthropic.Model)
	fmt.Printf("anthropic.use_aws_bedrock: %t\n", cfg.Anthropic.UseAWSBedrock)
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	return "****"
}
