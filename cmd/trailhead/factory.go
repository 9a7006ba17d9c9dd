package main

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/tessera-labs/trailhead/internal/config"
	"github.com/tessera-labs/trailhead/internal/extract"
	"github.com/tessera-labs/trailhead/internal/llm"
	"github.com/tessera-labs/trailhead/internal/store"
)

// openStore opens and migrates the database from config.
func openStore(cfg *config.Config) (*store.DB, error) {
	path := cfg.Database.Path
	if path == "" {
		path = store.DefaultDBPath()
	}

	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return db, nil
}

// newCompleter builds the configured LLM provider.
func newCompleter(cfg *config.Config) (llm.Completer, error) {
	switch cfg.Provider {
	case "openai", "":
		return llm.NewOpenAI(llm.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
		})
	case "anthropic":
		return llm.NewAnthropic(llm.AnthropicConfig{
			Model:         anthropic.Model(cfg.Anthropic.Model),
			APIKey:        cfg.Anthropic.APIKey,
			UseAWSBedrock: cfg.Anthropic.UseAWSBedrock,
			AWSRegion:     cfg.Anthropic.AWSRegion,
			AWSProfile:    cfg.Anthropic.AWSProfile,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q (want openai or anthropic)", cfg.Provider)
	}
}

// newExtractor wires the extraction pipeline. When no provider credential is
// configured the completer is nil and extraction fails with a clear error at
// call time; the rest of the app keeps working.
func newExtractor(cfg *config.Config, db *store.DB) *extract.Extractor {
	completer, err := newCompleter(cfg)
	if err != nil {
		completer = nil
	}
	return extract.NewExtractor(completer, db)
}
