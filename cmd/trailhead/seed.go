package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tessera-labs/trailhead/internal/config"
	"github.com/tessera-labs/trailhead/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a roadmap definition into the database",
	Long: `Load phases and tasks from a YAML file.

Seeding is idempotent: re-running with the same file updates names and
ordering in place and never touches student subtasks.

Example roadmap.yaml:

  phases:
    - id: p1
      name: Intro
      tasks:
        - id: t1
          name: Setup
          subtask_suggestion: Install the toolchain and run hello world`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "roadmap.yaml", "Roadmap YAML file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := seed.Load(seedFile)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := seed.Apply(db, f)
	if err != nil {
		return err
	}

	fmt.Printf("%s Seeded %d phase(s) and %d task(s) from %s\n",
		color.GreenString("✓"), res.Phases, res.Tasks, seedFile)
	fmt.Printf("  Database: %s\n", db.Path())
	return nil
}
