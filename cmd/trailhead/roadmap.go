package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessera-labs/trailhead/internal/config"
	"github.com/tessera-labs/trailhead/internal/roadmap"
	"github.com/tessera-labs/trailhead/internal/tui"
	"github.com/tessera-labs/trailhead/internal/viewed"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Open the roadmap TUI",
	Long: `Open the interactive roadmap for the selected student.

Keys:
  j/k      navigate
  enter    expand or collapse, set subtask status
  n        add a named subtask under the current task
  a        quick-add a "New Subtask"
  r        refresh
  q        quit`,
	RunE: runRoadmap,
}

func runRoadmap(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	tracker := viewed.NewTracker(viewed.DefaultDir(), studentID)
	presenter := roadmap.NewPresenter(db, tracker, studentID)
	if err := presenter.Refresh(); err != nil {
		return fmt.Errorf("loading roadmap: %w", err)
	}

	if len(presenter.Tree()) == 0 {
		fmt.Fprintln(os.Stderr, "No roadmap found. Seed one with: trailhead seed --file roadmap.yaml")
	}

	return tui.Run(presenter)
}
